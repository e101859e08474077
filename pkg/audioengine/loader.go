package audioengine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hdxpiano/pkg/format"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported sample format")

// FileLoader opens one sample per call. The returned streamer belongs to the
// caller's voice alone and closes its file when it finishes.
type FileLoader struct {
	Rate beep.SampleRate
}

func (l FileLoader) Load(path string) (beep.Streamer, error) {
	s, fmtIn, err := Decode(path)
	if err != nil {
		return nil, err
	}
	var out beep.Streamer = s
	if l.Rate != 0 && fmtIn.SampleRate != l.Rate {
		out = beep.Resample(format.ResampleFactor, fmtIn.SampleRate, l.Rate, s)
	}
	return beep.Seq(out, beep.Callback(func() {
		s.Close()
	})), nil
}

// Decode picks a decoder by file extension.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		s  beep.StreamSeekCloser
		ft beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, ft, err = wav.Decode(f)
	case ".mp3":
		s, ft, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return s, ft, nil
}

// ReadMono decodes up to limit frames (0 = all) of a sample, averaging the
// channels.
func ReadMono(path string, limit int) ([]float64, beep.SampleRate, error) {
	s, ft, err := Decode(path)
	if err != nil {
		return nil, 0, err
	}
	defer s.Close()

	var (
		pcm []float64
		buf [512][2]float64
	)
	for limit == 0 || len(pcm) < limit {
		n, ok := s.Stream(buf[:])
		for i := 0; i < n; i++ {
			pcm = append(pcm, (buf[i][0]+buf[i][1])/2)
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, 0, fmt.Errorf("stream %s: %w", filepath.Base(path), err)
	}
	if limit > 0 && len(pcm) > limit {
		pcm = pcm[:limit]
	}
	return pcm, ft.SampleRate, nil
}
