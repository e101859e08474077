package audioengine

import (
	"fmt"
	"os"

	"hdxpiano/pkg/format"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WriteWAV stores mono PCM as a 16-bit stereo WAV and returns its length in
// seconds.
func WriteWAV(path string, pcm []int16, rate int) (float64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	enc := wav.NewEncoder(file, rate, format.ToneBits, format.Channels, wavFormatPCM)

	// write in one-second blocks so large samples do not need a second copy
	block := rate
	intBuf := &audio.IntBuffer{
		Data:           make([]int, 0, block*format.Channels),
		Format:         &audio.Format{NumChannels: format.Channels, SampleRate: rate},
		SourceBitDepth: format.ToneBits,
	}

	for i := 0; i < len(pcm); i += block {
		end := i + block
		if end > len(pcm) {
			end = len(pcm)
		}
		intBuf.Data = intBuf.Data[:0]
		for _, s := range pcm[i:end] {
			intBuf.Data = append(intBuf.Data, int(s), int(s))
		}
		if err := enc.Write(intBuf); err != nil {
			file.Close()
			return 0, fmt.Errorf("write %s: %w", path, err)
		}
	}

	if err := enc.Close(); err != nil {
		file.Close()
		return 0, fmt.Errorf("finalize %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return 0, err
	}
	return float64(len(pcm)) / float64(rate), nil
}
