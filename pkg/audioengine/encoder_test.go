package audioengine_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"hdxpiano/pkg/audioengine"

	"github.com/faiface/beep"
)

func TestRenderTone(t *testing.T) {
	pcm := audioengine.RenderTone(440, 0.5, 48000)
	if len(pcm) != 24000 {
		t.Fatalf("len = %d, want 24000", len(pcm))
	}
	peak := 0.0
	for _, v := range pcm {
		peak = math.Max(peak, math.Abs(v))
	}
	if math.Abs(peak-0.8) > 1e-9 {
		t.Fatalf("peak = %v, want 0.8", peak)
	}
	if pcm[0] != 0 {
		t.Fatalf("tone should start from silence, got %v", pcm[0])
	}
}

func TestApplyQuickGainClips(t *testing.T) {
	pcm := []int16{1000, -1000, 30000, -30000}
	audioengine.ApplyQuickGain(pcm, 2)
	want := []int16{2000, -2000, 32767, -32768}
	for i := range want {
		if pcm[i] != want[i] {
			t.Fatalf("ApplyQuickGain = %v, want %v", pcm, want)
		}
	}
}

func TestWriteWAVThenReadMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A4.wav")
	tone := audioengine.RenderTone(440, 0.25, 48000)
	dur, err := audioengine.WriteWAV(path, audioengine.ToPCM16(tone), 48000)
	if err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}
	if math.Abs(dur-0.25) > 1e-9 {
		t.Fatalf("duration = %v, want 0.25", dur)
	}

	pcm, rate, err := audioengine.ReadMono(path, 0)
	if err != nil {
		t.Fatalf("ReadMono: %v", err)
	}
	if rate != 48000 {
		t.Fatalf("rate = %v", rate)
	}
	if len(pcm) != len(tone) {
		t.Fatalf("read %d frames, wrote %d", len(pcm), len(tone))
	}
	for i := 0; i < len(tone); i += 997 {
		if math.Abs(pcm[i]-tone[i]) > 1e-3 {
			t.Fatalf("frame %d = %v, want %v", i, pcm[i], tone[i])
		}
	}

	head, _, err := audioengine.ReadMono(path, 100)
	if err != nil || len(head) != 100 {
		t.Fatalf("ReadMono limit: %d frames, %v", len(head), err)
	}
}

func TestFileLoaderResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "C4.wav")
	if _, err := audioengine.WriteWAV(path, audioengine.ToPCM16(audioengine.RenderTone(261.63, 0.1, 24000)), 24000); err != nil {
		t.Fatal(err)
	}
	s, err := audioengine.FileLoader{Rate: 48000}.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	// 0.1 s at 48 kHz, give or take the resampler's edge
	if total < 4700 || total > 4900 {
		t.Fatalf("resampled length = %d frames, want about 4800", total)
	}
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := audioengine.Decode(filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v", err)
	}

	ogg := filepath.Join(dir, "C4.ogg")
	os.WriteFile(ogg, []byte("OggS"), 0644)
	if _, _, err := audioengine.Decode(ogg); !errors.Is(err, audioengine.ErrUnsupportedFormat) {
		t.Fatalf("ogg error = %v", err)
	}

	junk := filepath.Join(dir, "C4.wav")
	os.WriteFile(junk, []byte("not a wave file at all"), 0644)
	if _, err := (audioengine.FileLoader{Rate: beep.SampleRate(48000)}).Load(junk); err == nil {
		t.Fatal("junk wav should fail to decode")
	}
}
