package audioengine_test

import (
	"math"
	"testing"

	"hdxpiano/pkg/audioengine"

	"github.com/faiface/beep"
)

// constant plays value on both channels for n frames.
func constant(value float64, n int) beep.Streamer {
	left := n
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left == 0 {
			return 0, false
		}
		k := len(samples)
		if k > left {
			k = left
		}
		for i := 0; i < k; i++ {
			samples[i] = [2]float64{value, value}
		}
		left -= k
		return k, true
	})
}

func pull(t *testing.T, s beep.Streamer, n int) [][2]float64 {
	t.Helper()
	buf := make([][2]float64, n)
	got, ok := s.Stream(buf)
	if !ok || got != n {
		t.Fatalf("Stream returned %d, %v", got, ok)
	}
	return buf
}

func TestMixerOutputMasterGain(t *testing.T) {
	out := audioengine.NewMixerOutput(48000)
	out.Play(constant(0.5, 1000))

	buf := pull(t, out, 100)
	if buf[0][0] != 0.5 {
		t.Fatalf("unity gain sample = %v, want 0.5", buf[0][0])
	}

	out.SetMasterGain(0.5)
	if out.MasterGain() != 0.5 {
		t.Fatalf("MasterGain = %v", out.MasterGain())
	}
	buf = pull(t, out, 100)
	if math.Abs(buf[0][1]-0.25) > 1e-12 {
		t.Fatalf("half gain sample = %v, want 0.25", buf[0][1])
	}

	out.SetMasterGain(0)
	buf = pull(t, out, 100)
	if buf[0][0] != 0 {
		t.Fatalf("zero gain sample = %v, want silence", buf[0][0])
	}
}

func TestMixerOutputOverlappingVoices(t *testing.T) {
	out := audioengine.NewMixerOutput(48000)
	out.Play(constant(0.25, 200))
	out.Play(constant(0.25, 100))
	if out.Active() != 2 {
		t.Fatalf("Active = %d, want 2", out.Active())
	}

	buf := pull(t, out, 50)
	if math.Abs(buf[10][0]-0.5) > 1e-12 {
		t.Fatalf("two voices sum to %v, want 0.5", buf[10][0])
	}

	pull(t, out, 100) // first short voice ends here
	buf = pull(t, out, 10)
	if math.Abs(buf[0][0]-0.25) > 1e-12 {
		t.Fatalf("remaining voice = %v, want 0.25", buf[0][0])
	}
	if out.Active() != 1 {
		t.Fatalf("Active = %d after one voice drained", out.Active())
	}
}

func TestMixerOutputSilentWhenEmpty(t *testing.T) {
	out := audioengine.NewMixerOutput(44100)
	buf := pull(t, out, 64)
	for _, s := range buf {
		if s != [2]float64{} {
			t.Fatalf("empty mixer produced %v", s)
		}
	}
	if out.SampleRate() != 44100 {
		t.Fatalf("SampleRate = %v", out.SampleRate())
	}
}
