package audioengine

import "math"

// ApplyQuickGain scales PCM in place, clipping at full scale.
func ApplyQuickGain(samples []int16, factor float64) {
	for i := range samples {
		val := float64(samples[i]) * factor
		if val > 32767 {
			val = 32767
		} else if val < -32768 {
			val = -32768
		}
		samples[i] = int16(val)
	}
}

// ToPCM16 converts [-1, 1] floats to 16-bit PCM.
func ToPCM16(pcm []float64) []int16 {
	out := make([]int16, len(pcm))
	for i, v := range pcm {
		v = math.Max(-1, math.Min(1, v))
		out[i] = int16(math.Round(v * 32767))
	}
	return out
}

// RenderTone synthesises a struck-string tone: a few harmonics with their own
// exponential decay, a short attack and a soft saturation.
func RenderTone(freq, seconds float64, rate int) []float64 {
	n := int(seconds * float64(rate))
	out := make([]float64, n)
	attack := int(0.005 * float64(rate))
	release := int(0.05 * float64(rate))

	peak := 0.0
	for i := range out {
		t := float64(i) / float64(rate)
		w := 2 * math.Pi * freq * t
		f := math.Sin(w) * math.Exp(-1.2*t) / 2
		f += math.Sin(2*w) * math.Exp(-2.4*t) / 4
		f += math.Sin(3*w) * math.Exp(-3.6*t) / 8
		f += math.Sin(4*w) * math.Exp(-4.8*t) / 16
		f += f * f * f
		switch {
		case i < attack:
			f *= float64(i) / float64(attack)
		case i >= n-release:
			f *= float64(n-i) / float64(release)
		}
		out[i] = f
		peak = math.Max(peak, math.Abs(f))
	}
	if peak > 0 {
		for i := range out {
			out[i] *= 0.8 / peak
		}
	}
	return out
}
