package codec

import (
	"math"
)

// Levels returns the peak and RMS amplitude of PCM in [-1, 1].
func Levels(pcm []float64) (peak, rms float64) {
	if len(pcm) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range pcm {
		sum += v * v
		peak = math.Max(peak, math.Abs(v))
	}
	return peak, math.Sqrt(sum / float64(len(pcm)))
}

// GenerateWaveformData reduces PCM to at most points RMS bytes (0-255), for
// drawing a level strip.
func GenerateWaveformData(pcm []float64, points int) []byte {
	if points <= 0 || len(pcm) == 0 {
		return nil
	}
	step := len(pcm) / points
	if step == 0 {
		step = 1
	}

	waveform := make([]byte, 0, points)
	for i := 0; i < len(pcm) && len(waveform) < points; i += step {
		end := i + step
		if end > len(pcm) {
			end = len(pcm)
		}
		_, rms := Levels(pcm[i:end])
		waveform = append(waveform, uint8(math.Min(rms*255*2, 255)))
	}
	return waveform
}

// DBFS converts a linear amplitude to decibels relative to full scale.
func DBFS(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}
