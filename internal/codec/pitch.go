package codec

import (
	"errors"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

const (
	pitchWindow = 1 << 15
	pitchLow    = 20.0
	pitchHigh   = 5000.0
	// skip the hammer noise at the very start of a note
	attackSeconds = 0.02
)

var ErrTooShort = errors.New("sample too short for pitch analysis")

// DominantFrequency returns the strongest frequency of a note, in Hz. The
// window starts after the attack and is zero padded to a power of two.
func DominantFrequency(pcm []float64, rate int) (float64, error) {
	start := int(attackSeconds * float64(rate))
	if len(pcm) <= start+rate/20 {
		return 0, ErrTooShort
	}
	end := start + pitchWindow
	if end > len(pcm) {
		end = len(pcm)
	}

	window := make([]float64, pitchWindow)
	copy(window, pcm[start:end])
	hann(window[:end-start])
	coeffs := fft.FFTReal(window)

	binHz := float64(rate) / pitchWindow
	lo := int(math.Ceil(pitchLow / binHz))
	hi := int(math.Min(pitchHigh/binHz, pitchWindow/2-1))

	best, bestMag := 0, 0.0
	mags := make([]float64, hi+2)
	for i := lo; i <= hi+1 && i < len(coeffs); i++ {
		mags[i] = math.Hypot(real(coeffs[i]), imag(coeffs[i]))
	}
	for i := lo; i <= hi; i++ {
		if mags[i] > bestMag {
			best, bestMag = i, mags[i]
		}
	}
	if bestMag == 0 {
		return 0, nil
	}

	// parabolic interpolation around the peak bin
	offset := 0.0
	if best > lo {
		a, b, c := mags[best-1], mags[best], mags[best+1]
		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}
	return (float64(best) + offset) * binHz, nil
}
