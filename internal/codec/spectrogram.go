package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// GenerateSpectrogram renders mono PCM as a PNG, low frequencies at the
// bottom.
func GenerateSpectrogram(pcm []float64) ([]byte, error) {
	const width = 800
	const height = 200
	const fftSize = 1024

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// samples per pixel column
	step := len(pcm) / width
	if step < fftSize {
		step = fftSize
	}

	window := make([]float64, fftSize)
	for x := 0; x < width; x++ {
		start := x * step
		if start+fftSize > len(pcm) {
			break
		}

		copy(window, pcm[start:start+fftSize])
		hann(window)
		coeffs := fft.FFTReal(window)

		for y := 0; y < height; y++ {
			idx := (height - 1 - y) * (fftSize / 2) / height
			mag := math.Hypot(real(coeffs[idx]), imag(coeffs[idx]))

			// 0 dB at a full-scale sine in one bin
			db := 20 * math.Log10(mag/(fftSize/4)+1e-9)
			intensity := uint8(math.Max(0, math.Min(255, (db+90)*255/90)))
			img.Set(x, y, color.RGBA{R: intensity / 2, G: intensity, B: intensity / 2, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hann(w []float64) {
	n := float64(len(w) - 1)
	for i := range w {
		w[i] *= 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/n)
	}
}
