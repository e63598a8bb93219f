package stimulus

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// MagnitudeSpectrum returns the magnitudes of the positive-frequency bins of
// the Hann-windowed input and the bin width in Hz. Bin i covers frequency
// i*binHz.
func MagnitudeSpectrum(samples []float64, sampleRate int) (mags []float64, binHz float64) {
	n := len(samples)
	if n < 2 {
		return nil, 0
	}

	windowed := make([]float64, n)
	for i, v := range samples {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = v * w
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	mags = make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags, float64(sampleRate) / float64(n)
}

// DominantFrequency returns the frequency of the strongest non-DC bin.
func DominantFrequency(samples []float64, sampleRate int) float64 {
	mags, binHz := MagnitudeSpectrum(samples, sampleRate)
	if len(mags) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(mags); i++ {
		if mags[i] > mags[best] {
			best = i
		}
	}
	return float64(best) * binHz
}
