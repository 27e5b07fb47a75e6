package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum computes the single-sided magnitude spectrum of a uniformly
// sampled series. The series is Hann-windowed first. Returned slices
// hold the frequency of each bin in Hz and its magnitude.
func Spectrum(series []float64, dt float64) ([]float64, []float64) {
	if len(series) < 2 || dt <= 0 {
		return nil, nil
	}

	// Remove the mean first: energy and count series sit on a large DC
	// level whose leakage would otherwise bury every real peak.
	mean := Mean(series)
	windowed := make([]float64, len(series))
	for i, v := range series {
		windowed[i] = v - mean
	}
	window.Apply(windowed, window.Hann)

	spec := fft.FFTReal(windowed)

	n := len(spec)
	half := n / 2
	freqs := make([]float64, half)
	power := make([]float64, half)
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) / (float64(n) * dt)
		power[i] = cmplx.Abs(spec[i])
	}

	return freqs, power
}

// DominantFrequency returns the frequency of the strongest non-DC bin,
// or 0 when the series is too short to tell.
func DominantFrequency(series []float64, dt float64) float64 {
	freqs, power := Spectrum(series, dt)
	if len(power) < 2 {
		return 0
	}

	bestIdx := 1
	for i := 2; i < len(power); i++ {
		if power[i] > power[bestIdx] {
			bestIdx = i
		}
	}
	return freqs[bestIdx]
}
