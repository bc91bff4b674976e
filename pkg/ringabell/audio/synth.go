package audio

import (
	"math"
	"math/rand"
)

// Sine generates a pure tone.
func Sine(freqHz, seconds float64, sampleRate int, amplitude float64) []float64 {
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/float64(sampleRate))
	}
	return out
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude). The same
// seed always yields the same signal.
func WhiteNoise(seconds float64, sampleRate int, amplitude float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// Mix sums signals sample by sample; the result is as long as the longest input.
func Mix(signals ...[]float64) []float64 {
	n := 0
	for _, s := range signals {
		if len(s) > n {
			n = len(s)
		}
	}
	out := make([]float64, n)
	for _, s := range signals {
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}
