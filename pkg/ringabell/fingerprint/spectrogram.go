package fingerprint

import (
	"fmt"
	"math"

	"github.com/himanishpuri/ringabell/pkg/ringabell/dsp"
)

// Hamming returns the n-point symmetric Hamming window.
func Hamming(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := 0; i < n; i++ {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// LowPassFilter keeps a sample only while its value is below
// maxFreq/sampleRate and zeroes it otherwise. This is an amplitude gate, not
// a spectral filter, and peak extraction is tuned to the shape it leaves.
func LowPassFilter(samples []float64, maxFreq float64, sampleRate int) []float64 {
	cutoff := maxFreq / float64(sampleRate)
	out := make([]float64, len(samples))
	for i, s := range samples {
		if s < cutoff {
			out[i] = s
		}
	}
	return out
}

// Downsample keeps every ratio-th sample where ratio = originalRate/targetRate.
func Downsample(samples []float64, originalRate, targetRate int) ([]float64, error) {
	if targetRate <= 0 || originalRate <= 0 {
		return nil, fmt.Errorf("sample rates must be positive (original %d, target %d)", originalRate, targetRate)
	}
	if targetRate > originalRate {
		return nil, fmt.Errorf("target rate %d exceeds original rate %d", targetRate, originalRate)
	}

	ratio := originalRate / targetRate
	out := make([]float64, 0, len(samples)/ratio+1)
	for i := 0; i < len(samples); i += ratio {
		out = append(out, samples[i])
	}
	return out, nil
}

// FrameCount is the number of frames Spectrogram emits for n downsampled
// samples. It is n/(bin-hop), not the usual sliding-window count, so the
// trailing windows run past the data and are zero-padded.
func FrameCount(n int, cfg Config) int {
	return n / (cfg.FreqBinSize - cfg.HopSize)
}

// Spectrogram frames, windows and transforms samples taken at sampleRate.
// Each frame holds the magnitude of all FreqBinSize bins.
func Spectrogram(samples []float64, sampleRate int, cfg Config, tr dsp.Transformer) ([][]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tr == nil {
		tr = dsp.Radix2{}
	}
	if len(samples) == 0 {
		return [][]float64{}, nil
	}

	filtered := LowPassFilter(samples, cfg.MaxFreqHz, sampleRate)
	downsampled, err := Downsample(filtered, sampleRate, sampleRate/cfg.DSPRatio)
	if err != nil {
		return nil, fmt.Errorf("downsample failed: %w", err)
	}

	numFrames := FrameCount(len(downsampled), cfg)
	window := Hamming(cfg.FreqBinSize)
	frames := make([][]float64, 0, numFrames)

	bin := make([]dsp.Complex, cfg.FreqBinSize)
	for i := 0; i < numFrames; i++ {
		start := i * cfg.HopSize
		for j := range bin {
			if start+j < len(downsampled) {
				bin[j] = dsp.Real(downsampled[start+j] * window[j])
			} else {
				bin[j] = dsp.Complex{}
			}
		}

		spectrum, err := tr.Transform(bin)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, dsp.Magnitudes(spectrum))
	}
	return frames, nil
}
