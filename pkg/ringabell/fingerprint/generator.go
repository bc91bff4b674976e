package fingerprint

import (
	"fmt"

	"github.com/himanishpuri/ringabell/pkg/ringabell/dsp"
)

// Generate pairs every peak with up to zone following peaks and returns the
// hashes in generation order. Duplicates are kept. Peaks must be ordered by
// time; the first pair that is not fails with ErrPeakOrder.
func Generate(peaks []Peak, zone int) ([]uint64, error) {
	if zone <= 0 {
		return nil, fmt.Errorf("%w: target zone size %d must be positive", ErrInvalidConfig, zone)
	}

	hashes := make([]uint64, 0, len(peaks)*zone)
	for i, anchor := range peaks {
		for j := i + 1; j <= i+zone && j < len(peaks); j++ {
			target := peaks[j]
			if target.TimeMs < anchor.TimeMs {
				return nil, fmt.Errorf("%w: peak %d at %dms before anchor %d at %dms",
					ErrPeakOrder, j, target.TimeMs, i, anchor.TimeMs)
			}

			addr, err := NewAddress(anchor.FreqIdx, target.FreqIdx, target.TimeMs-anchor.TimeMs)
			if err != nil {
				return nil, fmt.Errorf("pair (%d,%d): %w", i, j, err)
			}
			fp, err := NewFingerprint(addr, anchor.TimeMs)
			if err != nil {
				return nil, fmt.Errorf("pair (%d,%d): %w", i, j, err)
			}
			hashes = append(hashes, fp.Hash())
		}
	}
	return hashes, nil
}

// Result is everything the pipeline derives from one clip.
type Result struct {
	Frames int
	Peaks  []Peak
	Hashes []uint64
}

// Compute runs spectrogram, peak extraction and hashing over a clip.
func Compute(samples []float64, sampleRate int, durationSec float64, cfg Config, tr dsp.Transformer) (Result, error) {
	spec, err := Spectrogram(samples, sampleRate, cfg, tr)
	if err != nil {
		return Result{}, fmt.Errorf("spectrogram generation failed: %w", err)
	}

	peaks := ExtractPeaks(spec, durationSec, cfg.Bands)
	hashes, err := Generate(peaks, cfg.TargetZoneSize)
	if err != nil {
		return Result{}, fmt.Errorf("fingerprint generation failed: %w", err)
	}

	return Result{Frames: len(spec), Peaks: peaks, Hashes: hashes}, nil
}
