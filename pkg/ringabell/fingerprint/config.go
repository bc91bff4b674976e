package fingerprint

import (
	"errors"
	"fmt"

	"github.com/himanishpuri/ringabell/pkg/ringabell/dsp"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid fingerprint config")

// Band is a half-open [Lo, Hi) range of frequency bins searched for one peak.
type Band struct {
	Lo int
	Hi int
}

// Config holds the constants of the spectrogram, peak and hashing stages.
// Registered and queried clips must be processed with the same Config or
// their fingerprints will not line up.
type Config struct {
	FreqBinSize    int     // samples per FFT window, also bins per frame
	HopSize        int     // window step in downsampled samples
	MaxFreqHz      float64 // low-pass threshold numerator
	DSPRatio       int     // downsample factor
	Bands          []Band
	TargetZoneSize int // peaks after the anchor that it pairs with
}

// DefaultBands are the fixed peak-picking bands.
func DefaultBands() []Band {
	return []Band{
		{0, 10},
		{10, 20},
		{20, 40},
		{40, 80},
		{80, 160},
		{160, 512},
	}
}

// DefaultConfig returns the settings every registered clip is processed with.
func DefaultConfig() Config {
	return Config{
		FreqBinSize:    1024,
		HopSize:        512,
		MaxFreqHz:      5000,
		DSPRatio:       4,
		Bands:          DefaultBands(),
		TargetZoneSize: 3,
	}
}

// Validate reports the first setting the pipeline cannot run with, wrapped
// in ErrInvalidConfig.
func (c Config) Validate() error {
	if !dsp.IsPowerOfTwo(c.FreqBinSize) {
		return fmt.Errorf("%w: freq bin size %d: %w", ErrInvalidConfig, c.FreqBinSize, dsp.ErrNotPowerOfTwo)
	}
	if c.HopSize <= 0 || c.HopSize >= c.FreqBinSize {
		return fmt.Errorf("%w: hop size %d must be in (0, %d)", ErrInvalidConfig, c.HopSize, c.FreqBinSize)
	}
	if c.DSPRatio <= 0 {
		return fmt.Errorf("%w: dsp ratio %d must be positive", ErrInvalidConfig, c.DSPRatio)
	}
	if c.MaxFreqHz <= 0 {
		return fmt.Errorf("%w: max frequency %.1f must be positive", ErrInvalidConfig, c.MaxFreqHz)
	}
	if c.TargetZoneSize <= 0 {
		return fmt.Errorf("%w: target zone size %d must be positive", ErrInvalidConfig, c.TargetZoneSize)
	}
	if len(c.Bands) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidConfig)
	}
	for _, b := range c.Bands {
		if b.Lo < 0 || b.Hi <= b.Lo || b.Hi > c.FreqBinSize {
			return fmt.Errorf("%w: band [%d,%d) outside frame of %d bins", ErrInvalidConfig, b.Lo, b.Hi, c.FreqBinSize)
		}
		if b.Hi-1 > MaxFreq {
			return fmt.Errorf("%w: band [%d,%d) does not fit %d frequency bits", ErrInvalidConfig, b.Lo, b.Hi, FreqBits)
		}
	}
	return nil
}
