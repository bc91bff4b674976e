package ringabell

import (
	"github.com/himanishpuri/ringabell/pkg/ringabell/dsp"
	"github.com/himanishpuri/ringabell/pkg/ringabell/fingerprint"
	"github.com/himanishpuri/ringabell/pkg/ringabell/index"
)

const (
	DefaultSampleRate = 44100
	DefaultMinScore   = 10
)

type Config struct {
	SampleRate  int // rate assumed for headerless PCM input
	MinScore    int
	Pipeline    fingerprint.Config
	Transformer dsp.Transformer
	Index       index.Index
	Logger      Logger
}

type Option func(*Config)

// WithSampleRate sets the rate assumed for headerless PCM input.
func WithSampleRate(rate int) Option {
	return func(c *Config) {
		c.SampleRate = rate
	}
}

// WithMinScore sets the number of matching fingerprints a search needs.
func WithMinScore(score int) Option {
	return func(c *Config) {
		c.MinScore = score
	}
}

// WithPipeline overrides the spectrogram, peak and hashing settings.
func WithPipeline(cfg fingerprint.Config) Option {
	return func(c *Config) {
		c.Pipeline = cfg
	}
}

// WithTransformer selects the FFT backend.
func WithTransformer(tr dsp.Transformer) Option {
	return func(c *Config) {
		c.Transformer = tr
	}
}

// WithIndex replaces the default in-memory index. The Service closes it.
func WithIndex(idx index.Index) Option {
	return func(c *Config) {
		c.Index = idx
	}
}

// WithLogger sets the logger, logger.GetLogger() by default.
func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func defaultConfig() *Config {
	return &Config{
		SampleRate:  DefaultSampleRate,
		MinScore:    DefaultMinScore,
		Pipeline:    fingerprint.DefaultConfig(),
		Transformer: dsp.Radix2{},
	}
}
