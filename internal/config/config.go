// Package config loads binary configuration from defaults, an optional YAML
// file and RINGABELL_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/himanishpuri/ringabell/pkg/logger"
	"github.com/himanishpuri/ringabell/pkg/ringabell"
	"github.com/himanishpuri/ringabell/pkg/ringabell/dsp"
	"github.com/himanishpuri/ringabell/pkg/ringabell/index"
	"github.com/spf13/viper"
)

const EnvPrefix = "RINGABELL"

type Config struct {
	SampleRate   int          `mapstructure:"sample_rate"`
	MinScore     int          `mapstructure:"min_score"`
	IndexBackend string       `mapstructure:"index_backend"`
	FFTBackend   string       `mapstructure:"fft_backend"`
	LogLevel     string       `mapstructure:"log_level"`
	Server       ServerConfig `mapstructure:"server"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	Origins     []string `mapstructure:"origins"`
	MaxUploadMB int      `mapstructure:"max_upload_mb"`
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sample_rate", ringabell.DefaultSampleRate)
	v.SetDefault("min_score", ringabell.DefaultMinScore)
	v.SetDefault("index_backend", index.BackendMemory)
	v.SetDefault("fft_backend", "radix2")
	v.SetDefault("log_level", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 50)
}

// Load reads configFile when given and decodes v into a Config.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate))
	}
	if c.MinScore < 0 {
		errs = append(errs, fmt.Errorf("min_score must not be negative, got %d", c.MinScore))
	}
	if _, err := dsp.Backend(c.FFTBackend); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.IndexBackend) {
	case index.BackendMemory, index.BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown index backend %q", c.IndexBackend))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB))
	}
	return errors.Join(errs...)
}

// NewLogger builds the process logger at the configured level.
func (c *Config) NewLogger() *logger.Logger {
	log := logger.GetLogger()
	if level, err := logger.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	return log
}

// ServiceOptions turns the configuration into ringabell options. The
// returned index is owned by the Service built from them.
func (c *Config) ServiceOptions(log ringabell.Logger) ([]ringabell.Option, error) {
	tr, err := dsp.Backend(c.FFTBackend)
	if err != nil {
		return nil, err
	}
	idx, err := index.New(c.IndexBackend)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return []ringabell.Option{
		ringabell.WithSampleRate(c.SampleRate),
		ringabell.WithMinScore(c.MinScore),
		ringabell.WithTransformer(tr),
		ringabell.WithIndex(idx),
		ringabell.WithLogger(log),
	}, nil
}
