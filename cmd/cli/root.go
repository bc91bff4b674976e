package main

import (
	"fmt"
	"os"

	"github.com/himanishpuri/ringabell/internal/config"
	"github.com/himanishpuri/ringabell/pkg/logger"
	"github.com/himanishpuri/ringabell/pkg/ringabell"
	"github.com/himanishpuri/ringabell/pkg/ringabell/index"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configFile string

	v         = config.NewViper()
	appConfig *config.Config
	log       *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ringabell",
	Short: "Fingerprint audio clips and match them against a catalog",
	Long: `ringabell fingerprints uncompressed audio (RIFF/WAVE or headerless
16-bit little-endian PCM) and matches query clips against recordings
registered in the same run.

The index lives in process memory, so "match" registers the catalog
files it is given before searching.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load()

		cfg, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		appConfig = cfg
		log = cfg.NewLogger()
		// stdout carries command output
		log.SetOutput(os.Stderr)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "log level (debug, info, warn, fatal)")
	pf.Int("rate", ringabell.DefaultSampleRate, "sample rate assumed for headerless PCM")
	pf.Int("min-score", ringabell.DefaultMinScore, "matching fingerprints required for a match")
	pf.String("index", index.BackendMemory, "index backend (memory, sqlite)")
	pf.String("fft", "radix2", "FFT backend (radix2, godsp)")

	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = v.BindPFlag("sample_rate", pf.Lookup("rate"))
	_ = v.BindPFlag("min_score", pf.Lookup("min-score"))
	_ = v.BindPFlag("index_backend", pf.Lookup("index"))
	_ = v.BindPFlag("fft_backend", pf.Lookup("fft"))
}

// newService builds a Service from the loaded configuration.
func newService() (ringabell.Service, error) {
	opts, err := appConfig.ServiceOptions(log)
	if err != nil {
		return nil, err
	}
	svc, err := ringabell.NewService(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func readInput(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}
