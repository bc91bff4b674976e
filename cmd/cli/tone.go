package main

import (
	"fmt"
	"os"

	"github.com/himanishpuri/ringabell/pkg/ringabell/audio"
	"github.com/himanishpuri/ringabell/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	toneOutput   string
	toneFreq     float64
	toneSeconds  float64
	toneAmp      float64
	toneNoise    bool
	toneNoiseAmp float64
	toneSeed     int64
	tonePCM      bool
)

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Write a synthetic test clip",
	Long: `Writes a sine tone (or white noise with --noise) as 16-bit mono WAV.
--noise-amp mixes seeded white noise under the tone.
Amplitudes above about 0.11 are clipped by the low-pass stage and
fingerprint poorly.`,
	Args: cobra.NoArgs,
	RunE: runTone,
}

func init() {
	rootCmd.AddCommand(toneCmd)
	f := toneCmd.Flags()
	f.StringVarP(&toneOutput, "output", "o", "tone.wav", "output path")
	f.Float64Var(&toneFreq, "freq", 440, "tone frequency in Hz")
	f.Float64Var(&toneSeconds, "seconds", 2, "clip length in seconds")
	f.Float64Var(&toneAmp, "amp", 0.1, "peak amplitude in [0, 1]")
	f.BoolVar(&toneNoise, "noise", false, "white noise instead of a tone")
	f.Float64Var(&toneNoiseAmp, "noise-amp", 0, "amplitude of white noise mixed under the tone")
	f.Int64Var(&toneSeed, "seed", 1, "noise seed")
	f.BoolVar(&tonePCM, "pcm", false, "write headerless PCM instead of WAV")
}

func runTone(cmd *cobra.Command, args []string) error {
	if toneSeconds <= 0 {
		return fmt.Errorf("seconds must be positive, got %g", toneSeconds)
	}
	if toneAmp < 0 || toneAmp > 1 {
		return fmt.Errorf("amp must be in [0, 1], got %g", toneAmp)
	}
	if toneNoiseAmp < 0 || toneAmp+toneNoiseAmp > 1 {
		return fmt.Errorf("amp plus noise-amp must be in [0, 1], got %g", toneAmp+toneNoiseAmp)
	}

	rate := appConfig.SampleRate
	var samples []float64
	if toneNoise {
		samples = audio.WhiteNoise(toneSeconds, rate, toneAmp, toneSeed)
	} else {
		samples = audio.Sine(toneFreq, toneSeconds, rate, toneAmp)
		if toneNoiseAmp > 0 {
			samples = audio.Mix(samples, audio.WhiteNoise(toneSeconds, rate, toneNoiseAmp, toneSeed))
		}
	}

	if err := utils.EnsureParentDir(toneOutput); err != nil {
		return err
	}
	if tonePCM {
		if err := os.WriteFile(toneOutput, audio.EncodePCM(samples), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", toneOutput, err)
		}
	} else if err := audio.WriteWAVFile(toneOutput, samples, rate); err != nil {
		return err
	}

	log.Infof("Wrote %d samples at %d Hz to %s", len(samples), rate, toneOutput)
	return nil
}
