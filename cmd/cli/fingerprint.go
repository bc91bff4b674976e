package main

import (
	"fmt"

	"github.com/himanishpuri/ringabell/pkg/ringabell/fingerprint"
	"github.com/spf13/cobra"
)

var (
	fingerprintHashes bool
	fingerprintPeaks  bool
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <file>",
	Short: "Print the fingerprint summary of a clip",
	Args:  cobra.ExactArgs(1),
	RunE:  runFingerprint,
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)
	fingerprintCmd.Flags().BoolVar(&fingerprintHashes, "hashes", false, "list every fingerprint")
	fingerprintCmd.Flags().BoolVar(&fingerprintPeaks, "peaks", false, "list every peak")
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	a, err := svc.Fingerprint(cmd.Context(), raw)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:         %s\n", args[0])
	fmt.Fprintf(out, "sample rate:  %d Hz\n", a.SampleRate)
	fmt.Fprintf(out, "duration:     %.3fs\n", a.Duration)
	fmt.Fprintf(out, "samples:      %d\n", a.Samples)
	fmt.Fprintf(out, "frames:       %d\n", a.Frames)
	fmt.Fprintf(out, "peaks:        %d\n", len(a.Peaks))
	fmt.Fprintf(out, "fingerprints: %d\n", len(a.Hashes))

	if fingerprintPeaks {
		fmt.Fprintln(out)
		for _, p := range a.Peaks {
			fmt.Fprintf(out, "%8dms  bin %d\n", p.TimeMs, p.FreqIdx)
		}
	}
	if fingerprintHashes {
		fmt.Fprintln(out)
		for _, h := range a.Hashes {
			fmt.Fprintf(out, "%016x  %s\n", h, fingerprint.Parse(h))
		}
	}
	return nil
}
