package main

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/eligwz/spectrogram"
	"github.com/himanishpuri/ringabell/pkg/ringabell/audio"
	"github.com/himanishpuri/ringabell/pkg/utils"
	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderWidth  int
	renderHeight int
	renderLog    bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render the spectrogram of a clip to PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "PNG path (default: input with .png extension)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 2048, "image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 512, "image height in pixels, one per frequency bin")
	renderCmd.Flags().BoolVar(&renderLog, "log10", false, "log10 magnitude scale")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderWidth <= 0 || renderHeight <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", renderWidth, renderHeight)
	}

	raw, err := readInput(args[0])
	if err != nil {
		return err
	}
	clip, err := audio.Decode(raw, appConfig.SampleRate)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}
	if len(clip.Samples) == 0 {
		return fmt.Errorf("%s has no samples", args[0])
	}

	img := spectrogram.NewImage128(image.Rect(0, 0, renderWidth, renderHeight))
	black := spectrogram.ParseColor("000000")
	draw.Draw(img, img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)

	// Hamming window, FFT, magnitude
	spectrogram.Drawfft(img, clip.Samples, uint32(clip.SampleRate), uint32(renderHeight),
		false, false, true, renderLog)

	out := renderOutput
	if out == "" {
		out = utils.ReplaceExt(args[0], ".png")
	}
	if err := utils.EnsureParentDir(out); err != nil {
		return err
	}
	if err := spectrogram.SavePng(img, out); err != nil {
		return fmt.Errorf("saving %s: %w", out, err)
	}

	log.Infof("Rendered %d samples at %d Hz to %s", len(clip.Samples), clip.SampleRate, out)
	return nil
}
