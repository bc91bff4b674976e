package fingerprint

import (
	"errors"
	"math"
	"testing"

	"github.com/himanishpuri/ringabell/pkg/ringabell/dsp"
)

func TestHamming(t *testing.T) {
	w := Hamming(5)
	expected := []float64{0.08, 0.54, 1.0, 0.54, 0.08}
	for i := range w {
		if math.Abs(w[i]-expected[i]) > 1e-12 {
			t.Errorf("Hamming(5)[%d] = %f, expected %f", i, w[i], expected[i])
		}
	}
}

func TestLowPassFilter(t *testing.T) {
	// 5000/44100 is roughly 0.1134
	in := []float64{-0.9, 0.0, 0.1, 0.113, 0.2, 0.9}
	out := LowPassFilter(in, 5000, 44100)
	expected := []float64{-0.9, 0.0, 0.1, 0.113, 0, 0}

	for i := range out {
		if out[i] != expected[i] {
			t.Errorf("sample %d: got %f, expected %f", i, out[i], expected[i])
		}
	}

	atCutoff := LowPassFilter([]float64{5000.0 / 44100.0}, 5000, 44100)
	if atCutoff[0] != 0 {
		t.Errorf("sample equal to cutoff should be zeroed, got %f", atCutoff[0])
	}
}

func TestDownsample(t *testing.T) {
	in := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	out, err := Downsample(in, 44100, 11025)
	if err != nil {
		t.Fatalf("Downsample failed: %v", err)
	}

	expected := []float64{0, 4, 8}
	if len(out) != len(expected) {
		t.Fatalf("got %d samples, expected %d", len(out), len(expected))
	}
	for i := range out {
		if out[i] != expected[i] {
			t.Errorf("sample %d: got %f, expected %f", i, out[i], expected[i])
		}
	}

	if _, err := Downsample(in, 11025, 44100); err == nil {
		t.Error("expected error when upsampling")
	}
	if _, err := Downsample(in, 44100, 0); err == nil {
		t.Error("expected error for zero target rate")
	}
}

func TestSpectrogramFrameCount(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		samples  int
		expected int
	}{
		{0, 0},
		{2044, 0},   // 511 downsampled samples
		{2048, 1},   // 512
		{88200, 43}, // 2 s at 44.1 kHz -> 22050
	}

	for _, tt := range tests {
		spec, err := Spectrogram(make([]float64, tt.samples), 44100, cfg, nil)
		if err != nil {
			t.Fatalf("Spectrogram(%d samples) failed: %v", tt.samples, err)
		}
		if len(spec) != tt.expected {
			t.Errorf("Spectrogram(%d samples) = %d frames, expected %d", tt.samples, len(spec), tt.expected)
		}
		for i, frame := range spec {
			if len(frame) != cfg.FreqBinSize {
				t.Fatalf("frame %d has %d bins, expected %d", i, len(frame), cfg.FreqBinSize)
			}
		}
	}
}

func TestSpectrogramTone(t *testing.T) {
	const rate = 44100
	cfg := DefaultConfig()

	// 1 kHz at amplitude below the low-pass gate survives filtering untouched
	samples := make([]float64, rate)
	for i := range samples {
		samples[i] = 0.1 * math.Sin(2*math.Pi*1000*float64(i)/rate)
	}

	spec, err := Spectrogram(samples, rate, cfg, dsp.Radix2{})
	if err != nil {
		t.Fatalf("Spectrogram failed: %v", err)
	}
	if len(spec) == 0 {
		t.Fatal("no frames produced")
	}

	// downsampled rate is 11025, so 1 kHz lands near bin 1000*1024/11025
	expectedBin := int(math.Round(1000 * float64(cfg.FreqBinSize) / (rate / float64(cfg.DSPRatio))))
	frame := spec[1]
	best := 0
	for i := 1; i < cfg.FreqBinSize/2; i++ {
		if frame[i] > frame[best] {
			best = i
		}
	}
	if best < expectedBin-1 || best > expectedBin+1 {
		t.Errorf("tone peak at bin %d, expected about %d", best, expectedBin)
	}
}

func TestSpectrogramBackendsAgree(t *testing.T) {
	samples := make([]float64, 8192)
	for i := range samples {
		samples[i] = 0.05 * math.Sin(float64(i)*0.3)
	}

	a, err := Spectrogram(samples, 44100, DefaultConfig(), dsp.Radix2{})
	if err != nil {
		t.Fatalf("radix2: %v", err)
	}
	b, err := Spectrogram(samples, 44100, DefaultConfig(), dsp.GoDSP{})
	if err != nil {
		t.Fatalf("godsp: %v", err)
	}

	for f := range a {
		for k := range a[f] {
			if math.Abs(a[f][k]-b[f][k]) > 1e-6 {
				t.Fatalf("frame %d bin %d: %f vs %f", f, k, a[f][k], b[f][k])
			}
		}
	}
}

func TestSpectrogramRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FreqBinSize = 1000

	_, err := Spectrogram(make([]float64, 4096), 44100, cfg, nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if !errors.Is(err, dsp.ErrNotPowerOfTwo) {
		t.Errorf("expected ErrNotPowerOfTwo in chain, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"default", func(*Config) {}, true},
		{"hop equals bin", func(c *Config) { c.HopSize = c.FreqBinSize }, false},
		{"zero ratio", func(c *Config) { c.DSPRatio = 0 }, false},
		{"zero zone", func(c *Config) { c.TargetZoneSize = 0 }, false},
		{"no bands", func(c *Config) { c.Bands = nil }, false},
		{"band past frame", func(c *Config) { c.Bands = []Band{{0, 2048}} }, false},
		{"band past freq bits", func(c *Config) { c.Bands = []Band{{500, 600}} }, false},
		{"empty band", func(c *Config) { c.Bands = []Band{{10, 10}} }, false},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		err := cfg.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}
