package dsp

import (
	"fmt"
	"strings"

	"github.com/mjibson/go-dsp/fft"
)

// Transformer computes a forward transform. Implementations must agree with
// FFT within floating-point tolerance.
type Transformer interface {
	Transform(x []Complex) ([]Complex, error)
	Name() string
}

// Radix2 uses the package's own recursive FFT.
type Radix2 struct{}

// Transform runs FFT on x.
func (Radix2) Transform(x []Complex) ([]Complex, error) { return FFT(x) }

func (Radix2) Name() string { return "radix2" }

// GoDSP delegates to github.com/mjibson/go-dsp. That library also accepts
// arbitrary lengths via Bluestein, but the power-of-two contract is kept so
// both backends are interchangeable.
type GoDSP struct{}

// Transform converts x to complex128 and runs fft.FFT.
func (GoDSP) Transform(x []Complex) ([]Complex, error) {
	if err := checkLength(len(x)); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return []Complex{}, nil
	}

	in := make([]complex128, len(x))
	for i, c := range x {
		in[i] = c.complex128()
	}

	res := fft.FFT(in)
	out := make([]Complex, len(res))
	for i, v := range res {
		out[i] = fromComplex128(v)
	}
	return out, nil
}

func (GoDSP) Name() string { return "godsp" }

// Backend resolves a configured backend name.
func Backend(name string) (Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "radix2":
		return Radix2{}, nil
	case "godsp", "go-dsp":
		return GoDSP{}, nil
	default:
		return nil, fmt.Errorf("unknown fft backend %q", name)
	}
}
