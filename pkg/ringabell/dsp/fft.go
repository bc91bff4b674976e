package dsp

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotPowerOfTwo is returned when a transform is asked for a length that
// the radix-2 algorithm cannot split evenly down to one.
var ErrNotPowerOfTwo = errors.New("length is not a power of two")

// IsPowerOfTwo reports whether n is 1, 2, 4, 8, ...
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func checkLength(n int) error {
	if n == 0 || IsPowerOfTwo(n) {
		return nil
	}
	return fmt.Errorf("fft of %d points: %w", n, ErrNotPowerOfTwo)
}

// FFT returns the N-point discrete Fourier transform of x in natural order.
// x itself is left untouched. An empty input yields an empty output.
func FFT(x []Complex) ([]Complex, error) {
	if err := checkLength(len(x)); err != nil {
		return nil, err
	}
	out := make([]Complex, len(x))
	copy(out, x)
	return radix2(out), nil
}

// radix2 is the recursive decimation-in-time step. It overwrites and
// returns x.
func radix2(x []Complex) []Complex {
	n := len(x)
	if n <= 1 {
		return x
	}

	half := n / 2
	even := make([]Complex, half)
	odd := make([]Complex, half)
	for i := 0; i < half; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	even = radix2(even)
	odd = radix2(odd)

	for k := 0; k < half; k++ {
		t := FromPolar(1, -2*math.Pi*float64(k)/float64(n)).Mul(odd[k])
		x[k] = even[k].Add(t)
		x[k+half] = even[k].Sub(t)
	}
	return x
}

// IFFT inverts FFT by conjugating, transforming, conjugating again and
// rescaling by 1/N.
func IFFT(spectrum []Complex) ([]Complex, error) {
	n := len(spectrum)
	conj := make([]Complex, n)
	for i, c := range spectrum {
		conj[i] = c.Conjugate()
	}

	out, err := FFT(conj)
	if err != nil {
		return nil, err
	}

	scale := 1 / float64(n)
	for i, c := range out {
		out[i] = c.Conjugate().Scale(scale)
	}
	return out, nil
}

// FFTReal transforms a real-valued sequence.
func FFTReal(x []float64) ([]Complex, error) {
	in := make([]Complex, len(x))
	for i, v := range x {
		in[i] = Real(v)
	}
	return FFT(in)
}

// Magnitudes reduces a spectrum to the norm of every bin.
func Magnitudes(spectrum []Complex) []float64 {
	mag := make([]float64, len(spectrum))
	for i, c := range spectrum {
		mag[i] = c.Magnitude()
	}
	return mag
}
