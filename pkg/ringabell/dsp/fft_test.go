package dsp

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/dsp/fourier"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestComplexArithmetic(t *testing.T) {
	a := Complex{Re: 1, Im: 2}
	b := Complex{Re: 3, Im: -1}

	tests := []struct {
		name     string
		got      Complex
		expected Complex
	}{
		{"add", a.Add(b), Complex{4, 1}},
		{"sub", a.Sub(b), Complex{-2, 3}},
		{"mul", a.Mul(b), Complex{5, 5}},
		{"conjugate", a.Conjugate(), Complex{1, -2}},
		{"scale", a.Scale(0.5), Complex{0.5, 1}},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: got %+v, expected %+v", tt.name, tt.got, tt.expected)
		}
	}

	if m := (Complex{Re: 3, Im: 4}).Magnitude(); m != 5 {
		t.Errorf("Magnitude of 3+4i = %f, expected 5", m)
	}

	p := FromPolar(2, math.Pi/2)
	if !approxEqual(p.Re, 0) || !approxEqual(p.Im, 2) {
		t.Errorf("FromPolar(2, π/2) = %+v", p)
	}
}

func TestFFTImpulse(t *testing.T) {
	out, err := FFTReal([]float64{1, 0, 0, 0})
	if err != nil {
		t.Fatalf("FFT failed: %v", err)
	}

	for i, m := range Magnitudes(out) {
		if !approxEqual(m, 1) {
			t.Errorf("bin %d magnitude = %f, expected 1", i, m)
		}
	}
}

func TestFFTConstant(t *testing.T) {
	out, err := FFTReal([]float64{1, 1, 1, 1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("FFT failed: %v", err)
	}

	if !approxEqual(out[0].Re, 8) || !approxEqual(out[0].Im, 0) {
		t.Errorf("DC bin = %+v, expected 8", out[0])
	}
	for i := 1; i < len(out); i++ {
		if out[i].Magnitude() > tolerance {
			t.Errorf("bin %d = %+v, expected 0", i, out[i])
		}
	}
}

func TestFFTTrivialLengths(t *testing.T) {
	out, err := FFT(nil)
	if err != nil || len(out) != 0 {
		t.Errorf("FFT(nil) = %v, %v", out, err)
	}

	single := []Complex{{Re: 3, Im: -2}}
	out, err = FFT(single)
	if err != nil {
		t.Fatalf("FFT of one point failed: %v", err)
	}
	if out[0] != single[0] {
		t.Errorf("FFT of one point = %+v, expected %+v", out[0], single[0])
	}
}

func TestFFTRejectsNonPowerOfTwo(t *testing.T) {
	for _, n := range []int{3, 6, 1000} {
		_, err := FFT(make([]Complex, n))
		if !errors.Is(err, ErrNotPowerOfTwo) {
			t.Errorf("FFT of %d points: err = %v, expected ErrNotPowerOfTwo", n, err)
		}
	}
}

func TestFFTDoesNotModifyInput(t *testing.T) {
	in := []Complex{{1, 0}, {2, 0}, {3, 0}, {4, 0}}
	snapshot := append([]Complex(nil), in...)

	if _, err := FFT(in); err != nil {
		t.Fatalf("FFT failed: %v", err)
	}
	for i := range in {
		if in[i] != snapshot[i] {
			t.Fatalf("input modified at %d: %+v", i, in[i])
		}
	}
}

func TestIFFTRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := make([]Complex, 256)
	for i := range in {
		in[i] = Complex{Re: rng.Float64()*2 - 1, Im: rng.Float64()*2 - 1}
	}

	spectrum, err := FFT(in)
	if err != nil {
		t.Fatalf("FFT failed: %v", err)
	}
	back, err := IFFT(spectrum)
	if err != nil {
		t.Fatalf("IFFT failed: %v", err)
	}

	for i := range in {
		if !approxEqual(in[i].Re, back[i].Re) || !approxEqual(in[i].Im, back[i].Im) {
			t.Fatalf("round trip mismatch at %d: %+v vs %+v", i, in[i], back[i])
		}
	}
}

// gonum's FFTPACK port serves as the reference transform.
func TestFFTMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{2, 16, 1024} {
		in := make([]Complex, n)
		seq := make([]complex128, n)
		for i := range in {
			in[i] = Complex{Re: rng.NormFloat64(), Im: rng.NormFloat64()}
			seq[i] = in[i].complex128()
		}

		got, err := FFT(in)
		if err != nil {
			t.Fatalf("FFT(%d) failed: %v", n, err)
		}
		want := fourier.NewCmplxFFT(n).Coefficients(nil, seq)

		for k := range want {
			if math.Abs(got[k].Re-real(want[k])) > 1e-6 || math.Abs(got[k].Im-imag(want[k])) > 1e-6 {
				t.Fatalf("n=%d bin %d: got %+v, gonum %v", n, k, got[k], want[k])
			}
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := make([]Complex, 512)
	for i := range in {
		in[i] = Real(rng.Float64())
	}

	a, err := Radix2{}.Transform(in)
	if err != nil {
		t.Fatalf("radix2 failed: %v", err)
	}
	b, err := GoDSP{}.Transform(in)
	if err != nil {
		t.Fatalf("godsp failed: %v", err)
	}

	for k := range a {
		if math.Abs(a[k].Re-b[k].Re) > 1e-6 || math.Abs(a[k].Im-b[k].Im) > 1e-6 {
			t.Fatalf("bin %d: radix2 %+v, godsp %+v", k, a[k], b[k])
		}
	}

	if _, err := (GoDSP{}).Transform(make([]Complex, 12)); !errors.Is(err, ErrNotPowerOfTwo) {
		t.Errorf("godsp accepted 12 points: %v", err)
	}
}

func TestBackendLookup(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		wantErr  bool
	}{
		{"", "radix2", false},
		{"radix2", "radix2", false},
		{"GoDSP", "godsp", false},
		{"fftw", "", true},
	}

	for _, tt := range tests {
		tr, err := Backend(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Backend(%q) expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("Backend(%q) error: %v", tt.name, err)
			continue
		}
		if tr.Name() != tt.expected {
			t.Errorf("Backend(%q) = %s, expected %s", tt.name, tr.Name(), tt.expected)
		}
	}
}
