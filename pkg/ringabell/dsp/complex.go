package dsp

import "math"

// Complex is the working value of the transform: a (real, imaginary) pair.
type Complex struct {
	Re float64
	Im float64
}

// FromPolar builds r·e^(iθ).
func FromPolar(r, theta float64) Complex {
	return Complex{Re: r * math.Cos(theta), Im: r * math.Sin(theta)}
}

// Real lifts a real sample into the complex plane.
func Real(v float64) Complex {
	return Complex{Re: v}
}

// Add returns c + o.
func (c Complex) Add(o Complex) Complex {
	return Complex{Re: c.Re + o.Re, Im: c.Im + o.Im}
}

// Sub returns c - o.
func (c Complex) Sub(o Complex) Complex {
	return Complex{Re: c.Re - o.Re, Im: c.Im - o.Im}
}

// Mul is (ac − bd, ad + bc).
func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Re: c.Re*o.Re - c.Im*o.Im,
		Im: c.Re*o.Im + c.Im*o.Re,
	}
}

// Scale multiplies both parts by a real factor.
func (c Complex) Scale(f float64) Complex {
	return Complex{Re: c.Re * f, Im: c.Im * f}
}

// Conjugate negates the imaginary part.
func (c Complex) Conjugate() Complex {
	return Complex{Re: c.Re, Im: -c.Im}
}

// Magnitude is the Euclidean norm of the pair.
func (c Complex) Magnitude() float64 {
	return math.Hypot(c.Re, c.Im)
}

func (c Complex) complex128() complex128 {
	return complex(c.Re, c.Im)
}

func fromComplex128(v complex128) Complex {
	return Complex{Re: real(v), Im: imag(v)}
}
