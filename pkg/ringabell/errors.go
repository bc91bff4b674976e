package ringabell

import (
	"errors"
	"fmt"

	"github.com/himanishpuri/ringabell/pkg/ringabell/audio"
	"github.com/himanishpuri/ringabell/pkg/ringabell/dsp"
	"github.com/himanishpuri/ringabell/pkg/ringabell/fingerprint"
)

// Kind classifies a failed call. A search that matches nothing is not an
// error and has no Kind.
type Kind int

const (
	KindInternal Kind = iota
	KindMalformedInput
	KindPreconditionViolation
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInput:
		return "malformed input"
	case KindPreconditionViolation:
		return "precondition violation"
	default:
		return "internal error"
	}
}

var (
	// ErrMalformedInput matches errors caused by undecodable audio bytes.
	ErrMalformedInput = errors.New("malformed input")
	// ErrPreconditionViolation matches errors from pipeline invariants such
	// as a non power-of-two transform or an overflowing fingerprint field.
	ErrPreconditionViolation = errors.New("precondition violation")
)

// Error is returned by every Service operation that fails.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the Kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMalformedInput:
		return e.Kind == KindMalformedInput
	case ErrPreconditionViolation:
		return e.Kind == KindPreconditionViolation
	}
	return false
}

// KindOf returns the Kind carried by err, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}

	kind := KindInternal
	switch {
	case errors.Is(err, audio.ErrOddLength),
		errors.Is(err, audio.ErrInvalidHeader),
		errors.Is(err, audio.ErrUnsupportedFormat):
		kind = KindMalformedInput
	case errors.Is(err, dsp.ErrNotPowerOfTwo),
		errors.Is(err, fingerprint.ErrPeakOrder),
		errors.Is(err, fingerprint.ErrFieldOverflow),
		errors.Is(err, fingerprint.ErrInvalidConfig):
		kind = KindPreconditionViolation
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
