package fingerprint

import (
	"errors"
	"fmt"
)

// Field widths of a fingerprint. The address packs anchor frequency, target
// frequency and delta; the low 32 bits of the hash carry the anchor time.
const (
	FreqBits  = 9
	DeltaBits = 14
	TimeBits  = 32

	targetShift = DeltaBits
	anchorShift = DeltaBits + FreqBits

	MaxFreq     = 1<<FreqBits - 1
	MaxDeltaMs  = 1<<DeltaBits - 1
	MaxAnchorMs = 1<<TimeBits - 1
)

var (
	// ErrFieldOverflow means a value does not fit its bit field.
	ErrFieldOverflow = errors.New("fingerprint field overflow")
	// ErrPeakOrder means a target peak precedes its anchor in time.
	ErrPeakOrder = errors.New("peaks out of time order")
)

// Address is the 32-bit frequency-pair-plus-delta key of a fingerprint.
type Address uint32

// NewAddress packs a peak pair, failing with ErrFieldOverflow when a value
// does not fit its field.
func NewAddress(anchorFreq, targetFreq int, deltaMs uint64) (Address, error) {
	if anchorFreq < 0 || anchorFreq > MaxFreq {
		return 0, fmt.Errorf("%w: anchor frequency %d exceeds %d bits", ErrFieldOverflow, anchorFreq, FreqBits)
	}
	if targetFreq < 0 || targetFreq > MaxFreq {
		return 0, fmt.Errorf("%w: target frequency %d exceeds %d bits", ErrFieldOverflow, targetFreq, FreqBits)
	}
	if deltaMs > MaxDeltaMs {
		return 0, fmt.Errorf("%w: delta %dms exceeds %d bits", ErrFieldOverflow, deltaMs, DeltaBits)
	}
	return Address(uint32(anchorFreq)<<anchorShift | uint32(targetFreq)<<targetShift | uint32(deltaMs)), nil
}

// AnchorFreq, TargetFreq and DeltaMs unpack the address fields.
func (a Address) AnchorFreq() int { return int(a >> anchorShift & MaxFreq) }

func (a Address) TargetFreq() int { return int(a >> targetShift & MaxFreq) }

func (a Address) DeltaMs() uint32 { return uint32(a) & MaxDeltaMs }

// Fingerprint is the structured form of a 64-bit hash.
type Fingerprint struct {
	Address  Address
	AnchorMs uint32
}

// NewFingerprint attaches the anchor time to addr. The time must fit 32 bits.
func NewFingerprint(addr Address, anchorMs uint64) (Fingerprint, error) {
	if anchorMs > MaxAnchorMs {
		return Fingerprint{}, fmt.Errorf("%w: anchor time %dms exceeds %d bits", ErrFieldOverflow, anchorMs, TimeBits)
	}
	return Fingerprint{Address: addr, AnchorMs: uint32(anchorMs)}, nil
}

// Hash is (address << 32) | anchor time.
func (f Fingerprint) Hash() uint64 {
	return uint64(f.Address)<<TimeBits | uint64(f.AnchorMs)
}

// Parse splits a hash back into its fields.
func Parse(hash uint64) Fingerprint {
	return Fingerprint{
		Address:  Address(hash >> TimeBits),
		AnchorMs: uint32(hash),
	}
}

// String renders the fields as "anchor->target +delta @anchorTime".
func (f Fingerprint) String() string {
	return fmt.Sprintf("%d->%d +%dms @%dms", f.Address.AnchorFreq(), f.Address.TargetFreq(), f.Address.DeltaMs(), f.AnchorMs)
}
