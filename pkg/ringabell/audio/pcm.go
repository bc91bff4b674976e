package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// pcmScale maps int16 onto roughly [-1, 1]. -32768 lands just below -1.
const pcmScale = math.MaxInt16

var (
	// ErrOddLength means a 16-bit PCM stream was cut mid-sample.
	ErrOddLength = errors.New("odd-length 16-bit PCM stream")
	// ErrInvalidHeader means a RIFF/WAVE container could not be parsed.
	ErrInvalidHeader = errors.New("invalid WAV header")
	// ErrUnsupportedFormat means a WAV file is not 16-bit integer PCM.
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
)

// BytesToSamples decodes little-endian signed 16-bit PCM into normalized samples.
func BytesToSamples(raw []byte) ([]float64, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%d bytes: %w", len(raw), ErrOddLength)
	}

	samples := make([]float64, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float64(v) / pcmScale
	}
	return samples, nil
}

// Quantize converts a normalized sample back to int16, clamping out of range values.
func Quantize(s float64) int16 {
	v := math.Round(s * pcmScale)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// EncodePCM is the inverse of BytesToSamples up to quantization.
func EncodePCM(samples []float64) []byte {
	raw := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(Quantize(s)))
	}
	return raw
}
