package audio

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"
)

// DefaultSampleRate is assumed for headerless PCM.
const DefaultSampleRate = 44100

const wavPCMFormat = 1

// Clip is decoded mono audio ready for fingerprinting.
type Clip struct {
	Samples    []float64
	SampleRate int
	Duration   float64 // seconds
}

// IsWAV reports whether raw starts with a RIFF/WAVE header.
func IsWAV(raw []byte) bool {
	return len(raw) >= 12 && string(raw[0:4]) == "RIFF" && string(raw[8:12]) == "WAVE"
}

// Decode turns a byte buffer into a Clip. RIFF/WAVE input is parsed and
// mixed down to mono; anything else is taken as headerless 16-bit PCM at
// fallbackRate.
func Decode(raw []byte, fallbackRate int) (Clip, error) {
	if len(raw)%2 != 0 {
		return Clip{}, fmt.Errorf("%d bytes: %w", len(raw), ErrOddLength)
	}
	if IsWAV(raw) {
		return decodeWAV(raw)
	}

	if fallbackRate <= 0 {
		fallbackRate = DefaultSampleRate
	}
	samples, err := BytesToSamples(raw)
	if err != nil {
		return Clip{}, err
	}
	return Clip{
		Samples:    samples,
		SampleRate: fallbackRate,
		Duration:   float64(len(samples)) / float64(fallbackRate),
	}, nil
}

func decodeWAV(raw []byte) (Clip, error) {
	decoder := wav.NewDecoder(bytes.NewReader(raw))
	if !decoder.IsValidFile() {
		if err := decoder.Err(); err != nil {
			return Clip{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		return Clip{}, ErrInvalidHeader
	}
	if decoder.SampleRate == 0 || decoder.NumChans == 0 {
		return Clip{}, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidHeader, decoder.SampleRate, decoder.NumChans)
	}
	if decoder.WavAudioFormat != wavPCMFormat {
		return Clip{}, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}
	if decoder.BitDepth != 16 {
		return Clip{}, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, decoder.BitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("%w: reading PCM data: %v", ErrInvalidHeader, err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return Clip{}, fmt.Errorf("%w: no PCM data", ErrInvalidHeader)
	}

	channels := int(decoder.NumChans)
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum / float64(channels) / pcmScale
	}

	rate := int(decoder.SampleRate)
	return Clip{
		Samples:    samples,
		SampleRate: rate,
		Duration:   float64(frames) / float64(rate),
	}, nil
}
