package fingerprint

import "math"

// Peak is a locally dominant point of a spectrogram. TimeMs is scaled to the
// clip's real duration, FreqIdx indexes a frame's magnitudes.
type Peak struct {
	TimeMs  uint64
	FreqIdx int
}

// ExtractPeaks picks, per frame, the strongest bin of every band and keeps
// the bands whose maximum beats the mean of the frame's non-zero maxima.
// Peaks come out in frame order, then band order.
func ExtractPeaks(spectrogram [][]float64, durationSec float64, bands []Band) []Peak {
	if len(spectrogram) == 0 {
		return nil
	}
	if durationSec < 0 {
		durationSec = 0
	}

	binDuration := durationSec / float64(len(spectrogram))
	peaks := make([]Peak, 0, len(spectrogram)*2)

	maxMags := make([]float64, 0, len(bands))
	maxIdx := make([]int, 0, len(bands))

	for frameIdx, frame := range spectrogram {
		maxMags = maxMags[:0]
		maxIdx = maxIdx[:0]

		for _, b := range bands {
			mag := 0.0
			idx := b.Lo
			for f := b.Lo; f < b.Hi && f < len(frame); f++ {
				if frame[f] > mag {
					mag = frame[f]
					idx = f
				}
			}
			if mag > 0 {
				maxMags = append(maxMags, mag)
				maxIdx = append(maxIdx, idx)
			}
		}
		if len(maxMags) == 0 {
			continue
		}

		var sum float64
		for _, m := range maxMags {
			sum += m
		}
		avg := sum / float64(len(maxMags))

		for i, m := range maxMags {
			if m <= avg {
				continue
			}
			offset := float64(maxIdx[i]) * binDuration / float64(len(frame))
			seconds := float64(frameIdx)*binDuration + offset
			peaks = append(peaks, Peak{
				TimeMs:  uint64(math.Trunc(seconds * 1000)),
				FreqIdx: maxIdx[i],
			})
		}
	}
	return peaks
}
