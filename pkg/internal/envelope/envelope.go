// Package envelope isolates a keyed tone from raw audio and tracks its
// amplitude over time. The chain is a biquad bandpass around the carrier,
// full-wave rectification, an attack/decay follower, and block-average
// decimation down to a rate suited to keying speeds rather than audio rates.
package envelope

import (
	"math"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// Envelope time constants for keyed-tone detection. Attack must be fast
// enough to catch the start of a dot, decay slow enough to smooth filter
// ripple without bridging inter-element gaps.
const (
	attackTimeMs = 5.0
	decayTimeMs  = 15.0
)

// bandpassFilter is a biquad IIR bandpass. Q is derived from the requested
// bandwidth and floored at 0.5 to keep the filter stable.
type bandpassFilter struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

func newBandpassFilter(sampleRate, centerFreq, bandwidth float64) *bandpassFilter {
	q := centerFreq / bandwidth
	if q < 0.5 {
		q = 0.5
	}

	omega := 2.0 * math.Pi * centerFreq / sampleRate
	alpha := math.Sin(omega) / (2.0 * q)

	b0 := alpha
	b2 := -alpha
	a0 := 1.0 + alpha
	a1 := -2.0 * math.Cos(omega)
	a2 := 1.0 - alpha

	return &bandpassFilter{
		b0: b0 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}
}

func (f *bandpassFilter) process(sample float64) float64 {
	// y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
	out := f.b0*sample + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, sample
	f.y2, f.y1 = f.y1, out
	return out
}

// Extract returns the amplitude envelope of the tone around centerHz,
// decimated to approximately envelopeRate values per second. The returned
// Rate is the exact effective rate after decimation; a trailing partial
// block is dropped so the grid stays uniform. When centerHz or bandwidthHz
// is unusable the bandpass stage is skipped and the raw signal is followed.
func Extract(samples []float64, sampleRate, centerHz, bandwidthHz, envelopeRate float64) types.Envelope {
	if len(samples) == 0 || sampleRate <= 0 || envelopeRate <= 0 {
		return types.Envelope{Rate: envelopeRate}
	}

	block := int(math.Round(sampleRate / envelopeRate))
	if block < 1 {
		block = 1
	}
	rate := sampleRate / float64(block)

	var filter *bandpassFilter
	if centerHz > 0 && bandwidthHz > 0 && centerHz < sampleRate/2 {
		filter = newBandpassFilter(sampleRate, centerHz, bandwidthHz)
	}

	attackAlpha := 1000.0 / (attackTimeMs * sampleRate)
	decayAlpha := 1000.0 / (decayTimeMs * sampleRate)
	if attackAlpha > 1 {
		attackAlpha = 1
	}
	if decayAlpha > 1 {
		decayAlpha = 1
	}

	values := make([]float64, 0, len(samples)/block)
	follower := 0.0
	sum := 0.0
	count := 0
	for _, s := range samples {
		v := s
		if filter != nil {
			v = filter.process(s)
		}
		magnitude := math.Abs(v)
		if magnitude > follower {
			follower = attackAlpha*magnitude + (1-attackAlpha)*follower
		} else {
			follower = decayAlpha*magnitude + (1-decayAlpha)*follower
		}
		sum += follower
		count++
		if count == block {
			values = append(values, sum/float64(block))
			sum = 0
			count = 0
		}
	}

	return types.Envelope{Values: values, Rate: rate}
}
