package keyer

import "math"

// writer accumulates the output waveform piece by piece. Each piece is
// rounded to whole samples independently, so a render is reproducible for a
// given sample rate regardless of how the durations divide.
type writer struct {
	sampleRate float64
	frequency  float64
	amplitude  float64
	edgeRamp   float64
	samples    []float64
}

func newWriter(sampleRate, frequency, amplitude, edgeRamp float64) *writer {
	return &writer{
		sampleRate: sampleRate,
		frequency:  frequency,
		amplitude:  amplitude,
		edgeRamp:   edgeRamp,
	}
}

func (w *writer) silence(seconds float64) {
	if seconds <= 0 {
		return
	}
	w.samples = append(w.samples, make([]float64, w.count(seconds))...)
}

// tone appends one sine burst. A raised-cosine ramp shapes both edges; when
// the burst is too short for two full ramps, the ramps shrink to half the
// burst so attack and release never overlap.
func (w *writer) tone(seconds float64) {
	n := w.count(seconds)
	if n == 0 {
		return
	}
	ramp := w.count(w.edgeRamp)
	if 2*ramp > n {
		ramp = n / 2
	}

	omega := 2 * math.Pi * w.frequency / w.sampleRate
	for i := 0; i < n; i++ {
		v := w.amplitude * math.Sin(omega*float64(i))
		switch {
		case ramp > 0 && i < ramp:
			v *= 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(ramp)))
		case ramp > 0 && i >= n-ramp:
			v *= 0.5 * (1 - math.Cos(math.Pi*float64(n-1-i)/float64(ramp)))
		}
		w.samples = append(w.samples, v)
	}
}

func (w *writer) count(seconds float64) int {
	return int(math.Round(seconds * w.sampleRate))
}
