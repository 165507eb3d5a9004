package spectral_test

import (
	"math"
	"testing"

	"github.com/PandasDrive/M2T/pkg/internal/spectral"
)

func sine(freq, sampleRate, duration, amplitude float64) []float64 {
	n := int(duration * sampleRate)
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func addInPlace(dst, src []float64) {
	for i := range dst {
		if i < len(src) {
			dst[i] += src[i]
		}
	}
}

func TestEstimateCarrierPureTone(t *testing.T) {
	samples := sine(700, 44100, 1.0, 0.8)
	freq, ok := spectral.EstimateCarrier(samples, 44100, 300, 1000)
	if !ok {
		t.Fatalf("expected carrier to be found")
	}
	if math.Abs(freq-700) > 5 {
		t.Fatalf("expected ~700 Hz, got %.2f", freq)
	}
}

func TestEstimateCarrierIgnoresOutOfBandPeak(t *testing.T) {
	// A strong 150 Hz hum plus a weaker in-band tone. The band restriction
	// must pick the in-band tone.
	samples := sine(150, 8000, 1.0, 1.0)
	addInPlace(samples, sine(650, 8000, 1.0, 0.3))

	freq, ok := spectral.EstimateCarrier(samples, 8000, 300, 1000)
	if !ok {
		t.Fatalf("expected carrier to be found")
	}
	if math.Abs(freq-650) > 10 {
		t.Fatalf("expected ~650 Hz, got %.2f", freq)
	}
}

func TestEstimateCarrierSilence(t *testing.T) {
	samples := make([]float64, 44100)
	if freq, ok := spectral.EstimateCarrier(samples, 44100, 300, 1000); ok {
		t.Fatalf("silence should not yield a carrier, got %.2f", freq)
	}
}

func TestEstimateCarrierEmptyInput(t *testing.T) {
	if _, ok := spectral.EstimateCarrier(nil, 44100, 300, 1000); ok {
		t.Fatalf("empty input should not yield a carrier")
	}
	if _, ok := spectral.EstimateCarrier(sine(700, 44100, 0.1, 0.8), 0, 300, 1000); ok {
		t.Fatalf("zero sample rate should not yield a carrier")
	}
}

func TestEstimateCarrierShortSignal(t *testing.T) {
	// 80 samples is shorter than the minimum window; the zero-padded path
	// still has to land near the tone.
	samples := sine(500, 8000, 0.01, 0.8)
	freq, ok := spectral.EstimateCarrier(samples, 8000, 300, 1000)
	if !ok {
		t.Fatalf("expected carrier to be found on short signal")
	}
	if math.Abs(freq-500) > 60 {
		t.Fatalf("expected roughly 500 Hz, got %.2f", freq)
	}
}

func TestSpectrogramShapeAndPeak(t *testing.T) {
	sampleRate := 8000.0
	samples := sine(700, sampleRate, 1.0, 0.8)

	rows := spectral.Spectrogram(samples, sampleRate, 2000, 50)
	if len(rows) == 0 {
		t.Fatalf("expected spectrogram frames")
	}
	if len(rows) > 50 {
		t.Fatalf("frame bound exceeded: %d", len(rows))
	}

	binRes := sampleRate / 1024
	wantBins := int(2000/binRes) + 1
	if len(rows[0]) != wantBins {
		t.Fatalf("expected %d bins, got %d", wantBins, len(rows[0]))
	}

	mid := rows[len(rows)/2]
	peakBin := 0
	for b, v := range mid {
		if v > mid[peakBin] {
			peakBin = b
		}
	}
	peakFreq := float64(peakBin) * binRes
	if math.Abs(peakFreq-700) > 2*binRes {
		t.Fatalf("expected spectrogram peak near 700 Hz, got %.2f", peakFreq)
	}
}

func TestSpectrogramTooShort(t *testing.T) {
	if rows := spectral.Spectrogram(make([]float64, 100), 8000, 2000, 50); rows != nil {
		t.Fatalf("expected nil for sub-frame input, got %d rows", len(rows))
	}
}
