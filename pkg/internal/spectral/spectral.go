// Package spectral provides frequency-domain analysis helpers for keyed-tone
// audio: carrier estimation for locating the dominant tone inside a search
// band, and a bounded short-time spectrogram for diagnostic traces.
package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	carrierFFTSize   = 4096
	minFFTSize       = 256
	maxCarrierFrames = 128

	spectrogramFFTSize = 1024
)

// EstimateCarrier locates the dominant tone between lowHz and highHz.
// Magnitude spectra of Hann-windowed frames spread across the signal are
// averaged, the strongest bin inside the band is refined with parabolic
// interpolation, and the refined frequency is returned. ok is false when the
// band carries no energy, which is the silent-recording case.
func EstimateCarrier(samples []float64, sampleRate, lowHz, highHz float64) (freq float64, ok bool) {
	if len(samples) == 0 || sampleRate <= 0 || highHz <= lowHz {
		return 0, false
	}

	fftSize := carrierFFTSize
	if len(samples) < fftSize {
		fftSize = nextPow2(len(samples))
		if fftSize < minFFTSize {
			fftSize = minFFTSize
		}
	}

	win := window.Hann(fftSize)
	avg := make([]float64, fftSize/2+1)
	frames := 0

	// Stride so that long recordings are sampled end to end instead of
	// only at the front; the lead-in is usually padding silence.
	hop := fftSize
	if len(samples)/fftSize > maxCarrierFrames {
		hop = len(samples) / maxCarrierFrames
	}
	for start := 0; start+fftSize <= len(samples) && frames < maxCarrierFrames; start += hop {
		windowed := make([]float64, fftSize)
		for i := 0; i < fftSize; i++ {
			windowed[i] = samples[start+i] * win[i]
		}
		spec := fft.FFTReal(windowed)
		for i := 0; i < len(avg); i++ {
			avg[i] += cmplx.Abs(spec[i])
		}
		frames++
	}
	if frames == 0 {
		// Shorter than one frame: zero-pad a single window.
		windowed := make([]float64, fftSize)
		for i, v := range samples {
			windowed[i] = v * win[i]
		}
		spec := fft.FFTReal(windowed)
		for i := 0; i < len(avg); i++ {
			avg[i] = cmplx.Abs(spec[i])
		}
		frames = 1
	}

	binRes := sampleRate / float64(fftSize)
	minBin := int(lowHz / binRes)
	maxBin := int(highHz / binRes)
	if minBin < 1 {
		minBin = 1 // skip DC
	}
	if maxBin > fftSize/2 {
		maxBin = fftSize / 2
	}

	peak := -1
	peakMag := 0.0
	for i := minBin; i <= maxBin; i++ {
		if avg[i] > peakMag {
			peakMag = avg[i]
			peak = i
		}
	}
	if peak < 0 || peakMag <= 1e-12*float64(frames) {
		return 0, false
	}

	freq = float64(peak) * binRes
	if peak > 0 && peak < fftSize/2 {
		y1 := avg[peak-1]
		y2 := peakMag
		y3 := avg[peak+1]
		if den := 2 * (2*y2 - y1 - y3); den != 0 {
			freq = (float64(peak) + (y3-y1)/den) * binRes
		}
	}
	return freq, true
}

// Spectrogram computes a short-time power spectrum of the signal in decibels.
// Rows are Hann-windowed time frames, columns are frequency bins up to maxHz.
// The frame count is bounded by maxFrames so arbitrarily long recordings
// still produce a trace of manageable size. Signals shorter than one frame
// yield nil.
func Spectrogram(samples []float64, sampleRate, maxHz float64, maxFrames int) [][]float64 {
	fftSize := spectrogramFFTSize
	if len(samples) < fftSize || sampleRate <= 0 || maxFrames <= 0 {
		return nil
	}

	hop := fftSize / 2
	nFrames := 1 + (len(samples)-fftSize)/hop
	if nFrames > maxFrames {
		if maxFrames == 1 {
			nFrames = 1
		} else {
			hop = (len(samples) - fftSize) / (maxFrames - 1)
			if hop < 1 {
				hop = 1
			}
			nFrames = 1 + (len(samples)-fftSize)/hop
			if nFrames > maxFrames {
				nFrames = maxFrames
			}
		}
	}

	binRes := sampleRate / float64(fftSize)
	nBins := int(maxHz/binRes) + 1
	if nBins > fftSize/2 {
		nBins = fftSize / 2
	}

	win := window.Hann(fftSize)
	out := make([][]float64, 0, nFrames)
	for f := 0; f < nFrames; f++ {
		start := f * hop
		if start+fftSize > len(samples) {
			break
		}
		windowed := make([]float64, fftSize)
		for i := 0; i < fftSize; i++ {
			windowed[i] = samples[start+i] * win[i]
		}
		spec := fft.FFTReal(windowed)
		row := make([]float64, nBins)
		for b := 0; b < nBins; b++ {
			row[b] = 20 * math.Log10(cmplx.Abs(spec[b])+1e-12)
		}
		out = append(out, row)
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
