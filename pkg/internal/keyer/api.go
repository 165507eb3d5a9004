package keyer

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/morse"
	"github.com/PandasDrive/M2T/pkg/internal/timing"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// Render produces the waveform for text at the given keying speed. Every
// rune must have a Morse encoding; spaces become word gaps, and consecutive
// spaces collapse into one. Empty text (or text of nothing but spaces)
// renders as bare padding silence.
func (k *Keyer) Render(ctx context.Context, text string, wpm float64) (types.AudioSignal, error) {
	if wpm <= 0 || math.IsNaN(wpm) || math.IsInf(wpm, 0) {
		err := fmt.Errorf("wpm %v: %w", wpm, types.ErrInvalidParameter)
		k.notifyRenderRejected(text, err)
		return types.AudioSignal{}, err
	}

	unit := timing.UnitFromWPM(wpm)
	w := newWriter(k.sampleRate, k.frequency, k.amplitude, k.edgeRamp)

	w.silence(k.leadPadding)

	// pendingGap is the silence owed before the next element. Finishing an
	// element owes one unit, finishing a character three; a space raises the
	// debt to seven and swallows the character gap around it.
	pendingGap := 0.0
	for _, r := range text {
		if err := ctx.Err(); err != nil {
			return types.AudioSignal{}, err
		}
		if r == ' ' {
			if pendingGap > 0 {
				pendingGap = 7 * unit
			}
			continue
		}

		code, known := morse.CodeOf(r)
		if !known {
			err := fmt.Errorf("character %q: %w", r, types.ErrUnmappableText)
			k.notifyRenderRejected(text, err)
			return types.AudioSignal{}, err
		}

		for _, element := range code {
			w.silence(pendingGap)
			if element == '-' {
				w.tone(3 * unit)
			} else {
				w.tone(unit)
			}
			pendingGap = unit
		}
		pendingGap = 3 * unit
	}

	w.silence(k.tailPadding)

	signal := types.AudioSignal{Samples: w.samples, SampleRate: k.sampleRate}
	k.notifyRenderComplete(text, wpm, signal)
	return signal, nil
}

// ConnectLogger registers loggers. Nil loggers are ignored.
func (k *Keyer) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}

	// Compact in-place to drop nils without allocating.
	n := 0
	for _, l := range loggers {
		if l != nil {
			loggers[n] = l
			n++
		}
	}
	if n == 0 {
		return
	}
	loggers = loggers[:n]

	k.loggersLock.Lock()
	k.loggers = append(k.loggers, loggers...)
	k.loggersLock.Unlock()

	atomic.AddInt32(&k.loggerCount, int32(n))

	k.NotifyLoggers(
		types.DebugLevel,
		"ConnectLogger",
		"component", k.componentMetadata,
		"event", "ConnectLogger",
		"result", "SUCCESS",
		"count", n,
	)
}

// GetComponentMetadata returns the component's metadata.
func (k *Keyer) GetComponentMetadata() types.ComponentMetadata {
	return k.componentMetadata
}

// SetComponentMetadata overrides the component's name and ID.
func (k *Keyer) SetComponentMetadata(name string, id string) {
	k.componentMetadata.Name = name
	k.componentMetadata.ID = id
}

// SetFrequency sets the carrier tone in Hz.
func (k *Keyer) SetFrequency(hz float64) {
	k.frequency = hz
}

// SetSampleRate sets the output sample rate in Hz.
func (k *Keyer) SetSampleRate(hz float64) {
	k.sampleRate = hz
}

// SetAmplitude sets the peak tone amplitude.
func (k *Keyer) SetAmplitude(a float64) {
	k.amplitude = a
}

// SetEdgeRamp sets the raised-cosine attack/release time per burst, in
// seconds.
func (k *Keyer) SetEdgeRamp(seconds float64) {
	k.edgeRamp = seconds
}

// SetPadding sets the leading and trailing silence, in seconds.
func (k *Keyer) SetPadding(lead, tail float64) {
	k.leadPadding = lead
	k.tailPadding = tail
}
