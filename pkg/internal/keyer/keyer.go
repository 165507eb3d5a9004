// Package keyer provides the text-to-audio side of the M2T toolkit. It
// renders text as a keyed sine tone following the standard Morse grid: a
// dash is three dots long, elements within a character are separated by one
// dot of silence, characters by three, and words by seven.
//
// The Keyer component owns the waveform parameters: carrier frequency,
// sample rate, peak amplitude, the raised-cosine ramp that softens each
// burst's edges, and the silence padding around the transmission. The keying
// speed is a per-render argument, so one component can serve callers at any
// WPM.
//
// Key features of the Keyer component include:
// - Canonical 1:3 element and 1:3:7 gap timing at any words-per-minute.
// - Click-free keying via raised-cosine attack and release ramps.
// - Deterministic output: the same text and WPM always render the same
//   samples.
//
// A render is all-or-nothing: text containing a character with no Morse
// encoding fails with an error instead of producing a gapped transmission.

package keyer

import (
	"context"
	"sync"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// Keyer renders text into tone-burst audio. It is safe for concurrent use;
// configuration should be finalized before the first Render.
type Keyer struct {
	componentMetadata types.ComponentMetadata // Metadata for the keyer, including ID and type.
	ctx               context.Context         // Context governing the component's lifetime.
	loggers           []types.Logger          // Loggers for recording events and errors.
	loggersLock       sync.Mutex              // Protects access to the loggers slice.
	loggerCount       int32                   // Atomic count of attached loggers.

	frequency   float64 // Carrier tone in Hz.
	sampleRate  float64 // Output sample rate in Hz.
	amplitude   float64 // Peak tone amplitude.
	edgeRamp    float64 // Raised-cosine attack/release time per burst, in seconds.
	leadPadding float64 // Silence before the first element, in seconds.
	tailPadding float64 // Silence after the last element, in seconds.
}

// Defaults match the conventional practice-oscillator sound: a 700 Hz tone
// at CD-adjacent sample rate with half a second of quiet on both ends.
const (
	defaultFrequency   = 700.0
	defaultSampleRate  = 44100.0
	defaultAmplitude   = 0.8
	defaultEdgeRamp    = 0.004
	defaultLeadPadding = 0.5
	defaultTailPadding = 0.5
)

// NewKeyer creates a new Keyer instance configured with the provided
// options.
func NewKeyer(ctx context.Context, options ...types.Option[types.Keyer]) types.Keyer {
	k := &Keyer{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "KEYER",
		},
		ctx:         ctx,
		frequency:   defaultFrequency,
		sampleRate:  defaultSampleRate,
		amplitude:   defaultAmplitude,
		edgeRamp:    defaultEdgeRamp,
		leadPadding: defaultLeadPadding,
		tailPadding: defaultTailPadding,
	}

	for _, opt := range options {
		opt(k)
	}

	return k
}
