// Package decoder provides the audio-to-text decoding component of the M2T
// toolkit. It turns a PCM signal carrying a keyed tone into text, timestamped
// character events, and diagnostic traces.
//
// The Decoder component chains the analysis stages: carrier estimation (or a
// caller-supplied frequency), bandpass envelope extraction, percentile
// thresholding, run segmentation with short-run cleanup, keying-speed
// estimation (or a caller-supplied WPM), element classification, and finally
// table lookup into text. Each stage is pure; the component carries only
// configuration, attached loggers, and an optional result cache.
//
// Key features of the Decoder component include:
// - Automatic carrier and keying-speed estimation with explicit overrides.
// - Percentile-based thresholding that adapts to recording gain.
// - A result cache hook so repeated decodes of identical audio are free.
// - Diagnostic outputs: average SNR, a binary keying trace, and an optional
//   spectrogram.
//
// Decoding the same signal with the same parameters always produces the same
// result, and a decode never partially succeeds: the caller gets a complete
// result or an error.

package decoder

import (
	"context"
	"sync"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// Decoder translates keyed-tone audio into text and events. It is safe for
// concurrent use; configuration should be finalized before the first Decode.
type Decoder struct {
	componentMetadata types.ComponentMetadata // Metadata for the decoder, including ID and type.
	ctx               context.Context         // Context governing the component's lifetime.
	loggers           []types.Logger          // Loggers for recording events and errors.
	loggersLock       sync.Mutex              // Protects access to the loggers slice.
	loggerCount       int32                   // Atomic count of attached loggers.
	resultCache       types.ResultCache       // Optional cache of completed results.
	cacheLock         sync.Mutex              // Protects access to the result cache.

	carrierLow        float64 // Lower bound of the carrier search band in Hz.
	carrierHigh       float64 // Upper bound of the carrier search band in Hz.
	bandwidth         float64 // Bandpass width around the carrier in Hz.
	envelopeRate      float64 // Envelope sampling rate in Hz.
	minRunDuration    float64 // Runs shorter than this are merged away, in seconds.
	traceBuckets      int     // Bucket count for the binary keying trace.
	maxSignalDuration float64 // Longest accepted signal in seconds; zero disables the guard.
	spectrogram       bool    // Whether Decode attaches a spectrogram.
}

// Defaults tuned for keyed tones in the conventional 300 to 1000 Hz range.
const (
	defaultCarrierLow        = 300.0
	defaultCarrierHigh       = 1000.0
	defaultBandwidth         = 200.0
	defaultEnvelopeRate      = 500.0
	defaultMinRunDuration    = 0.008
	defaultTraceBuckets      = 400
	defaultMaxSignalDuration = 120.0
	defaultThresholdFactor   = 1.0

	spectrogramMaxHz     = 2000.0
	spectrogramMaxFrames = 256
)

// NewDecoder creates a new Decoder instance configured with the provided
// options.
func NewDecoder(ctx context.Context, options ...types.Option[types.Decoder]) types.Decoder {
	d := &Decoder{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "DECODER",
		},
		ctx:               ctx,
		carrierLow:        defaultCarrierLow,
		carrierHigh:       defaultCarrierHigh,
		bandwidth:         defaultBandwidth,
		envelopeRate:      defaultEnvelopeRate,
		minRunDuration:    defaultMinRunDuration,
		traceBuckets:      defaultTraceBuckets,
		maxSignalDuration: defaultMaxSignalDuration,
		spectrogram:       false,
	}

	for _, opt := range options {
		opt(d)
	}

	return d
}
