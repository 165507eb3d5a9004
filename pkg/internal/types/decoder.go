package types

import "context"

// Decoder converts a finite mono recording into timestamped Morse text. One decode
// call is a deterministic, synchronous computation over its inputs with no shared
// mutable state, so a single Decoder may serve concurrent callers.
type Decoder interface {
	// Decode runs the full pipeline: carrier estimation, envelope extraction,
	// binarization and run segmentation, timing inference, character decoding,
	// and quality-metric assembly. Silence or tone-free input yields an empty
	// result, not an error. The context bounds only logging and cache access;
	// the DSP stages themselves are pure computation.
	Decode(ctx context.Context, signal AudioSignal, params DecodingParameters) (*DecodingResult, error)

	// ConnectLogger attaches one or more loggers that receive stage-by-stage events.
	ConnectLogger(...Logger)

	// ConnectResultCache attaches an optional memoization cache keyed on the
	// signal fingerprint and normalized parameters. Decodes are referentially
	// transparent, so cache hits are indistinguishable from recomputation.
	ConnectResultCache(ResultCache)

	GetComponentMetadata() ComponentMetadata

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	SetComponentMetadata(name string, id string)

	// SetCarrierBand restricts automatic carrier estimation to [lowHz, highHz].
	SetCarrierBand(lowHz, highHz float64)

	// SetBandwidth sets the total band-pass width, in Hz, around the carrier.
	SetBandwidth(hz float64)

	// SetEnvelopeRate sets the effective envelope sample rate, in Hz.
	SetEnvelopeRate(hz float64)

	// SetMinRunDuration sets the noise floor: runs shorter than this many seconds
	// are merged into their neighbors before timing estimation.
	SetMinRunDuration(seconds float64)

	// SetTraceBuckets sets the fixed bucket count of the binary visualization trace.
	SetTraceBuckets(n int)

	// SetMaxSignalDuration bounds decode cost; longer signals are rejected up front.
	SetMaxSignalDuration(seconds float64)

	// SetSpectrogram toggles inclusion of spectrogram frames in results.
	SetSpectrogram(enabled bool)
}
