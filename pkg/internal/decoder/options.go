// Package decoder offers a set of configurable options that can be applied to
// the Decoder component. Each option wraps a setter so configuration can be
// declared at construction time through the functional options pattern.

package decoder

import (
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// WithLogger attaches one or more loggers to the decoder.
func WithLogger(loggers ...types.Logger) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.ConnectLogger(loggers...)
	}
}

// WithResultCache attaches a result cache consulted before every decode.
func WithResultCache(cache types.ResultCache) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.ConnectResultCache(cache)
	}
}

// WithComponentMetadata overrides the decoder's name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.SetComponentMetadata(name, id)
	}
}

// WithCarrierBand sets the search band for automatic carrier estimation.
func WithCarrierBand(lowHz, highHz float64) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.SetCarrierBand(lowHz, highHz)
	}
}

// WithBandwidth sets the bandpass width around the carrier in Hz.
func WithBandwidth(hz float64) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.SetBandwidth(hz)
	}
}

// WithEnvelopeRate sets the envelope sampling rate in Hz.
func WithEnvelopeRate(hz float64) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.SetEnvelopeRate(hz)
	}
}

// WithMinRunDuration sets the shortest run, in seconds, that survives
// segmentation.
func WithMinRunDuration(seconds float64) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.SetMinRunDuration(seconds)
	}
}

// WithTraceBuckets sets the length of the binary keying trace.
func WithTraceBuckets(n int) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.SetTraceBuckets(n)
	}
}

// WithMaxSignalDuration bounds the accepted signal length in seconds.
func WithMaxSignalDuration(seconds float64) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.SetMaxSignalDuration(seconds)
	}
}

// WithSpectrogram toggles spectrogram generation on Decode.
func WithSpectrogram(enabled bool) types.Option[types.Decoder] {
	return func(d types.Decoder) {
		d.SetSpectrogram(enabled)
	}
}
