// Package keyer offers a set of configurable options that can be applied to
// the Keyer component. Each option wraps a setter so configuration can be
// declared at construction time through the functional options pattern.

package keyer

import (
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// WithLogger attaches one or more loggers to the keyer.
func WithLogger(loggers ...types.Logger) types.Option[types.Keyer] {
	return func(k types.Keyer) {
		k.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata overrides the keyer's name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.Keyer] {
	return func(k types.Keyer) {
		k.SetComponentMetadata(name, id)
	}
}

// WithFrequency sets the carrier tone in Hz.
func WithFrequency(hz float64) types.Option[types.Keyer] {
	return func(k types.Keyer) {
		k.SetFrequency(hz)
	}
}

// WithSampleRate sets the output sample rate in Hz.
func WithSampleRate(hz float64) types.Option[types.Keyer] {
	return func(k types.Keyer) {
		k.SetSampleRate(hz)
	}
}

// WithAmplitude sets the peak tone amplitude.
func WithAmplitude(a float64) types.Option[types.Keyer] {
	return func(k types.Keyer) {
		k.SetAmplitude(a)
	}
}

// WithEdgeRamp sets the raised-cosine attack/release time per burst, in
// seconds.
func WithEdgeRamp(seconds float64) types.Option[types.Keyer] {
	return func(k types.Keyer) {
		k.SetEdgeRamp(seconds)
	}
}

// WithPadding sets the leading and trailing silence, in seconds.
func WithPadding(lead, tail float64) types.Option[types.Keyer] {
	return func(k types.Keyer) {
		k.SetPadding(lead, tail)
	}
}
