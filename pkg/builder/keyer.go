package builder

import (
	"context"

	"github.com/PandasDrive/M2T/pkg/internal/keyer"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// NewKeyer creates a new keyer with the provided context and configuration options.
func NewKeyer(ctx context.Context, options ...types.Option[types.Keyer]) types.Keyer {
	return keyer.NewKeyer(ctx, options...)
}

// KeyerWithLogger adds one or more loggers to the keyer.
func KeyerWithLogger(loggers ...types.Logger) types.Option[types.Keyer] {
	return keyer.WithLogger(loggers...)
}

// KeyerWithComponentMetadata adds component metadata overrides.
func KeyerWithComponentMetadata(name string, id string) types.Option[types.Keyer] {
	return keyer.WithComponentMetadata(name, id)
}

// KeyerWithFrequency sets the carrier tone in Hz.
func KeyerWithFrequency(hz float64) types.Option[types.Keyer] {
	return keyer.WithFrequency(hz)
}

// KeyerWithSampleRate sets the output sample rate in Hz.
func KeyerWithSampleRate(hz float64) types.Option[types.Keyer] {
	return keyer.WithSampleRate(hz)
}

// KeyerWithAmplitude sets the peak tone amplitude, normally in (0, 1].
func KeyerWithAmplitude(a float64) types.Option[types.Keyer] {
	return keyer.WithAmplitude(a)
}

// KeyerWithEdgeRamp sets the raised-cosine keying ramp in seconds.
func KeyerWithEdgeRamp(seconds float64) types.Option[types.Keyer] {
	return keyer.WithEdgeRamp(seconds)
}

// KeyerWithPadding sets the leading and trailing silence in seconds.
func KeyerWithPadding(lead, tail float64) types.Option[types.Keyer] {
	return keyer.WithPadding(lead, tail)
}
