package builder

import (
	"context"

	"github.com/PandasDrive/M2T/pkg/internal/decoder"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// NewDecoder creates a new decoder with the provided context and configuration options.
func NewDecoder(ctx context.Context, options ...types.Option[types.Decoder]) types.Decoder {
	return decoder.NewDecoder(ctx, options...)
}

// DecoderWithLogger adds one or more loggers to the decoder.
func DecoderWithLogger(loggers ...types.Logger) types.Option[types.Decoder] {
	return decoder.WithLogger(loggers...)
}

// DecoderWithResultCache memoizes decode results keyed on signal fingerprint and parameters.
func DecoderWithResultCache(cache types.ResultCache) types.Option[types.Decoder] {
	return decoder.WithResultCache(cache)
}

// DecoderWithComponentMetadata adds component metadata overrides.
func DecoderWithComponentMetadata(name string, id string) types.Option[types.Decoder] {
	return decoder.WithComponentMetadata(name, id)
}

// DecoderWithCarrierBand bounds the carrier frequency search range in Hz.
func DecoderWithCarrierBand(lowHz, highHz float64) types.Option[types.Decoder] {
	return decoder.WithCarrierBand(lowHz, highHz)
}

// DecoderWithBandwidth sets the band-pass width around the carrier in Hz.
func DecoderWithBandwidth(hz float64) types.Option[types.Decoder] {
	return decoder.WithBandwidth(hz)
}

// DecoderWithEnvelopeRate sets the decimated envelope sample rate in Hz.
func DecoderWithEnvelopeRate(hz float64) types.Option[types.Decoder] {
	return decoder.WithEnvelopeRate(hz)
}

// DecoderWithMinRunDuration drops on/off runs shorter than the given seconds.
func DecoderWithMinRunDuration(seconds float64) types.Option[types.Decoder] {
	return decoder.WithMinRunDuration(seconds)
}

// DecoderWithTraceBuckets sets the resolution of the binary signal trace.
func DecoderWithTraceBuckets(n int) types.Option[types.Decoder] {
	return decoder.WithTraceBuckets(n)
}

// DecoderWithMaxSignalDuration rejects signals longer than the given seconds.
func DecoderWithMaxSignalDuration(seconds float64) types.Option[types.Decoder] {
	return decoder.WithMaxSignalDuration(seconds)
}

// DecoderWithSpectrogram toggles spectrogram assembly on decode results.
func DecoderWithSpectrogram(enabled bool) types.Option[types.Decoder] {
	return decoder.WithSpectrogram(enabled)
}
