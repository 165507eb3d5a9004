package builder

import "github.com/PandasDrive/M2T/pkg/internal/types"

// Component contracts, exposed so callers never import internal packages.
type (
	Logger        = types.Logger
	Decoder       = types.Decoder
	Keyer         = types.Keyer
	ArtifactStore = types.ArtifactStore
	ResultCache   = types.ResultCache
	APIServer     = types.APIServer
)

// Pipeline is the generic bounded job runner contract.
type Pipeline[T any] = types.Pipeline[T]

// Domain data types.
type (
	AudioSignal        = types.AudioSignal
	DecodingParameters = types.DecodingParameters
	DecodingResult     = types.DecodingResult
	DecodedEvent       = types.DecodedEvent
	ArtifactKind       = types.ArtifactKind
	TLSConfig          = types.TLSConfig
	ComponentMetadata  = types.ComponentMetadata
)

// Option configures a component of type T at construction.
type Option[T any] = types.Option[T]

// Transformer transforms a pipeline element, possibly failing.
type Transformer[T any] = types.Transformer[T]

// Sentinel errors surfaced by the components.
var (
	ErrUnreadableAudio    = types.ErrUnreadableAudio
	ErrInvalidParameter   = types.ErrInvalidParameter
	ErrSignalTooLong      = types.ErrSignalTooLong
	ErrUnsupportedFormat  = types.ErrUnsupportedFormat
	ErrArtifactTooLarge   = types.ErrArtifactTooLarge
	ErrArtifactNotFound   = types.ErrArtifactNotFound
	ErrUnknownCompression = types.ErrUnknownCompression
	ErrUnmappableText     = types.ErrUnmappableText
)
