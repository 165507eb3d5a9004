package types

import "errors"

// Sentinel errors shared across the pipeline and its surrounding service. Callers
// test for them with errors.Is; components wrap them with context via fmt.Errorf
// and %w. A decode either returns a complete DecodingResult or one of these,
// never a partial result alongside an error.
var (
	// ErrUnreadableAudio marks input that could not be interpreted as audio at all.
	ErrUnreadableAudio = errors.New("unreadable audio")

	// ErrInvalidParameter rejects out-of-range tuning values before the pipeline runs.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSignalTooLong guards the pipeline against unbounded input cost.
	ErrSignalTooLong = errors.New("signal exceeds maximum duration")

	// ErrUnsupportedFormat marks well-formed files in an encoding the codec does not handle.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrArtifactTooLarge rejects uploads and renders over the store's size cap.
	ErrArtifactTooLarge = errors.New("artifact exceeds size limit")

	// ErrArtifactNotFound is returned when opening a name the store does not hold.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrUnknownCompression rejects cache payloads tagged with an unrecognized algorithm.
	ErrUnknownCompression = errors.New("unknown compression algorithm")

	// ErrUnmappableText rejects render requests containing characters outside the Morse table.
	ErrUnmappableText = errors.New("text contains characters with no morse encoding")
)
