package types

// CompressionAlgorithm selects how cached payloads are compressed at rest.
type CompressionAlgorithm uint8

// ResultCache memoizes decode results keyed on a fingerprint of the signal and its
// normalized parameters. Decoding is a pure function, so the cache is strictly an
// optimization: disabling it never changes any result.
type ResultCache interface {
	// Lookup returns the cached result for key, if present. The returned value is
	// a fresh copy; callers may not observe each other through it.
	Lookup(key string) (*DecodingResult, bool)

	// Store records the result under key, evicting the oldest entry when the
	// cache is at capacity.
	Store(key string, result *DecodingResult) error

	// Len reports the number of cached entries.
	Len() int

	ConnectLogger(...Logger)

	GetComponentMetadata() ComponentMetadata

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	SetComponentMetadata(name string, id string)

	// SetCompressionAlgorithm selects the at-rest payload compression.
	SetCompressionAlgorithm(alg CompressionAlgorithm)

	// SetCapacity bounds the number of retained entries.
	SetCapacity(n int)

	// SetSpillDirectory enables write-through spill of entries to dir, so a
	// rebuilt cache re-warms from disk. Empty disables spill.
	SetSpillDirectory(dir string)
}
