package types

import "io"

// ArtifactKind names a storage category within an ArtifactStore.
type ArtifactKind string

const (
	// ArtifactUpload holds recordings received from callers for decoding.
	ArtifactUpload ArtifactKind = "uploads"
	// ArtifactGenerated holds waveforms rendered by the keyer.
	ArtifactGenerated ArtifactKind = "generated"
)

// ArtifactStore persists audio artifacts on behalf of the service layer. The decode
// pipeline itself never touches storage; the store exists so uploads can be replayed
// and generated audio can be fetched for playback.
type ArtifactStore interface {
	// Save streams r into the given category under a sanitized, collision-free
	// name derived from the suggested one, and returns the stored name. Reads
	// beyond the configured size cap abort with ErrArtifactTooLarge.
	Save(kind ArtifactKind, name string, r io.Reader) (string, error)

	// Open returns the named artifact for reading, or ErrArtifactNotFound.
	Open(kind ArtifactKind, name string) (io.ReadCloser, error)

	// Path resolves the on-disk location of a stored artifact without opening it.
	Path(kind ArtifactKind, name string) (string, error)

	ConnectLogger(...Logger)

	GetComponentMetadata() ComponentMetadata

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	SetComponentMetadata(name string, id string)

	// SetDataDir sets the root directory under which category subdirectories live.
	SetDataDir(dir string)

	// SetMaxArtifactSize caps the byte size of any single stored artifact.
	SetMaxArtifactSize(bytes int64)

	// SetAllowedExtensions restricts stored names to the given extensions (e.g. ".wav").
	SetAllowedExtensions(exts ...string)
}
