package builder

import (
	"context"

	"github.com/PandasDrive/M2T/pkg/internal/store"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// Artifact categories managed by the store.
const (
	ArtifactUpload    = types.ArtifactUpload
	ArtifactGenerated = types.ArtifactGenerated
)

// NewArtifactStore creates a new artifact store with the provided context and configuration options.
func NewArtifactStore(ctx context.Context, options ...types.Option[types.ArtifactStore]) types.ArtifactStore {
	return store.NewArtifactStore(ctx, options...)
}

// StoreWithLogger adds one or more loggers to the store.
func StoreWithLogger(loggers ...types.Logger) types.Option[types.ArtifactStore] {
	return store.WithLogger(loggers...)
}

// StoreWithComponentMetadata adds component metadata overrides.
func StoreWithComponentMetadata(name string, id string) types.Option[types.ArtifactStore] {
	return store.WithComponentMetadata(name, id)
}

// StoreWithDataDir sets the root directory for stored artifacts.
func StoreWithDataDir(dir string) types.Option[types.ArtifactStore] {
	return store.WithDataDir(dir)
}

// StoreWithMaxArtifactSize caps the byte size of any single artifact. Zero disables the cap.
func StoreWithMaxArtifactSize(bytes int64) types.Option[types.ArtifactStore] {
	return store.WithMaxArtifactSize(bytes)
}

// StoreWithAllowedExtensions restricts stored names to the given extensions.
func StoreWithAllowedExtensions(exts ...string) types.Option[types.ArtifactStore] {
	return store.WithAllowedExtensions(exts...)
}
