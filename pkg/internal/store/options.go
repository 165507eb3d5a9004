// Package store offers a set of configurable options that can be applied to
// the ArtifactStore component. Each option wraps a setter so configuration
// can be declared at construction time through the functional options
// pattern.

package store

import (
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// WithLogger attaches one or more loggers to the store.
func WithLogger(loggers ...types.Logger) types.Option[types.ArtifactStore] {
	return func(s types.ArtifactStore) {
		s.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata overrides the store's name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.ArtifactStore] {
	return func(s types.ArtifactStore) {
		s.SetComponentMetadata(name, id)
	}
}

// WithDataDir sets the root directory under which category subdirectories
// live.
func WithDataDir(dir string) types.Option[types.ArtifactStore] {
	return func(s types.ArtifactStore) {
		s.SetDataDir(dir)
	}
}

// WithMaxArtifactSize caps the byte size of any single stored artifact.
func WithMaxArtifactSize(bytes int64) types.Option[types.ArtifactStore] {
	return func(s types.ArtifactStore) {
		s.SetMaxArtifactSize(bytes)
	}
}

// WithAllowedExtensions restricts stored names to the given extensions.
func WithAllowedExtensions(exts ...string) types.Option[types.ArtifactStore] {
	return func(s types.ArtifactStore) {
		s.SetAllowedExtensions(exts...)
	}
}
