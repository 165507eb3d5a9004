// Package resultcache offers a set of configurable options that can be
// applied to the ResultCache component. Each option wraps a setter so
// configuration can be declared at construction time through the functional
// options pattern.

package resultcache

import (
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// WithLogger attaches one or more loggers to the cache.
func WithLogger(loggers ...types.Logger) types.Option[types.ResultCache] {
	return func(c types.ResultCache) {
		c.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata overrides the cache's name and ID.
func WithComponentMetadata(name string, id string) types.Option[types.ResultCache] {
	return func(c types.ResultCache) {
		c.SetComponentMetadata(name, id)
	}
}

// WithCompressionAlgorithm selects the compression applied to new entries.
func WithCompressionAlgorithm(alg types.CompressionAlgorithm) types.Option[types.ResultCache] {
	return func(c types.ResultCache) {
		c.SetCompressionAlgorithm(alg)
	}
}

// WithCapacity bounds the number of retained entries.
func WithCapacity(n int) types.Option[types.ResultCache] {
	return func(c types.ResultCache) {
		c.SetCapacity(n)
	}
}

// WithSpillDirectory enables write-through spill of entries to dir.
func WithSpillDirectory(dir string) types.Option[types.ResultCache] {
	return func(c types.ResultCache) {
		c.SetSpillDirectory(dir)
	}
}
