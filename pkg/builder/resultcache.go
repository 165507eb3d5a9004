package builder

import (
	"context"

	"github.com/PandasDrive/M2T/pkg/internal/resultcache"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// CompressionAlgorithm selects how cached decode results are packed.
type CompressionAlgorithm = types.CompressionAlgorithm

// Compression algorithms supported by the result cache.
const (
	COMPRESS_NONE    = resultcache.COMPRESS_NONE
	COMPRESS_DEFLATE = resultcache.COMPRESS_DEFLATE
	COMPRESS_SNAPPY  = resultcache.COMPRESS_SNAPPY
	COMPRESS_ZSTD    = resultcache.COMPRESS_ZSTD
	COMPRESS_BROTLI  = resultcache.COMPRESS_BROTLI
	COMPRESS_LZ4     = resultcache.COMPRESS_LZ4
)

// NewResultCache creates a new result cache with the provided context and configuration options.
func NewResultCache(ctx context.Context, options ...types.Option[types.ResultCache]) types.ResultCache {
	return resultcache.NewResultCache(ctx, options...)
}

// ResultCacheWithLogger adds one or more loggers to the cache.
func ResultCacheWithLogger(loggers ...types.Logger) types.Option[types.ResultCache] {
	return resultcache.WithLogger(loggers...)
}

// ResultCacheWithComponentMetadata adds component metadata overrides.
func ResultCacheWithComponentMetadata(name string, id string) types.Option[types.ResultCache] {
	return resultcache.WithComponentMetadata(name, id)
}

// ResultCacheWithCompressionAlgorithm selects the packing for newly stored entries.
func ResultCacheWithCompressionAlgorithm(alg types.CompressionAlgorithm) types.Option[types.ResultCache] {
	return resultcache.WithCompressionAlgorithm(alg)
}

// ResultCacheWithCapacity bounds the number of retained entries. Zero or negative is unbounded.
func ResultCacheWithCapacity(n int) types.Option[types.ResultCache] {
	return resultcache.WithCapacity(n)
}

// ResultCacheWithSpillDirectory mirrors entries to dir so a restarted cache re-warms from disk.
func ResultCacheWithSpillDirectory(dir string) types.Option[types.ResultCache] {
	return resultcache.WithSpillDirectory(dir)
}
