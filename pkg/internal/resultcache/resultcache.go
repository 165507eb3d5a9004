// Package resultcache provides the decode memoization component of the M2T
// toolkit. Decoding is a pure function of the signal and its parameters, so
// results can be cached indefinitely: a hit is indistinguishable from
// recomputation.
//
// The ResultCache component keeps entries in memory as compressed JSON.
// Each entry remembers the algorithm it was compressed with, so the
// configured algorithm can change without invalidating what is already
// cached. When the cache reaches capacity the oldest entry is evicted
// first.
//
// Key features of the ResultCache component include:
// - Selectable at-rest compression: deflate, snappy, zstd, brotli, lz4, or
//   none.
// - Copy-on-lookup: callers never share a result value through the cache.
// - FIFO eviction bounded by a configurable capacity.
// - Optional write-through disk spill that re-warms a restarted cache.
//
// A corrupt entry is dropped on lookup and reported as a miss, never as an
// error; the caller simply recomputes.

package resultcache

import (
	"context"
	"sync"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// Compression algorithms accepted by SetCompressionAlgorithm.
const (
	COMPRESS_NONE    types.CompressionAlgorithm = 0
	COMPRESS_DEFLATE types.CompressionAlgorithm = 1
	COMPRESS_SNAPPY  types.CompressionAlgorithm = 2
	COMPRESS_ZSTD    types.CompressionAlgorithm = 3
	COMPRESS_BROTLI  types.CompressionAlgorithm = 4
	COMPRESS_LZ4     types.CompressionAlgorithm = 5
)

// entry is one cached payload tagged with the algorithm that compressed it.
type entry struct {
	algorithm types.CompressionAlgorithm
	payload   []byte
}

// ResultCache memoizes decode results keyed on signal fingerprints. It is
// safe for concurrent use.
type ResultCache struct {
	componentMetadata types.ComponentMetadata // Metadata for the cache, including ID and type.
	ctx               context.Context         // Context governing the component's lifetime.
	loggers           []types.Logger          // Loggers for recording events and errors.
	loggersLock       sync.Mutex              // Protects access to the loggers slice.
	loggerCount       int32                   // Atomic count of attached loggers.

	mu      sync.Mutex       // Protects entries and order.
	entries map[string]entry // Cached payloads by key.
	order   []string         // Keys in insertion order, oldest first.

	algorithm types.CompressionAlgorithm // Compression applied to new entries.
	capacity  int                        // Entry bound; zero or negative means unbounded.
	spillDir  string                     // Write-through spill directory; empty means memory only.
}

const defaultCapacity = 256

// NewResultCache creates a new ResultCache instance configured with the
// provided options.
func NewResultCache(ctx context.Context, options ...types.Option[types.ResultCache]) types.ResultCache {
	c := &ResultCache{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "RESULT_CACHE",
		},
		ctx:       ctx,
		entries:   make(map[string]entry),
		algorithm: COMPRESS_ZSTD,
		capacity:  defaultCapacity,
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}
