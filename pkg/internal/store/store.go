// Package store provides the artifact persistence component of the M2T
// toolkit. It files audio under two categories: recordings uploaded for
// decoding and waveforms rendered by the keyer.
//
// The ArtifactStore component owns a data directory with one subdirectory
// per category. Stored names are sanitized and prefixed with a UUID, so a
// hostile or merely creative upload filename can neither escape the data
// directory nor collide with an existing artifact. An extension allowlist
// and a size cap bound what the store accepts.
//
// Key features of the ArtifactStore component include:
// - Collision-free naming: every artifact keeps its sanitized suggested
//   name behind a fresh UUID prefix.
// - Path traversal rejection on both store and retrieval.
// - A configurable size cap enforced while streaming, not after.
//
// The decode pipeline never touches the store; only the service layer does.

package store

import (
	"context"
	"sync"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// ArtifactStore persists audio artifacts under a data directory. It is safe
// for concurrent use; configuration should be finalized before first use.
type ArtifactStore struct {
	componentMetadata types.ComponentMetadata // Metadata for the store, including ID and type.
	ctx               context.Context         // Context governing the component's lifetime.
	loggers           []types.Logger          // Loggers for recording events and errors.
	loggersLock       sync.Mutex              // Protects access to the loggers slice.
	loggerCount       int32                   // Atomic count of attached loggers.

	dataDir           string   // Root directory holding one subdirectory per category.
	maxArtifactSize   int64    // Cap on a single artifact in bytes; zero disables the cap.
	allowedExtensions []string // Lowercase extensions accepted by Save.
}

const (
	defaultDataDir         = "data"
	defaultMaxArtifactSize = 16 << 20 // 16 MiB
)

// NewArtifactStore creates a new ArtifactStore instance configured with the
// provided options.
func NewArtifactStore(ctx context.Context, options ...types.Option[types.ArtifactStore]) types.ArtifactStore {
	s := &ArtifactStore{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "ARTIFACT_STORE",
		},
		ctx:               ctx,
		dataDir:           defaultDataDir,
		maxArtifactSize:   defaultMaxArtifactSize,
		allowedExtensions: []string{".wav"},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}
