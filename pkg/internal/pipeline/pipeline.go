// Package pipeline provides a bounded-concurrency job runner for the M2T
// toolkit. Elements submitted to a buffered queue are picked up by a fixed
// worker pool, pushed through the configured transformers in order, and
// emitted on the output channel; failures are reported on a dedicated error
// channel.
//
// The service layer uses a Pipeline to cap concurrent decode work: each job
// is an independent pure computation, so bounding parallelism changes
// throughput and nothing else.
//
// Key features of the Pipeline component include:
// - Configurable queue depth and worker count.
// - Back-pressure on Submit once the queue fills, bounded by the caller's
//   context.
// - A non-blocking error channel so a slow error consumer cannot stall the
//   workers.

package pipeline

import (
	"context"
	"sync"

	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// Pipeline is a fixed worker pool fed by a buffered queue. Configuration
// must be finalized before Start.
type Pipeline[T any] struct {
	componentMetadata types.ComponentMetadata    // Metadata for the pipeline, including ID and type.
	inChan            chan T                     // Input queue feeding the workers.
	outChan           chan T                     // Output channel for transformed elements.
	errorChan         chan types.ElementError[T] // Channel reporting failed elements.
	transformations   []types.Transformer[T]     // Functions applied to elements in order.
	loggers           []types.Logger             // Loggers for recording events and errors.
	loggersLock       sync.Mutex                 // Protects access to the loggers slice.
	loggerCount       int32                      // Atomic count of attached loggers.

	ctx    context.Context    // Context governing the pipeline's lifecycle.
	cancel context.CancelFunc // Cancels the pipeline's context on Stop.
	wg     sync.WaitGroup     // Tracks running workers.

	closeOutputChanOnce sync.Once // Ensures the output channel is closed only once.
	closeErrorChanOnce  sync.Once // Ensures the error channel is closed only once.

	maxBufferSize  int   // Capacity of the input, output, and error channels.
	maxConcurrency int   // Number of workers started.
	started        int32 // Atomic flag indicating whether the pipeline has been started.
}

// Defaults favor CPU-bound jobs: a deep queue absorbs bursts while a small
// worker pool keeps the host responsive.
const (
	defaultBufferSize = 1024
	defaultMaxWorkers = 4
)

// NewPipeline creates a new Pipeline instance configured with the provided
// options.
func NewPipeline[T any](ctx context.Context, options ...types.Option[types.Pipeline[T]]) types.Pipeline[T] {
	ctx, cancel := context.WithCancel(ctx)
	p := &Pipeline[T]{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "PIPELINE",
		},
		transformations: []types.Transformer[T]{},
		ctx:             ctx,
		cancel:          cancel,
		maxBufferSize:   defaultBufferSize,
		maxConcurrency:  defaultMaxWorkers,
	}

	for _, opt := range options {
		opt(p)
	}

	// Channels are sized after options so WithConcurrencyControl applies.
	p.inChan = make(chan T, p.maxBufferSize)
	p.outChan = make(chan T, p.maxBufferSize)
	p.errorChan = make(chan types.ElementError[T], p.maxBufferSize)

	return p
}
