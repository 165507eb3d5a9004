package builder

import (
	"context"

	"github.com/PandasDrive/M2T/pkg/internal/pipeline"
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// NewPipeline creates a new pipeline with the provided context and configuration options.
func NewPipeline[T any](ctx context.Context, options ...types.Option[types.Pipeline[T]]) types.Pipeline[T] {
	return pipeline.NewPipeline[T](ctx, options...)
}

// PipelineWithLogger adds one or more loggers to the pipeline.
func PipelineWithLogger[T any](loggers ...types.Logger) types.Option[types.Pipeline[T]] {
	return pipeline.WithLogger[T](loggers...)
}

// PipelineWithTransformer adds transformation functions applied to each element in order.
func PipelineWithTransformer[T any](transformers ...types.Transformer[T]) types.Option[types.Pipeline[T]] {
	return pipeline.WithTransformer[T](transformers...)
}

// PipelineWithComponentMetadata adds component metadata overrides.
func PipelineWithComponentMetadata[T any](name string, id string) types.Option[types.Pipeline[T]] {
	return pipeline.WithComponentMetadata[T](name, id)
}

// PipelineWithConcurrencyControl sets the job queue capacity and worker count.
func PipelineWithConcurrencyControl[T any](bufferSize int, maxWorkers int) types.Option[types.Pipeline[T]] {
	return pipeline.WithConcurrencyControl[T](bufferSize, maxWorkers)
}
