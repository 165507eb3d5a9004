// Package pipeline offers a set of configurable options that can be applied
// to the Pipeline component. Each option wraps a setter so configuration can
// be declared at construction time through the functional options pattern.

package pipeline

import (
	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// WithLogger attaches one or more loggers to the pipeline.
func WithLogger[T any](loggers ...types.Logger) types.Option[types.Pipeline[T]] {
	return func(p types.Pipeline[T]) {
		p.ConnectLogger(loggers...)
	}
}

// WithTransformer appends transformation stages applied to every element.
func WithTransformer[T any](transformers ...types.Transformer[T]) types.Option[types.Pipeline[T]] {
	return func(p types.Pipeline[T]) {
		p.ConnectTransformer(transformers...)
	}
}

// WithComponentMetadata overrides the pipeline's name and ID.
func WithComponentMetadata[T any](name string, id string) types.Option[types.Pipeline[T]] {
	return func(p types.Pipeline[T]) {
		p.SetComponentMetadata(name, id)
	}
}

// WithConcurrencyControl sets the queue capacity and the worker count.
func WithConcurrencyControl[T any](bufferSize int, maxWorkers int) types.Option[types.Pipeline[T]] {
	return func(p types.Pipeline[T]) {
		p.SetConcurrencyControl(bufferSize, maxWorkers)
	}
}
