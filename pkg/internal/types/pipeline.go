package types

import "context"

// ElementError pairs a failed element with the error its transformation produced.
type ElementError[T any] struct {
	Element T
	Err     error
}

// Pipeline is a bounded-concurrency job runner: elements are submitted to a buffered
// queue, a fixed worker pool applies the configured transformers in order, and
// successes flow to the output channel while failures flow to the error channel.
// The decode service uses it to cap concurrent DSP work; decode semantics are
// unaffected because each job is an independent pure computation.
type Pipeline[T any] interface {
	ConnectLogger(...Logger)

	// ConnectTransformer appends transformation stages applied to every element.
	ConnectTransformer(...Transformer[T])

	GetComponentMetadata() ComponentMetadata

	// GetOutputChannel exposes successfully transformed elements.
	GetOutputChannel() chan T

	// GetErrorChannel exposes elements whose transformation failed.
	GetErrorChannel() chan ElementError[T]

	IsStarted() bool

	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	SetComponentMetadata(name string, id string)

	// SetConcurrencyControl sets the queue capacity and the worker count.
	SetConcurrencyControl(bufferSize int, maxWorkers int)

	Start(context.Context) error

	Stop() error

	// Submit enqueues an element, blocking while the queue is full until the
	// element is accepted or a context is canceled.
	Submit(ctx context.Context, elem T) error
}
