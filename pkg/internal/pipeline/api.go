package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// ConnectLogger registers loggers. Nil loggers are ignored.
func (p *Pipeline[T]) ConnectLogger(loggers ...types.Logger) {
	if len(loggers) == 0 {
		return
	}

	// Compact in-place to drop nils without allocating.
	n := 0
	for _, l := range loggers {
		if l != nil {
			loggers[n] = l
			n++
		}
	}
	if n == 0 {
		return
	}
	loggers = loggers[:n]

	p.loggersLock.Lock()
	p.loggers = append(p.loggers, loggers...)
	p.loggersLock.Unlock()

	atomic.AddInt32(&p.loggerCount, int32(n))

	p.NotifyLoggers(
		types.DebugLevel,
		"ConnectLogger",
		"component", p.componentMetadata,
		"event", "ConnectLogger",
		"result", "SUCCESS",
		"count", n,
	)
}

// ConnectTransformer appends transformation stages applied to every element.
// Configuration-time only; transformers attached after Start are not picked
// up by running workers.
func (p *Pipeline[T]) ConnectTransformer(transformers ...types.Transformer[T]) {
	p.transformations = append(p.transformations, transformers...)

	p.NotifyLoggers(
		types.DebugLevel,
		"ConnectTransformer",
		"component", p.componentMetadata,
		"event", "ConnectTransformer",
		"result", "SUCCESS",
		"count", len(transformers),
	)
}

// GetComponentMetadata returns the component's metadata.
func (p *Pipeline[T]) GetComponentMetadata() types.ComponentMetadata {
	return p.componentMetadata
}

// GetOutputChannel exposes successfully transformed elements.
func (p *Pipeline[T]) GetOutputChannel() chan T {
	return p.outChan
}

// GetErrorChannel exposes elements whose transformation failed.
func (p *Pipeline[T]) GetErrorChannel() chan types.ElementError[T] {
	return p.errorChan
}

// IsStarted reports whether the pipeline is running.
func (p *Pipeline[T]) IsStarted() bool {
	return atomic.LoadInt32(&p.started) == 1
}

// SetComponentMetadata overrides the component's name and ID.
func (p *Pipeline[T]) SetComponentMetadata(name string, id string) {
	p.componentMetadata.Name = name
	p.componentMetadata.ID = id
}

// SetConcurrencyControl sets the queue capacity and the worker count.
// Effective only before construction finishes sizing the channels, so it is
// meant for use as an option.
func (p *Pipeline[T]) SetConcurrencyControl(bufferSize int, maxWorkers int) {
	p.maxBufferSize = bufferSize
	p.maxConcurrency = maxWorkers
}

// Start launches the worker pool. A pipeline with no transformers passes
// elements through unchanged. Starting twice is a no-op.
func (p *Pipeline[T]) Start(_ context.Context) error {
	if !atomic.CompareAndSwapInt32(&p.started, 0, 1) {
		return nil
	}

	p.notifyStart()

	if len(p.transformations) == 0 {
		p.transformations = []types.Transformer[T]{
			func(v T) (T, error) { return v, nil },
		}
	}

	workers := p.maxConcurrency
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.processChannel()
	}

	return nil
}

// Stop cancels the workers, waits for them to drain, and closes the output
// and error channels. Stopping twice is a no-op.
func (p *Pipeline[T]) Stop() error {
	if !atomic.CompareAndSwapInt32(&p.started, 1, 0) {
		return nil
	}

	p.notifyStop()

	p.cancel()
	p.wg.Wait()

	p.closeOutputChanOnce.Do(func() { close(p.outChan) })
	p.closeErrorChanOnce.Do(func() { close(p.errorChan) })

	return nil
}

// Submit enqueues an element, blocking while the queue is full until the
// element is accepted or a context is canceled.
func (p *Pipeline[T]) Submit(ctx context.Context, elem T) error {
	select {
	case p.inChan <- elem:
		if p.hasLoggers() {
			p.notifySubmit()
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}
