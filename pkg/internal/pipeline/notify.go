package pipeline

import (
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (p *Pipeline[T]) hasLoggers() bool {
	return atomic.LoadInt32(&p.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold p.loggersLock while invoking logger methods.
func (p *Pipeline[T]) snapshotLoggers() []types.Logger {
	if !p.hasLoggers() {
		return nil
	}

	p.loggersLock.Lock()
	defer p.loggersLock.Unlock()

	if len(p.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(p.loggers))
	copy(out, p.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and
// key/value pairs to all registered loggers. Callers on hot paths must gate
// calls with hasLoggers so the variadic args are not built for nobody.
func (p *Pipeline[T]) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := p.snapshotLoggers()
	if len(loggers) == 0 {
		return
	}

	type levelChecker interface {
		IsLevelEnabled(types.LogLevel) bool
	}

	for _, logger := range loggers {
		if logger == nil {
			continue
		}
		if lc, ok := logger.(levelChecker); ok && !lc.IsLevelEnabled(level) {
			continue
		}

		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

func (p *Pipeline[T]) notifyStart() {
	if !p.hasLoggers() {
		return
	}
	p.NotifyLoggers(
		types.InfoLevel,
		"Pipeline started",
		"component", p.componentMetadata,
		"event", "Start",
		"result", "SUCCESS",
		"bufferSize", p.maxBufferSize,
		"workers", p.maxConcurrency,
	)
}

func (p *Pipeline[T]) notifyStop() {
	if !p.hasLoggers() {
		return
	}
	p.NotifyLoggers(
		types.InfoLevel,
		"Pipeline stopped",
		"component", p.componentMetadata,
		"event", "Stop",
		"result", "SUCCESS",
	)
}

func (p *Pipeline[T]) notifySubmit() {
	p.NotifyLoggers(
		types.DebugLevel,
		"Element submitted",
		"component", p.componentMetadata,
		"event", "Submit",
		"result", "SUCCESS",
	)
}

func (p *Pipeline[T]) notifyTransformError(err error) {
	if !p.hasLoggers() {
		return
	}
	p.NotifyLoggers(
		types.WarnLevel,
		"Transform failed",
		"component", p.componentMetadata,
		"event", "Transform",
		"result", "FAILURE",
		"error", err,
	)
}
