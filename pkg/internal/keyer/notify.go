package keyer

import (
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (k *Keyer) hasLoggers() bool {
	return atomic.LoadInt32(&k.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold k.loggersLock while invoking logger methods.
func (k *Keyer) snapshotLoggers() []types.Logger {
	if !k.hasLoggers() {
		return nil
	}

	k.loggersLock.Lock()
	defer k.loggersLock.Unlock()

	if len(k.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(k.loggers))
	copy(out, k.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and
// key/value pairs to all registered loggers. Callers on hot paths must gate
// calls with hasLoggers so the variadic args are not built for nobody.
func (k *Keyer) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := k.snapshotLoggers()
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

func (k *Keyer) notifyRenderComplete(text string, wpm float64, signal types.AudioSignal) {
	if !k.hasLoggers() {
		return
	}
	k.NotifyLoggers(
		types.InfoLevel,
		"Render completed",
		"component", k.componentMetadata,
		"event", "Render",
		"result", "SUCCESS",
		"characters", len(text),
		"wpm", wpm,
		"frequency", k.frequency,
		"durationSeconds", signal.Duration(),
	)
}

func (k *Keyer) notifyRenderRejected(text string, err error) {
	if !k.hasLoggers() {
		return
	}
	k.NotifyLoggers(
		types.ErrorLevel,
		"Render rejected",
		"component", k.componentMetadata,
		"event", "Render",
		"result", "FAILURE",
		"characters", len(text),
		"error", err,
	)
}
