package resultcache

import (
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (c *ResultCache) hasLoggers() bool {
	return atomic.LoadInt32(&c.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold c.loggersLock while invoking logger methods.
func (c *ResultCache) snapshotLoggers() []types.Logger {
	if !c.hasLoggers() {
		return nil
	}

	c.loggersLock.Lock()
	defer c.loggersLock.Unlock()

	if len(c.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(c.loggers))
	copy(out, c.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and
// key/value pairs to all registered loggers. Callers on hot paths must gate
// calls with hasLoggers so the variadic args are not built for nobody.
func (c *ResultCache) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := c.snapshotLoggers()
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

func (c *ResultCache) notifyStoreComplete(key string, rawBytes, storedBytes int, evicted []string) {
	if !c.hasLoggers() {
		return
	}
	c.NotifyLoggers(
		types.DebugLevel,
		"Result stored",
		"component", c.componentMetadata,
		"event", "Store",
		"result", "SUCCESS",
		"cacheKey", key,
		"rawBytes", rawBytes,
		"storedBytes", storedBytes,
		"evicted", len(evicted),
	)
}

func (c *ResultCache) notifyStoreRejected(key string, err error) {
	if !c.hasLoggers() {
		return
	}
	c.NotifyLoggers(
		types.ErrorLevel,
		"Result store rejected",
		"component", c.componentMetadata,
		"event", "Store",
		"result", "FAILURE",
		"cacheKey", key,
		"error", err,
	)
}

func (c *ResultCache) notifyCorruptEntry(key string, err error) {
	if !c.hasLoggers() {
		return
	}
	c.NotifyLoggers(
		types.WarnLevel,
		"Corrupt cache entry dropped",
		"component", c.componentMetadata,
		"event", "Lookup",
		"result", "FAILURE",
		"cacheKey", key,
		"error", err,
	)
}

func (c *ResultCache) notifySpillFailed(key string, err error) {
	if !c.hasLoggers() {
		return
	}
	c.NotifyLoggers(
		types.WarnLevel,
		"Spill write failed",
		"component", c.componentMetadata,
		"event", "Store",
		"result", "FAILURE",
		"cacheKey", key,
		"error", err,
	)
}

func (c *ResultCache) notifySpillUnavailable(dir string, err error) {
	if !c.hasLoggers() {
		return
	}
	c.NotifyLoggers(
		types.ErrorLevel,
		"Spill directory unavailable",
		"component", c.componentMetadata,
		"event", "SetSpillDirectory",
		"result", "FAILURE",
		"directory", dir,
		"error", err,
	)
}
