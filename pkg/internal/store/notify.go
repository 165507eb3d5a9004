package store

import (
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (s *ArtifactStore) hasLoggers() bool {
	return atomic.LoadInt32(&s.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold s.loggersLock while invoking logger methods.
func (s *ArtifactStore) snapshotLoggers() []types.Logger {
	if !s.hasLoggers() {
		return nil
	}

	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()

	if len(s.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(s.loggers))
	copy(out, s.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and
// key/value pairs to all registered loggers. Callers on hot paths must gate
// calls with hasLoggers so the variadic args are not built for nobody.
func (s *ArtifactStore) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := s.snapshotLoggers()
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

func (s *ArtifactStore) notifySaveComplete(kind types.ArtifactKind, stored string, bytes int64) {
	if !s.hasLoggers() {
		return
	}
	s.NotifyLoggers(
		types.InfoLevel,
		"Artifact saved",
		"component", s.componentMetadata,
		"event", "Save",
		"result", "SUCCESS",
		"kind", string(kind),
		"storedName", stored,
		"bytes", bytes,
	)
}

func (s *ArtifactStore) notifySaveRejected(kind types.ArtifactKind, name string, err error) {
	if !s.hasLoggers() {
		return
	}
	s.NotifyLoggers(
		types.ErrorLevel,
		"Artifact save rejected",
		"component", s.componentMetadata,
		"event", "Save",
		"result", "FAILURE",
		"kind", string(kind),
		"suggestedName", name,
		"error", err,
	)
}
