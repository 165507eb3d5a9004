package decoder

import (
	"sync/atomic"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// hasLoggers returns true if any logger is attached (atomic, no locks, no alloc).
func (d *Decoder) hasLoggers() bool {
	return atomic.LoadInt32(&d.loggerCount) != 0
}

// snapshotLoggers returns a stable snapshot of the logger slice.
// Never hold d.loggersLock while invoking logger methods.
func (d *Decoder) snapshotLoggers() []types.Logger {
	if !d.hasLoggers() {
		return nil
	}

	d.loggersLock.Lock()
	defer d.loggersLock.Unlock()

	if len(d.loggers) == 0 {
		return nil
	}
	out := make([]types.Logger, len(d.loggers))
	copy(out, d.loggers)
	return out
}

// NotifyLoggers sends a log message with the specified level, message, and
// key/value pairs to all registered loggers. Callers on hot paths must gate
// calls with hasLoggers so the variadic args are not built for nobody.
func (d *Decoder) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	loggers := d.snapshotLoggers()
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

func (d *Decoder) notifyDecodeStart(signal types.AudioSignal, params types.DecodingParameters) {
	if !d.hasLoggers() {
		return
	}
	d.NotifyLoggers(
		types.InfoLevel,
		"Decode started",
		"component", d.componentMetadata,
		"event", "Decode",
		"result", "PENDING",
		"sampleRate", signal.SampleRate,
		"durationSeconds", signal.Duration(),
		"frequencyOverride", params.Frequency,
		"wpmOverride", params.WPM,
		"thresholdFactor", params.ThresholdFactor,
	)
}

func (d *Decoder) notifyDecodeComplete(result *types.DecodingResult, empty bool) {
	if !d.hasLoggers() {
		return
	}
	d.NotifyLoggers(
		types.InfoLevel,
		"Decode completed",
		"component", d.componentMetadata,
		"event", "Decode",
		"result", "SUCCESS",
		"empty", empty,
		"characters", len(result.Events),
		"wpm", result.WPM,
		"frequency", result.Frequency,
		"avgSnr", result.AvgSNR,
	)
}

func (d *Decoder) notifyDecodeRejected(err error) {
	if !d.hasLoggers() {
		return
	}
	d.NotifyLoggers(
		types.ErrorLevel,
		"Decode rejected",
		"component", d.componentMetadata,
		"event", "Decode",
		"result", "FAILURE",
		"error", err,
	)
}

func (d *Decoder) notifyCacheHit(key string) {
	if !d.hasLoggers() {
		return
	}
	d.NotifyLoggers(
		types.DebugLevel,
		"Result cache hit",
		"component", d.componentMetadata,
		"event", "Decode",
		"result", "SUCCESS",
		"cacheKey", key,
	)
}

func (d *Decoder) notifyCacheStoreFailure(key string, err error) {
	if !d.hasLoggers() {
		return
	}
	d.NotifyLoggers(
		types.WarnLevel,
		"Result cache store failed",
		"component", d.componentMetadata,
		"event", "Decode",
		"result", "FAILURE",
		"cacheKey", key,
		"error", err,
	)
}
