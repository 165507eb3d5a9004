package internallogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerWithLevel sets the minimum level from a string such as "debug" or
// "warn". Unrecognized strings fall back to info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(_ *zap.Config, level *zapcore.Level, _ *int) {
		*level = ConvertLevel(parseLogLevel(levelStr))
	}
}

// LoggerWithDevelopment toggles the development encoder layout.
func LoggerWithDevelopment(development bool) LoggerOption {
	return func(config *zap.Config, _ *zapcore.Level, _ *int) {
		config.Development = development
	}
}

// LoggerWithFields attaches fields to every entry the adapter emits.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(config *zap.Config, _ *zapcore.Level, _ *int) {
		if config.InitialFields == nil {
			config.InitialFields = make(map[string]interface{}, len(fields))
		}
		for k, v := range fields {
			config.InitialFields[k] = v
		}
	}
}

// ZapAdapterWithCallerSkip overrides the caller skip depth. The default of 2
// points the caller annotation at the component calling NotifyLoggers rather
// than the adapter internals.
func ZapAdapterWithCallerSkip(skip int) LoggerOption {
	return func(_ *zap.Config, _ *zapcore.Level, callerDepth *int) {
		*callerDepth = skip
	}
}
