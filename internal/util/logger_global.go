package util

import (
	"fmt"
	"os"
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger. The log file is always written; debugToConsole
// mirrors entries to stderr.
func InitLogger(logLevel, logFile string, debugToConsole bool) error {
	var initErr error
	loggerOnce.Do(func() {
		outputs := make([]Output, 0, 2)
		if debugToConsole {
			outputs = append(outputs, NewConsoleOutput(os.Stderr, FormatText))
		}
		if logFile != "" {
			fileOutput, err := NewFileOutput(logFile, FormatText)
			if err != nil {
				initErr = fmt.Errorf("failed to open log file %s: %w", logFile, err)
				return
			}
			outputs = append(outputs, fileOutput)
		}
		globalLogger = NewLogger(logLevel, outputs...)
	})
	return initErr
}

// CloseLogger flushes and closes the global logger outputs.
func CloseLogger() {
	if globalLogger != nil {
		_ = globalLogger.Close()
	}
}

func LogInfo(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	}
}
