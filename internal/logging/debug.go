package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	debugMu     sync.RWMutex
	debugForced bool
	debugLogger logrus.FieldLogger = logrus.StandardLogger()
)

// SetDebug enables debug output independently of WT_DEBUG and routes it to logger.
func SetDebug(enabled bool, logger logrus.FieldLogger) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugForced = enabled
	if logger != nil {
		debugLogger = logger
	}
}

// DebugEnabled returns true if debug mode is enabled via SetDebug or the WT_DEBUG environment variable
func DebugEnabled() bool {
	debugMu.RLock()
	defer debugMu.RUnlock()
	return debugForced || os.Getenv("WT_DEBUG") != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		current().Debugf(format, args...)
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		current().Debugln(args...)
	}
}

func current() logrus.FieldLogger {
	debugMu.RLock()
	defer debugMu.RUnlock()
	return debugLogger
}
