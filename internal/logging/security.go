package logging

import (
	"github.com/sirupsen/logrus"
)

// SecurityEvent records a denied or suspicious operation at warn level.
// Entries carry security=true so they can be filtered downstream.
func SecurityEvent(logger logrus.FieldLogger, event string, fields logrus.Fields) {
	entry := logger.WithField("security", true).WithField("event", event)
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Warn("security event: " + event)
}
