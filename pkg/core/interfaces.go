package core

import (
	"strings"

	"fortio.org/log"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// fortioLogger routes Printf-style messages to fortio log at info level
type fortioLogger struct{}

func (fortioLogger) Printf(format string, args ...interface{}) {
	log.Infof(strings.TrimSuffix(format, "\n"), args...)
}

// NewLogger returns the default Logger backed by fortio.org/log
func NewLogger() Logger {
	return fortioLogger{}
}
