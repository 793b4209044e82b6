package analysis

import (
	"github.com/wonny/scorecard/pkg/logger"
)

// Diagnostics receives the pipeline's warnings and errors.
// Implementations must not retain the fields map.
type Diagnostics interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// LogSink forwards diagnostics to a structured logger
type LogSink struct {
	log *logger.Logger
}

// NewLogSink creates a sink backed by log
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Warn(msg string, fields map[string]interface{}) {
	s.log.WithFields(fields).Warn(msg)
}

func (s *LogSink) Error(msg string, fields map[string]interface{}) {
	s.log.WithFields(fields).Error(msg)
}

// nopSink drops everything
type nopSink struct{}

func (nopSink) Warn(string, map[string]interface{})  {}
func (nopSink) Error(string, map[string]interface{}) {}
