package loading

import (
	log "github.com/sirupsen/logrus"
)

// ReporterSettings configures a LogReporter.
type ReporterSettings struct {
	Level log.Level
}

// LogReporter writes progress to the log, standing in for a loading screen.
type LogReporter struct {
	log   log.FieldLogger
	level log.Level
}

func NewLogReporter(l log.FieldLogger, settings ReporterSettings) *LogReporter {
	return &LogReporter{log: l, level: settings.Level}
}

func (r *LogReporter) Report(description string, progress float64) {
	e := r.log.WithFields(log.Fields{"operation": description, "progress": progress})
	switch r.level {
	case log.DebugLevel, log.TraceLevel:
		e.Debug("Loading")
	case log.WarnLevel:
		e.Warn("Loading")
	default:
		e.Info("Loading")
	}
}
