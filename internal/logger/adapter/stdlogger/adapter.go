// Package stdlogger adapts the global zerolog logger to printf style logger interfaces,
// such as the gorm logger writer.
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to the global zerolog logger.
type Logger struct {
	// PrintfLevel is the level used by Printf, gorm routes all of its output through it.
	PrintfLevel zerolog.Level
}

// New returns a Logger writing Printf output at debug level.
func New() *Logger {
	return &Logger{PrintfLevel: zerolog.DebugLevel}
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, v ...any) {
	log.WithLevel(l.PrintfLevel).Msgf(format, v...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...any) {
	log.Debug().Msgf(format, v...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}
