package logging

import (
	"context"
	"io"
	"maps"

	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus entry to the Logger interface. The CLI
// installs one of these as the global logger so library logs share the
// application's formatter and level.
type LogrusLogger struct {
	entry *logrus.Entry
}

// LogrusOptions controls construction of a LogrusLogger.
type LogrusOptions struct {
	Level     Level
	Output    io.Writer // nil keeps logrus' default (stderr)
	NoColor   bool
	Formatter logrus.Formatter // overrides NoColor when set
}

// NewLogrusLogger creates a logrus-backed logger at InfoLevel with the
// default text formatter.
func NewLogrusLogger() *LogrusLogger {
	return NewLogrusLoggerWithOptions(LogrusOptions{Level: InfoLevel})
}

// NewLogrusLoggerWithOptions creates a logrus-backed logger from options.
func NewLogrusLoggerWithOptions(opts LogrusOptions) *LogrusLogger {
	l := logrus.New()
	l.SetLevel(toLogrusLevel(opts.Level))

	if opts.Output != nil {
		l.SetOutput(opts.Output)
	}

	if opts.Formatter != nil {
		l.SetFormatter(opts.Formatter)
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: opts.NoColor,
		})
	}

	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// toLogrusLevel maps the facade's levels onto logrus levels.
func toLogrusLevel(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// mergeFields flattens variadic Fields into a logrus.Fields map.
func mergeFields(fields []Fields) logrus.Fields {
	merged := make(logrus.Fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}
	return merged
}

func (l *LogrusLogger) Debug(msg string, fields ...Fields) {
	l.entry.WithFields(mergeFields(fields)).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields ...Fields) {
	l.entry.WithFields(mergeFields(fields)).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields ...Fields) {
	l.entry.WithFields(mergeFields(fields)).Warn(msg)
}

func (l *LogrusLogger) Error(err error, msg string, fields ...Fields) {
	l.entry.WithError(err).WithFields(mergeFields(fields)).Error(msg)
}

func (l *LogrusLogger) Fatal(err error, msg string, fields ...Fields) {
	l.entry.WithError(err).WithFields(mergeFields(fields)).Fatal(msg)
}

func (l *LogrusLogger) WithFields(fields Fields) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *LogrusLogger) WithContext(ctx context.Context) Logger {
	return &LogrusLogger{entry: l.entry.WithContext(ctx)}
}

func (l *LogrusLogger) SetLevel(level Level) {
	l.entry.Logger.SetLevel(toLogrusLevel(level))
}
