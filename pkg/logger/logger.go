package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Fatal(msg string, fields map[string]interface{})

	WithFields(fields map[string]interface{}) Logger
}

type ZerologLogger struct {
	logger zerolog.Logger
	fields map[string]interface{}
}

func New(level LogLevel, output io.Writer) Logger {
	if output == nil {
		output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var writer io.Writer
	if strings.ToLower(os.Getenv("APP_ENV")) == "development" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    false,
		}
	} else {
		writer = output
	}

	zl := zerolog.New(writer).
		Level(getZerologLevel(level)).
		With().
		Timestamp().
		Logger()

	return &ZerologLogger{
		logger: zl,
		fields: make(map[string]interface{}),
	}
}

func getZerologLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZerologLogger) WithFields(fields map[string]interface{}) Logger {
	newLogger := &ZerologLogger{
		logger: l.logger,
		fields: make(map[string]interface{}, len(l.fields)+len(fields)),
	}

	for k, v := range l.fields {
		newLogger.fields[k] = v
	}

	for k, v := range fields {
		newLogger.fields[k] = v
	}

	return newLogger
}

func (l *ZerologLogger) emit(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for k, v := range l.fields {
		event = event.Interface(k, v)
	}
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

func (l *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.emit(l.logger.Debug(), msg, fields)
}

func (l *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	l.emit(l.logger.Info(), msg, fields)
}

func (l *ZerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.emit(l.logger.Warn(), msg, fields)
}

func (l *ZerologLogger) Error(msg string, fields map[string]interface{}) {
	l.emit(l.logger.Error(), msg, fields)
}

func (l *ZerologLogger) Fatal(msg string, fields map[string]interface{}) {
	l.emit(l.logger.Fatal(), msg, fields)
}
