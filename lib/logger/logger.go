package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
)

var levelStrings = map[LogLevel]string{
	DEBUG:   "DEBUG",
	INFO:    "INFO",
	WARNING: "WARNING",
	ERROR:   "ERROR",
}

// Logger writes leveled lines to stdout and a rotated log file.
type Logger struct {
	loggers map[LogLevel]*log.Logger
	level   LogLevel
}

func NewLogger(logPath string, maxSize, maxBackups, maxAge int, minLevel LogLevel) (*Logger, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize,    // megabytes
		MaxBackups: maxBackups, // number of backups
		MaxAge:     maxAge,     // days
		Compress:   true,
	}

	multiWriter := io.MultiWriter(rotator, os.Stdout)

	loggers := make(map[LogLevel]*log.Logger)
	for level, prefix := range levelStrings {
		loggers[level] = log.New(multiWriter, fmt.Sprintf("[%s] ", prefix), log.LstdFlags)
	}

	return &Logger{
		loggers: loggers,
		level:   minLevel,
	}, nil
}

// NewDiscard returns a logger that writes nowhere, for tests.
func NewDiscard() *Logger {
	loggers := make(map[LogLevel]*log.Logger)
	for level := range levelStrings {
		loggers[level] = log.New(io.Discard, "", 0)
	}
	return &Logger{loggers: loggers, level: ERROR}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= DEBUG {
		l.loggers[DEBUG].Printf(format, v...)
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= INFO {
		l.loggers[INFO].Printf(format, v...)
	}
}

func (l *Logger) Warning(format string, v ...interface{}) {
	if l.level <= WARNING {
		l.loggers[WARNING].Printf(format, v...)
	}
}

func (l *Logger) Error(format string, v ...interface{}) {
	if l.level <= ERROR {
		l.loggers[ERROR].Printf(format, v...)
	}
}

func GetLogLevelFromString(level string) LogLevel {
	switch level {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARNING":
		return WARNING
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}
