// logger.go - structured logging for the pool daemon
package main

import (
	"fmt"
	"log"
	"os"
	"time"
)

// LogLevel represents the logging level.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// Logger is a leveled logger with an optional file sink and an optional
// audit sink for pool transitions (Append/Spend/admin).
type Logger struct {
	level    LogLevel
	file     *os.File
	fileLog  *log.Logger
	console  *log.Logger
	auditLog *log.Logger
}

// NewLogger creates a logger instance. logFile and auditFile may be empty
// to skip that sink.
func NewLogger(level string, logFile string, auditFile string) (*Logger, error) {
	var logLevel LogLevel
	switch level {
	case "debug":
		logLevel = DEBUG
	case "info":
		logLevel = INFO
	case "warn":
		logLevel = WARN
	case "error":
		logLevel = ERROR
	case "fatal":
		logLevel = FATAL
	default:
		logLevel = INFO
	}

	logger := &Logger{
		level:   logLevel,
		console: log.New(os.Stdout, "", log.LstdFlags),
	}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.file = file
		logger.fileLog = log.New(file, "", log.LstdFlags)
	}

	if auditFile != "" {
		f, err := os.OpenFile(auditFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open audit file: %w", err)
		}
		logger.auditLog = log.New(f, "", log.LstdFlags)
	}

	return logger, nil
}

// Close closes the main log file. The audit log file is not closed here.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	levelStr := "INFO"
	switch level {
	case DEBUG:
		levelStr = "DEBUG"
	case WARN:
		levelStr = "WARN"
	case ERROR:
		levelStr = "ERROR"
	case FATAL:
		levelStr = "FATAL"
	}

	message := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] %s: %s", timestamp, levelStr, message)

	l.console.Print(entry)
	if l.fileLog != nil {
		l.fileLog.Print(entry)
	}
	if l.auditLog != nil && level >= WARN {
		l.auditLog.Print(entry)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(ERROR, format, args...) }

// Fatal logs and exits the process.
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
	os.Exit(1)
}

// Transition logs a completed dispatcher operation (Append/Spend/admin)
// to the audit sink, one line per transition, distinct from the
// free-form Debug/Info/Warn/Error lines above.
func (l *Logger) Transition(op string, fields map[string]interface{}) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	entry := fmt.Sprintf("[%s] TRANSITION %s - %+v", timestamp, op, fields)
	l.console.Print(entry)
	if l.fileLog != nil {
		l.fileLog.Print(entry)
	}
	if l.auditLog != nil {
		l.auditLog.Print(entry)
	}
}
