package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Logger writes timestamped lines to a log file, falling back to stdout
// when no file could be opened.
type Logger struct {
	writeFile *os.File
}

// NewLogger opens the given log file for appending. If the file cannot be
// opened, logs are written to stdout instead.
func NewLogger(logFile string) *Logger {
	logger := &Logger{}
	if logFile == "" {
		return logger
	}
	_ = os.MkdirAll(filepath.Dir(logFile), 0o755)

	var err error
	logger.writeFile, err = os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file (%s): %v\n", logFile, err)
	}
	return logger
}

// Write appends a timestamped message to the log (or stdout when no file).
func (l *Logger) Write(message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("%s: %s\n", timestamp, message)
	if l != nil && l.writeFile != nil {
		l.writeFile.WriteString(logMessage)
		l.writeFile.Sync()
		return
	}
	fmt.Print(logMessage)
}

// Writef formats a message and appends it to the log.
func (l *Logger) Writef(format string, args ...any) {
	l.Write(fmt.Sprintf(format, args...))
}

// Close flushes and closes the underlying file handle.
func (l *Logger) Close() {
	if l != nil && l.writeFile != nil {
		l.writeFile.Close()
	}
}
