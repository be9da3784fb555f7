package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger for debug messages
var (
	logger  = newDiscardLogger()
	logFile *os.File
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Logger returns the shared logger. It discards everything until InitLogger
// is called with verbose set.
func Logger() *logrus.Logger {
	return logger
}

// Log writes a formatted debug message
func Log(text string, args ...interface{}) {
	logger.Debugf(text, args...)
}

// InitLogger initializes the logging system. With verbose set, entries go to
// /tmp/todotimer_<date>.log at the given level (debug when empty).
func InitLogger(verbose bool, level string) {
	if !verbose {
		return
	}

	logFileName := fmt.Sprintf("/tmp/todotimer_%s.log", time.Now().Format("2006-01-02"))

	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Printf("Error creating log file: %v\n", err)
		return
	}
	logFile = f

	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})

	logger.SetLevel(logrus.DebugLevel)
	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		}
	}

	Log("Verbose logging enabled")
}

// CloseLogger closes the log file if it's open
func CloseLogger() {
	if logFile != nil {
		logger.SetOutput(io.Discard)
		logFile.Close()
		logFile = nil
	}
}
