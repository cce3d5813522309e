package utils

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logOnce sync.Once
	logger  *logrus.Logger
)

// Log returns the shared application logger. Output goes to stdout and,
// when LOG_FILE is set, to a size-rotated file as well.
func Log() *logrus.Logger {
	logOnce.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})

		level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)

		out := io.Writer(os.Stdout)
		if file := strings.TrimSpace(os.Getenv("LOG_FILE")); file != "" {
			out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
				Filename:   file,
				MaxSize:    20, // MB
				MaxBackups: 5,
				MaxAge:     30, // days
				Compress:   true,
			})
		}
		logger.SetOutput(out)
	})
	return logger
}

// LogEvent writes a standardized service log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	Log().WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}
