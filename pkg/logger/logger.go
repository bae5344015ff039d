package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger: JSON output on stdout at the configured
// level, falling back to info on an unrecognized level string.
func New(logLevel string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
