// Package logging builds the process logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus logger writing to stderr. Production gets JSON
// lines; everything else gets the colored text formatter. An unknown
// level falls back to info.
func New(level string, production bool) *logrus.Logger {
	return NewWithOutput(os.Stderr, level, production)
}

func NewWithOutput(w io.Writer, level string, production bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	if production {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("unknown log level, using info")
	}
	log.SetLevel(lvl)
	return log
}
