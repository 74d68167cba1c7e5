// Package logging builds the process logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pageza/sousie/backend/config"
)

// New returns a logger writing to out. Production logs JSON; everything else
// logs text with full timestamps. An unknown level falls back to info.
func New(out io.Writer, level string, env config.Environment) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if env.Deployed() {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("Unknown log level, using info")
	}
	log.SetLevel(lvl)

	return log
}
