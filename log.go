package tinyb

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log   logrus.FieldLogger
	logMu sync.Mutex
)

// SetLogger replaces the logger used by the package. Pass nil to restore the
// default logger.
func SetLogger(l logrus.FieldLogger) {
	logMu.Lock()
	defer logMu.Unlock()
	log = l
}

func logger() logrus.FieldLogger {
	logMu.Lock()
	defer logMu.Unlock()

	if log == nil {
		log = buildDefaultLogger()
	}
	return log
}

func buildDefaultLogger() logrus.FieldLogger {
	l := &logrus.Logger{
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Level:     logrus.InfoLevel,
		Out:       os.Stderr,
		Hooks:     make(logrus.LevelHooks),
	}
	return l.WithField("pkg", "tinyb")
}
