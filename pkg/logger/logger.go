package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.RWMutex
	std *logrus.Logger
)

// Init replaces the process logger with a JSON logger writing to w.
// level is any name logrus understands; anything else falls back to info.
func Init(level string, w io.Writer) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})

	mu.Lock()
	std = l
	mu.Unlock()
}

// Get returns the process logger, creating one from LOG_LEVEL on first use.
func Get() *logrus.Logger {
	mu.RLock()
	l := std
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(os.Getenv("LOG_LEVEL"), os.Stdout)
	return Get()
}

func WithField(key string, value interface{}) *logrus.Entry {
	return Get().WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return Get().WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return Get().WithError(err)
}
