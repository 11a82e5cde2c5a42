// Package logger configures the process-wide logrus logger and bridges
// whatsmeow's logging interface onto it.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	walog "go.mau.fi/whatsmeow/util/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup sets level and output of the standard logrus logger. When file is
// set, output goes to stderr and to a rotating log file; the returned closer
// releases it.
func Setup(level, file string) (io.Closer, error) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	if file == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	rotator := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	return rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// waLogger implements walog.Logger on a logrus entry.
type waLogger struct {
	entry *log.Entry
}

// WA returns a whatsmeow logger tagged with module.
func WA(module string) walog.Logger {
	return &waLogger{entry: log.WithField("module", module)}
}

func (l *waLogger) Warnf(msg string, args ...interface{})  { l.entry.Warnf(msg, args...) }
func (l *waLogger) Errorf(msg string, args ...interface{}) { l.entry.Errorf(msg, args...) }
func (l *waLogger) Infof(msg string, args ...interface{})  { l.entry.Infof(msg, args...) }
func (l *waLogger) Debugf(msg string, args ...interface{}) { l.entry.Debugf(msg, args...) }

func (l *waLogger) Sub(module string) walog.Logger {
	parent, _ := l.entry.Data["module"].(string)
	if parent != "" {
		module = parent + "/" + module
	}
	return &waLogger{entry: l.entry.WithField("module", module)}
}
