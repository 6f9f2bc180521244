package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options controls where log entries go and how verbose they are.
type Options struct {
	Debug bool
	// File, when set, receives log entries in append mode instead of Out.
	File string
	Out  io.Writer
}

// New builds the process logger. The returned close function releases the
// log file, if one was opened.
func New(opts Options) (*logrus.Logger, func() error, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	if opts.Debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	closeFn := func() error { return nil }

	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		out = file
		closeFn = file.Close
	}
	l.SetOutput(out)

	return l, closeFn, nil
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
