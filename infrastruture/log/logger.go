// Package log provides colored component loggers on top of logrus.
package log

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

var _ i.Logger = &Logger{}

// Logger prefixes every entry with a colored component tag, e.g. "[APP]".
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for component writing to out.
func New(component, color string, out io.Writer) (*Logger, error) {
	if component == "" {
		return nil, errors.New("logger requires a component name")
	}
	if out == nil {
		return nil, errors.New("logger requires an output")
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&componentFormatter{
		prefix: fmt.Sprintf("%s[%s]%s", color, strings.ToUpper(component), colorReset),
	})

	return &Logger{entry: logrus.NewEntry(l)}, nil
}

func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

func (l *Logger) Warning(msg string) {
	l.entry.Warn(msg)
}

func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

// componentFormatter renders "<time> [COMPONENT] [LEVEL] message".
type componentFormatter struct {
	prefix string
}

func (f *componentFormatter) Format(e *logrus.Entry) ([]byte, error) {
	line := fmt.Sprintf("%s %s [%s] %s\n",
		e.Time.Format("2006/01/02 15:04:05"),
		f.prefix,
		strings.ToUpper(e.Level.String()),
		e.Message,
	)
	return []byte(line), nil
}
