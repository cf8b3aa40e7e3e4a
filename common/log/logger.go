// Package log builds the process logger. Everything logs through logrus;
// binaries call Configure once and pass Log (or an entry derived from it)
// to the components they build.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/IgorRikhard/GameArchitecture/common/log/hooks"
)

var Log = logrus.New()

// New returns a logger writing text entries at level to out (stderr if nil),
// annotated with the caller's file:line.
func New(level string, out io.Writer) (*logrus.Logger, error) {
	l := logrus.New()
	if err := configure(l, level, out); err != nil {
		return nil, err
	}
	return l, nil
}

// Configure applies level and out to Log.
func Configure(level string, out io.Writer) error {
	return configure(Log, level, out)
}

func configure(l *logrus.Logger, level string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	if out == nil {
		out = os.Stderr
	}
	l.SetLevel(lvl)
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.AddHook(hooks.NewContextHook())
	return nil
}
