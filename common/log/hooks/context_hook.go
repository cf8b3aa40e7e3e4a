package hooks

import (
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// modulePrefix is trimmed from file paths so entries show repo-relative locations.
const modulePrefix = "GameArchitecture/"

type contextHook struct{}

// NewContextHook returns a hook that adds the "file:line" of the logging call.
func NewContextHook() logrus.Hook {
	return contextHook{}
}

func (hook contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire walks the stack printed by debug.Stack: after this file's frame come
// the logrus frames, and the first file line outside logrus is the caller's.
// File lines alternate with function lines, hence the stride of 2.
func (hook contextHook) Fire(entry *logrus.Entry) error {
	lines := strings.Split(string(debug.Stack()), "\n")
	foundHook := false
	incr := 1
	for i := 0; i < len(lines); i += incr {
		if strings.Contains(lines[i], "context_hook.go:") {
			foundHook = true
			incr = 2
			continue
		}
		if !foundHook || !strings.Contains(lines[i], ".go:") {
			continue
		}
		if strings.Contains(lines[i], "sirupsen/logrus") {
			continue
		}
		loc := strings.TrimSpace(lines[i])
		if idx := strings.LastIndex(loc, modulePrefix); idx >= 0 {
			loc = loc[idx+len(modulePrefix):]
		}
		if sp := strings.Index(loc, " +0x"); sp >= 0 {
			loc = loc[:sp]
		}
		entry.Data["file:line"] = loc
		return nil
	}
	return nil
}
