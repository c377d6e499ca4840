package filesystem

import (
	"os"

	"github.com/sirupsen/logrus"
)

// log is the engine's structured logger. The engine logs only at Debug
// level (one line per Format, Mount, Create, Remove, Write and Debug);
// whether those lines are actually emitted is controlled by a build-time
// switch, see log_debug.go and log_release.go.
var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{FullTimestamp: false}
	return l
}
