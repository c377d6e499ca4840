//go:build simplefs_debug
// +build simplefs_debug

package filesystem

import "github.com/sirupsen/logrus"

func init() {
	log.SetLevel(logrus.DebugLevel)
}
