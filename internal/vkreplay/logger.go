package vkreplay

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the logger shared by the components of a replay. The
// level is one of debug, info, warn, error, or fatal.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return nil, err
		}
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "vkreplay",
	}), nil
}
