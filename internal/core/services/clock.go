package services

import (
	"log/slog"
	"time"

	"github.com/vncsmyrnk/pollbot/internal/core/ports"
)

type systemClock struct{}

// SystemClock is the wall clock backed by time.AfterFunc.
func SystemClock() ports.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
