package main

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/osse101/MixOptimizer_Go/internal/search"
)

// newProgressReporter logs search progress at most once per interval. A
// non-positive interval disables reporting.
func newProgressReporter(interval time.Duration) search.ProgressFunc {
	if interval <= 0 {
		return nil
	}
	every := &rate.Sometimes{Interval: interval}
	return func(done, total uint64) {
		every.Do(func() {
			slog.Info(logMsgSearchProgress,
				"evaluated", done,
				"candidates", total,
				"percent", percent(done, total))
		})
	}
}

func percent(done, total uint64) float64 {
	if total == 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}
