// Package leaktest fails tests that leave goroutines running.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultTimeout bounds how long Check waits for goroutines to exit
const DefaultTimeout = time.Second

const pollInterval = 10 * time.Millisecond

// Snapshot is a goroutine count taken before the code under test runs
type Snapshot struct {
	t      testing.TB
	before int
}

// Take records the current goroutine count
func Take(t testing.TB) *Snapshot {
	t.Helper()
	runtime.Gosched()
	return &Snapshot{t: t, before: runtime.NumGoroutine()}
}

// Settled waits up to timeout for the goroutine count to drop back to at
// most tolerance above the snapshot, and fails the test if it does not.
func (s *Snapshot) Settled(tolerance int, timeout time.Duration) {
	s.t.Helper()

	deadline := time.Now().Add(timeout)
	after := runtime.NumGoroutine()
	for after-s.before > tolerance {
		if time.Now().After(deadline) {
			s.t.Errorf("goroutine leak: before=%d after=%d leaked=%d tolerance=%d",
				s.before, after, after-s.before, tolerance)
			return
		}
		time.Sleep(pollInterval)
		runtime.Gosched()
		after = runtime.NumGoroutine()
	}
}

// Check runs fn and fails t if goroutines started by fn are still running
// after DefaultTimeout
func Check(t testing.TB, fn func()) {
	t.Helper()
	s := Take(t)
	fn()
	s.Settled(0, DefaultTimeout)
}
