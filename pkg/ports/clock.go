package ports

import "time"

// Timer is a cancellable scheduled continuation.
type Timer interface {
	// Stop cancels the timer. Reports whether it was stopped before firing.
	Stop() bool
}

// Clock abstracts timer scheduling so the playback cadence can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time

	// AfterFunc schedules fn to run once after d, on an unspecified goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
