package sandbox

import "time"

// Clock supplies timestamps for points and history snapshots so tests can pin
// time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }
