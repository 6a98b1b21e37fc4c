package kernel

import "time"

// Clock returns the current time. The engine stamps history events and dispatch
// times through it so tests can pin time.
type Clock func() time.Time

// SystemClock is the wall clock truncated to whole seconds, the resolution the
// lifecycle rules are expressed in.
func SystemClock() time.Time {
	return time.Now().Truncate(time.Second)
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
