package gamemode

import "time"

// Clock supplies wall-clock time to the countdown.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time with its monotonic reading.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
