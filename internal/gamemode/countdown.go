package gamemode

import "time"

// Countdown is a repeating fixed-period tick. It holds no callback; the
// owner polls Due with the current time and handles each tick itself.
type Countdown struct {
	Period time.Duration

	active bool
	next   time.Time
}

func NewCountdown(period time.Duration) *Countdown {
	return &Countdown{Period: period}
}

// Start arms the countdown so the first tick lands one period after now.
// Any previous schedule is dropped first.
func (c *Countdown) Start(now time.Time) {
	c.Stop()
	c.active = true
	c.next = now.Add(c.Period)
}

func (c *Countdown) Stop() {
	c.active = false
	c.next = time.Time{}
}

func (c *Countdown) Active() bool {
	return c.active
}

// Due returns how many ticks have elapsed since the last call and moves
// the schedule past them.
func (c *Countdown) Due(now time.Time) int {
	if !c.active {
		return 0
	}
	n := 0
	for !now.Before(c.next) {
		n++
		c.next = c.next.Add(c.Period)
	}
	return n
}
