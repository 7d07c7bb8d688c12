package gamemode

// Held arrow keys repeat like a keyboard's own auto-repeat: once on the
// press, then every RepeatInterval ticks after RepeatDelay ticks held.
const (
	RepeatDelay    = 30
	RepeatInterval = 6
)

// Repeats reports whether a key held for d ticks fires on this tick.
// d is 1 on the tick the key goes down and 0 when it is up.
func Repeats(d int) bool {
	if d == 1 {
		return true
	}
	return d >= RepeatDelay && (d-RepeatDelay)%RepeatInterval == 0
}

// Repeatable reports whether holding the key should keep sending it.
// Space stays press-only so a held Space can't restart a round.
func (k Key) Repeatable() bool {
	_, ok := k.direction()
	return ok
}
