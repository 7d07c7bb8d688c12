package gamemode

type State int

const (
	StateLoading State = iota // Waiting on images
	StateTitle                // Instructions shown
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	}
	return "unknown"
}

// Session is the mutable per-round state.
type Session struct {
	State         State
	Started       bool
	Score         int
	TimeRemaining int

	restartArmed bool
}

func (s *Session) reset() {
	s.Score = 0
	s.TimeRemaining = SessionSeconds
}

// RestartArmed reports whether the one-shot restart listener is pending.
func (s Session) RestartArmed() bool {
	return s.restartArmed
}
