package gamemode

import (
	"log"
	"math/rand/v2"
	"time"

	"cookierush/internal/assets"
	"cookierush/internal/entity"
)

const (
	ScreenWidth    = 800
	ScreenHeight   = 600
	SessionSeconds = 60
	TickPeriod     = time.Second
)

// Key is an engine-independent key code.
type Key int

const (
	KeyOther Key = iota
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) direction() (entity.Direction, bool) {
	switch k {
	case KeyUp:
		return entity.DirUp, true
	case KeyDown:
		return entity.DirDown, true
	case KeyLeft:
		return entity.DirLeft, true
	case KeyRight:
		return entity.DirRight, true
	}
	return 0, false
}

type EventKind int

const (
	EventKey   EventKind = iota // Key pressed
	EventFrame                  // One game loop iteration
	EventTick                   // One countdown period elapsed
	EventAsset                  // An image finished loading or failed
)

type Event struct {
	Kind  EventKind
	Key   Key
	Asset assets.Result
}

// Music is the looping background track.
type Music interface {
	Play()
	Pause()
	Rewind()
}

// Effect is a short sound that starts from the beginning each time and may
// overlap itself.
type Effect interface {
	Trigger()
}

type Options struct {
	Clock      Clock
	Rand       *rand.Rand
	Music      Music
	Effect     Effect
	AssetTotal int
}

// Controller owns all game state and advances it one event at a time.
type Controller struct {
	session   Session
	player    *entity.Player
	cookies   []*entity.Cookie
	countdown *Countdown
	tracker   *assets.Tracker

	clock  Clock
	rng    *rand.Rand
	music  Music
	effect Effect
}

func NewController(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if opts.Music == nil {
		opts.Music = silence{}
	}
	if opts.Effect == nil {
		opts.Effect = silence{}
	}

	c := &Controller{
		session:   Session{State: StateLoading, TimeRemaining: SessionSeconds},
		player:    entity.NewPlayer(ScreenWidth, ScreenHeight, assets.PlayerFrames),
		cookies:   entity.NewCookies(opts.Rand, ScreenWidth, ScreenHeight, assets.CookieImages),
		countdown: NewCountdown(TickPeriod),
		tracker:   assets.NewTracker(opts.AssetTotal),
		clock:     opts.Clock,
		rng:       opts.Rand,
		music:     opts.Music,
		effect:    opts.Effect,
	}
	return c
}

func (c *Controller) Session() Session          { return c.session }
func (c *Controller) Player() *entity.Player    { return c.player }
func (c *Controller) Cookies() []*entity.Cookie { return c.cookies }
func (c *Controller) CountdownActive() bool     { return c.countdown.Active() }

// Dispatch advances the state machine by one event.
func (c *Controller) Dispatch(ev Event) {
	switch ev.Kind {
	case EventAsset:
		c.handleAsset(ev.Asset)
	case EventKey:
		c.handleKey(ev.Key)
	case EventFrame:
		c.step()
	case EventTick:
		c.tick()
	}
}

// Poll delivers every countdown tick that has come due since the last call.
func (c *Controller) Poll() {
	for n := c.countdown.Due(c.clock.Now()); n > 0; n-- {
		c.Dispatch(Event{Kind: EventTick})
	}
}

func (c *Controller) handleAsset(r assets.Result) {
	if c.tracker.Record(r) && c.session.State == StateLoading {
		c.session.State = StateTitle
	}
}

// handleKey routes one key press: the start or restart edge first, then
// movement, then the collision check.
func (c *Controller) handleKey(key Key) {
	switch c.session.State {
	case StateTitle:
		if key == KeySpace && !c.session.Started {
			c.start()
		}

	case StateGameOver:
		if key == KeySpace && c.session.restartArmed {
			c.restart()
		}

	case StatePlaying:
		if dir, ok := key.direction(); ok {
			c.player.Move(dir)
			c.effect.Trigger()
		}
		c.collide()
	}
}

func (c *Controller) start() {
	log.Println("Starting the game...")
	c.session.Started = true
	c.session.State = StatePlaying
	c.music.Play()
	c.startCountdown()
}

func (c *Controller) startCountdown() {
	log.Println("Starting the timer...")
	c.countdown.Start(c.clock.Now())
}

func (c *Controller) collide() {
	pr := c.player.Rect()
	for _, ck := range c.cookies {
		if entity.Overlaps(pr, ck.Rect()) {
			c.session.Score++
			ck.Respawn(c.rng, ScreenWidth, ScreenHeight)
		}
	}
}

// step is one game loop iteration. It does nothing once the round has ended.
func (c *Controller) step() {
	if !c.session.Started {
		return
	}
	for _, ck := range c.cookies {
		ck.Advance(ScreenWidth, ScreenHeight)
	}
}

func (c *Controller) tick() {
	if !c.countdown.Active() {
		return
	}
	if c.session.TimeRemaining <= 0 {
		c.countdown.Stop()
		c.music.Pause()
		log.Println("Game over: time is up")
		c.endGame()
		return
	}
	c.session.TimeRemaining--
	log.Printf("Time remaining: %d", c.session.TimeRemaining)
}

func (c *Controller) endGame() {
	c.session.Started = false
	c.session.State = StateGameOver
	c.session.restartArmed = true
	log.Printf("Final score: %d", c.session.Score)
}

func (c *Controller) restart() {
	log.Println("Restarting the game...")
	c.session.restartArmed = false
	c.countdown.Stop()
	c.session.reset()

	c.music.Rewind()
	c.music.Play()

	// No title frame: Draw runs after this dispatch, by which time we are
	// already Playing, so the instructions would never be seen.
	c.session.Started = true
	c.session.State = StatePlaying
	c.startCountdown()
}

type silence struct{}

func (silence) Play()    {}
func (silence) Pause()   {}
func (silence) Rewind()  {}
func (silence) Trigger() {}
