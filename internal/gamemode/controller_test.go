package gamemode

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"

	"cookierush/internal/assets"
	"cookierush/internal/entity"
)

type fakeMusic struct {
	plays, pauses, rewinds int
}

func (m *fakeMusic) Play()   { m.plays++ }
func (m *fakeMusic) Pause()  { m.pauses++ }
func (m *fakeMusic) Rewind() { m.rewinds++ }

type fakeEffect struct {
	triggers int
}

func (e *fakeEffect) Trigger() { e.triggers++ }

type harness struct {
	ctrl   *Controller
	clock  *MockClock
	music  *fakeMusic
	effect *fakeEffect
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:  NewMockClock(epoch),
		music:  &fakeMusic{},
		effect: &fakeEffect{},
	}
	h.ctrl = NewController(Options{
		Clock:      h.clock,
		Rand:       rand.New(rand.NewPCG(1, 2)),
		Music:      h.music,
		Effect:     h.effect,
		AssetTotal: len(assets.Required),
	})
	return h
}

// loaded returns a harness sitting on the title screen.
func loaded(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	for _, id := range assets.Required {
		h.ctrl.Dispatch(Event{Kind: EventAsset, Asset: assets.Result{ID: id, Image: img}})
	}
	if got := h.ctrl.Session().State; got != StateTitle {
		t.Fatalf("after loading state = %s, want title", got)
	}
	return h
}

func (h *harness) key(k Key) {
	h.ctrl.Dispatch(Event{Kind: EventKey, Key: k})
}

func (h *harness) seconds(n int) {
	for i := 0; i < n; i++ {
		h.clock.Advance(time.Second)
		h.ctrl.Poll()
	}
}

// park moves every cookie to the top row, clear of the starting player.
func (h *harness) park() {
	for i, ck := range h.ctrl.Cookies() {
		ck.X, ck.Y = float64(i)*300, 0
	}
}

func TestLoadingWaitsForEveryImage(t *testing.T) {
	h := newHarness(t)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	for _, id := range assets.Required {
		r := assets.Result{ID: id, Name: "x.png", Image: img}
		if id == assets.Background {
			r = assets.Result{ID: id, Name: "bg.jpg", Err: errors.New("boom")}
		}
		h.ctrl.Dispatch(Event{Kind: EventAsset, Asset: r})
	}
	if got := h.ctrl.Session().State; got != StateLoading {
		t.Fatalf("state = %s, want loading after a failed image", got)
	}

	h.key(KeySpace)
	if h.ctrl.Session().Started || h.music.plays != 0 {
		t.Fatalf("space started the game before the title was shown")
	}
}

func TestTitleIgnoresEverythingButSpace(t *testing.T) {
	h := loaded(t)
	x0, y0 := h.ctrl.Player().X, h.ctrl.Player().Y

	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyOther} {
		h.key(k)
	}
	h.ctrl.Dispatch(Event{Kind: EventFrame})
	h.seconds(3)

	s := h.ctrl.Session()
	if s.State != StateTitle || s.Started || s.Score != 0 || s.TimeRemaining != SessionSeconds {
		t.Fatalf("session changed on title: %+v", s)
	}
	if p := h.ctrl.Player(); p.X != x0 || p.Y != y0 || p.Frame() != 0 || p.Facing != entity.FacingRight {
		t.Fatalf("player moved on title: %+v", p)
	}
	if h.music.plays != 0 || h.effect.triggers != 0 || h.ctrl.CountdownActive() {
		t.Fatalf("side effects on title: music %+v effect %+v", h.music, h.effect)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	h := loaded(t)

	h.key(KeySpace)
	s := h.ctrl.Session()
	if s.State != StatePlaying || !s.Started {
		t.Fatalf("after space: %+v", s)
	}
	if h.music.plays != 1 || !h.ctrl.CountdownActive() {
		t.Fatalf("start: music plays %d, countdown %v", h.music.plays, h.ctrl.CountdownActive())
	}

	h.clock.Advance(500 * time.Millisecond)
	h.key(KeySpace)
	if h.music.plays != 1 {
		t.Fatalf("second space replayed music: %d plays", h.music.plays)
	}

	// The original schedule still fires at the 1s mark.
	h.clock.Advance(500 * time.Millisecond)
	h.ctrl.Poll()
	if got := h.ctrl.Session().TimeRemaining; got != SessionSeconds-1 {
		t.Fatalf("time remaining = %d, want %d", got, SessionSeconds-1)
	}
}

func TestCountdownEndsGameOnTickAfterZero(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)

	for i := 1; i <= SessionSeconds; i++ {
		h.seconds(1)
		s := h.ctrl.Session()
		if s.TimeRemaining != SessionSeconds-i {
			t.Fatalf("after %d ticks time = %d", i, s.TimeRemaining)
		}
		if s.State != StatePlaying {
			t.Fatalf("game ended early after %d ticks", i)
		}
	}
	if h.music.pauses != 0 {
		t.Fatalf("music paused before game over")
	}

	h.seconds(1)
	s := h.ctrl.Session()
	if s.State != StateGameOver || s.Started {
		t.Fatalf("after 61 ticks: %+v", s)
	}
	if !s.RestartArmed() {
		t.Fatalf("restart not armed at game over")
	}
	if h.music.pauses != 1 || h.ctrl.CountdownActive() {
		t.Fatalf("game over: pauses %d, countdown %v", h.music.pauses, h.ctrl.CountdownActive())
	}

	h.seconds(5)
	if got := h.ctrl.Session().TimeRemaining; got != 0 {
		t.Fatalf("cancelled countdown kept ticking: %d", got)
	}
}

func TestFrameMovesCookiesOnlyWhileStarted(t *testing.T) {
	h := loaded(t)
	before := snapshot(h.ctrl.Cookies())

	h.ctrl.Dispatch(Event{Kind: EventFrame})
	if got := snapshot(h.ctrl.Cookies()); !reflect.DeepEqual(got, before) {
		t.Fatalf("cookies moved before start")
	}

	h.key(KeySpace)
	h.ctrl.Dispatch(Event{Kind: EventFrame})
	if got := snapshot(h.ctrl.Cookies()); reflect.DeepEqual(got, before) {
		t.Fatalf("cookies did not move while playing")
	}
	for _, ck := range h.ctrl.Cookies() {
		if !ck.Rect().Within(ScreenWidth, ScreenHeight) {
			t.Fatalf("cookie left the surface: %+v", ck.Rect())
		}
	}

	h.seconds(SessionSeconds + 1)
	frozen := snapshot(h.ctrl.Cookies())
	h.ctrl.Dispatch(Event{Kind: EventFrame})
	if got := snapshot(h.ctrl.Cookies()); !reflect.DeepEqual(got, frozen) {
		t.Fatalf("cookies moved after game over")
	}
}

func TestMoveRightWithoutCollision(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)
	h.park()
	x0 := h.ctrl.Player().X

	for i := 0; i < 5; i++ {
		h.key(KeyRight)
	}

	p := h.ctrl.Player()
	if p.X != x0+5*entity.PlayerSpeed {
		t.Fatalf("x = %v, want %v", p.X, x0+5*entity.PlayerSpeed)
	}
	if p.Facing != entity.FacingRight || p.Frame() != 1 {
		t.Fatalf("facing %s frame %d", p.Facing, p.Frame())
	}
	if h.ctrl.Session().Score != 0 {
		t.Fatalf("score = %d, want 0", h.ctrl.Session().Score)
	}
	if h.effect.triggers != 5 {
		t.Fatalf("effect triggered %d times, want 5", h.effect.triggers)
	}
}

func TestMoveIntoCookieScoresAndRespawns(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)
	h.park()

	p := h.ctrl.Player()
	ck := h.ctrl.Cookies()[0]
	// Just past the player's right edge; one step right closes the gap.
	ck.X, ck.Y = p.X+p.Width+1, p.Y
	dx, dy := ck.DX, ck.DY

	h.key(KeyRight)

	if got := h.ctrl.Session().Score; got != 1 {
		t.Fatalf("score = %d, want 1", got)
	}
	if ck.X == p.X-entity.PlayerSpeed+p.Width+1 && ck.Y == p.Y {
		t.Fatalf("cookie was not repositioned")
	}
	if !ck.Rect().Within(ScreenWidth, ScreenHeight) {
		t.Fatalf("respawned cookie off screen: %+v", ck.Rect())
	}
	if ck.DX != dx || ck.DY != dy {
		t.Fatalf("velocity changed on respawn")
	}
}

func TestCollisionIsStrictAndRunsOnAnyKey(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)
	h.park()

	p := h.ctrl.Player()
	ck := h.ctrl.Cookies()[1]

	ck.X, ck.Y = p.X+p.Width, p.Y
	h.key(KeyOther)
	if got := h.ctrl.Session().Score; got != 0 {
		t.Fatalf("edge-adjacent cookie scored: %d", got)
	}

	ck.X, ck.Y = p.X+p.Width-1, p.Y+p.Height-1
	h.key(KeyOther)
	if got := h.ctrl.Session().Score; got != 1 {
		t.Fatalf("1-unit overlap score = %d, want 1", got)
	}
	if h.effect.triggers != 0 {
		t.Fatalf("non-movement key triggered the effect")
	}
}

func TestSimultaneousOverlapsCountSeparately(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)
	h.park()

	p := h.ctrl.Player()
	cookies := h.ctrl.Cookies()
	cookies[0].X, cookies[0].Y = p.X, p.Y
	cookies[2].X, cookies[2].Y = p.X+10, p.Y+10

	h.key(KeySpace)
	if got := h.ctrl.Session().Score; got != 2 {
		t.Fatalf("score = %d, want 2", got)
	}
}

func TestRestartResetsOnce(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)
	h.park()

	p := h.ctrl.Player()
	h.ctrl.Cookies()[0].X, h.ctrl.Cookies()[0].Y = p.X, p.Y
	h.key(KeyOther)
	h.park()
	h.key(KeyLeft)
	pos := *p

	h.seconds(SessionSeconds + 1)
	if s := h.ctrl.Session(); s.State != StateGameOver || s.Score != 1 {
		t.Fatalf("before restart: %+v", s)
	}

	// Keys other than space leave the restart listener armed.
	h.key(KeyRight)
	if s := h.ctrl.Session(); s.State != StateGameOver || !s.RestartArmed() || p.X != pos.X {
		t.Fatalf("non-space key acted on game over: %+v", s)
	}

	h.key(KeySpace)
	s := h.ctrl.Session()
	if s.State != StatePlaying || !s.Started || s.Score != 0 || s.TimeRemaining != SessionSeconds {
		t.Fatalf("after restart: %+v", s)
	}
	if s.RestartArmed() {
		t.Fatalf("restart listener still armed")
	}
	if h.music.rewinds != 1 || h.music.plays != 2 || !h.ctrl.CountdownActive() {
		t.Fatalf("restart side effects: music %+v countdown %v", h.music, h.ctrl.CountdownActive())
	}
	if p.X != pos.X || p.Y != pos.Y || p.Facing != entity.FacingLeft {
		t.Fatalf("player reset on restart: %+v -> %+v", pos, *p)
	}

	h.key(KeySpace)
	if h.music.rewinds != 1 || h.music.plays != 2 {
		t.Fatalf("second space restarted again: %+v", h.music)
	}

	h.seconds(1)
	if got := h.ctrl.Session().TimeRemaining; got != SessionSeconds-1 {
		t.Fatalf("time after restart tick = %d, want %d", got, SessionSeconds-1)
	}
}

func TestEachGameOverArmsOneRestart(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)
	h.park()

	for round := 0; round < 3; round++ {
		h.seconds(SessionSeconds + 1)
		if !h.ctrl.Session().RestartArmed() {
			t.Fatalf("round %d: restart not armed", round)
		}
		h.key(KeySpace)
		h.key(KeySpace)
	}
	if h.music.rewinds != 3 {
		t.Fatalf("rewinds = %d, want 3", h.music.rewinds)
	}
}

type op struct {
	kind  string
	id    assets.ImageID
	text  string
	size  float64
	align entity.Align
}

type recordingSurface struct {
	ops []op
}

func (r *recordingSurface) Clear() { r.ops = append(r.ops, op{kind: "clear"}) }
func (r *recordingSurface) DrawImage(id assets.ImageID, x, y, w, h float64) {
	r.ops = append(r.ops, op{kind: "image", id: id})
}
func (r *recordingSurface) FillText(s string, x, y, size float64, align entity.Align) {
	r.ops = append(r.ops, op{kind: "text", text: s, size: size, align: align})
}
func (r *recordingSurface) FillRect(x, y, w, h float64) { r.ops = append(r.ops, op{kind: "rect"}) }
func (r *recordingSurface) Save()                       { r.ops = append(r.ops, op{kind: "save"}) }
func (r *recordingSurface) Restore()                    { r.ops = append(r.ops, op{kind: "restore"}) }
func (r *recordingSurface) Scale(sx, sy float64)        { r.ops = append(r.ops, op{kind: "scale"}) }

func TestDrawInstructionsIsIdempotent(t *testing.T) {
	a, b := &recordingSurface{}, &recordingSurface{}
	DrawInstructions(a)
	DrawInstructions(b)

	if !reflect.DeepEqual(a.ops, b.ops) {
		t.Fatalf("instruction screen differs between calls")
	}
	want := []op{
		{kind: "clear"},
		{kind: "image", id: assets.Background},
		{kind: "text", text: "Use the arrow keys on your keyboard", size: 24, align: entity.AlignCenter},
		{kind: "text", text: "to eat as many cookies as you can in 60 seconds!", size: 24, align: entity.AlignCenter},
		{kind: "text", text: "Press Spacebar to Start", size: 24, align: entity.AlignCenter},
	}
	if !reflect.DeepEqual(a.ops, want) {
		t.Fatalf("ops = %+v\nwant %+v", a.ops, want)
	}
}

func TestDrawPlayingOrder(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)
	h.park()
	h.key(KeyLeft)

	r := &recordingSurface{}
	h.ctrl.Draw(r)

	want := []op{
		{kind: "clear"},
		{kind: "image", id: assets.Background},
		{kind: "save"},
		{kind: "scale"},
		{kind: "image", id: assets.PlayerFrame1},
		{kind: "restore"},
		{kind: "image", id: assets.Cookie0},
		{kind: "image", id: assets.Cookie1},
		{kind: "image", id: assets.Cookie2},
		{kind: "text", text: "Score: 0", size: 20, align: entity.AlignLeft},
		{kind: "text", text: fmt.Sprintf("Time: %ds", SessionSeconds), size: 20, align: entity.AlignRight},
	}
	if !reflect.DeepEqual(r.ops, want) {
		t.Fatalf("ops = %+v\nwant %+v", r.ops, want)
	}
}

func TestDrawGameOverShowsFinalScore(t *testing.T) {
	h := loaded(t)
	h.key(KeySpace)
	h.park()
	p := h.ctrl.Player()
	h.ctrl.Cookies()[2].X, h.ctrl.Cookies()[2].Y = p.X, p.Y
	h.key(KeyOther)
	h.seconds(SessionSeconds + 1)

	r := &recordingSurface{}
	h.ctrl.Draw(r)

	var texts []string
	for _, o := range r.ops {
		if o.kind == "text" {
			texts = append(texts, o.text)
		}
	}
	want := []string{"Game Over!", "Your Score: 1", "Press Spacebar to Restart"}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("texts = %q, want %q", texts, want)
	}
}

func TestDrawLoadingProgress(t *testing.T) {
	h := newHarness(t)
	r := &recordingSurface{}
	h.ctrl.Draw(r)

	want := []op{{kind: "clear"}, {kind: "rect"}}
	if !reflect.DeepEqual(r.ops, want) {
		t.Fatalf("ops = %+v, want %+v", r.ops, want)
	}
}

func snapshot(cookies []*entity.Cookie) []entity.Cookie {
	out := make([]entity.Cookie, len(cookies))
	for i, c := range cookies {
		out[i] = *c
	}
	return out
}
