package entity

import "cookierush/internal/assets"

const (
	PlayerSize  = 128
	PlayerSpeed = 12.5
)

type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
)

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

type Player struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
	Facing        Facing

	frames       []assets.ImageID
	currentFrame int
}

// NewPlayer centers the player on a w x h surface.
func NewPlayer(w, h float64, frames []assets.ImageID) *Player {
	return &Player{
		X:      w/2 - PlayerSize/2,
		Y:      h/2 - PlayerSize/2,
		Width:  PlayerSize,
		Height: PlayerSize,
		Speed:  PlayerSpeed,
		Facing: FacingRight,
		frames: frames,
	}
}

// Move steps the player one increment and advances the animation frame.
// The position is not clamped; the player may walk off screen.
func (p *Player) Move(dir Direction) {
	switch dir {
	case DirUp:
		p.Y -= p.Speed
	case DirDown:
		p.Y += p.Speed
	case DirLeft:
		p.X -= p.Speed
		p.Facing = FacingLeft
	case DirRight:
		p.X += p.Speed
		p.Facing = FacingRight
	}

	if len(p.frames) > 0 {
		p.currentFrame = (p.currentFrame + 1) % len(p.frames)
	}
}

func (p *Player) Frame() int {
	return p.currentFrame
}

func (p *Player) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

func (p *Player) Draw(s Surface) {
	if len(p.frames) == 0 {
		return
	}
	img := p.frames[p.currentFrame]

	s.Save()
	if p.Facing == FacingLeft {
		s.Scale(-1, 1)
		s.DrawImage(img, -p.X-p.Width, p.Y, p.Width, p.Height)
	} else {
		s.DrawImage(img, p.X, p.Y, p.Width, p.Height)
	}
	s.Restore()
}
