package entity

import (
	"math/rand/v2"

	"cookierush/internal/assets"
)

const CookieSize = 64

type Cookie struct {
	X, Y   float64
	Size   float64
	DX, DY float64
	Sprite assets.ImageID
}

// NewCookies places one cookie per sprite at a random on-screen position
// with a random velocity of 0.5 to 2.5 px per frame on each axis.
func NewCookies(rng *rand.Rand, w, h float64, sprites []assets.ImageID) []*Cookie {
	cookies := make([]*Cookie, 0, len(sprites))
	for _, sprite := range sprites {
		c := &Cookie{
			Size:   CookieSize,
			DX:     randomSpeed(rng),
			DY:     randomSpeed(rng),
			Sprite: sprite,
		}
		c.Respawn(rng, w, h)
		cookies = append(cookies, c)
	}
	return cookies
}

func randomSpeed(rng *rand.Rand) float64 {
	v := (rng.Float64()*4 + 1) / 2
	if rng.Float64() < 0.5 {
		return -v
	}
	return v
}

// Respawn moves the cookie to a uniformly random position that keeps it
// fully on the surface. Velocity is untouched.
func (c *Cookie) Respawn(rng *rand.Rand, w, h float64) {
	c.X = rng.Float64() * (w - c.Size)
	c.Y = rng.Float64() * (h - c.Size)
}

// Advance moves the cookie one frame. An axis whose step would carry the
// box past an edge has its velocity reflected and the box is held at that
// edge. It reports which axes bounced.
func (c *Cookie) Advance(w, h float64) (bounceX, bounceY bool) {
	c.X, c.DX, bounceX = step(c.X, c.DX, c.Size, w)
	c.Y, c.DY, bounceY = step(c.Y, c.DY, c.Size, h)
	return bounceX, bounceY
}

func step(pos, vel, size, limit float64) (float64, float64, bool) {
	next := pos + vel
	switch {
	case next < 0:
		return 0, -vel, true
	case next+size > limit:
		return limit - size, -vel, true
	}
	return next, vel, false
}

func (c *Cookie) Rect() Rect {
	return Rect{X: c.X, Y: c.Y, W: c.Size, H: c.Size}
}

func (c *Cookie) Draw(s Surface) {
	s.DrawImage(c.Sprite, c.X, c.Y, c.Size, c.Size)
}
