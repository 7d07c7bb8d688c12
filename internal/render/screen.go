package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"cookierush/internal/assets"
	"cookierush/internal/entity"
)

var (
	ColText = color.Black
	ColBar  = color.RGBA{0xd2, 0x8c, 0x45, 0xff} // Cookie brown
)

// Screen draws onto an ebiten image with a canvas-like transform stack.
type Screen struct {
	target *ebiten.Image
	images map[assets.ImageID]*ebiten.Image

	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace

	geom  ebiten.GeoM
	stack []ebiten.GeoM
}

func NewScreen() (*Screen, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Screen{
		images: make(map[assets.ImageID]*ebiten.Image),
		source: source,
		faces:  make(map[float64]*text.GoTextFace),
	}, nil
}

// AddImage uploads a decoded image into VRAM. Call from the game goroutine.
func (s *Screen) AddImage(id assets.ImageID, img image.Image) {
	s.images[id] = ebiten.NewImageFromImage(img)
}

// Begin points the screen at this frame's target and resets the transform.
func (s *Screen) Begin(target *ebiten.Image) {
	s.target = target
	s.geom.Reset()
	s.stack = s.stack[:0]
}

func (s *Screen) Clear() {
	s.target.Clear()
}

func (s *Screen) DrawImage(id assets.ImageID, x, y, w, h float64) {
	img, ok := s.images[id]
	if !ok {
		return
	}
	b := img.Bounds()

	op := &ebiten.DrawImageOptions{}
	op.GeoM = s.place(x, y, w/float64(b.Dx()), h/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(img, op)
}

// place maps source pixels, scaled by (sx, sy), to (x, y) under the current
// transform.
func (s *Screen) place(x, y, sx, sy float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(sx, sy)
	g.Translate(x, y)
	g.Concat(s.geom)
	return g
}

func (s *Screen) FillText(str string, x, y, size float64, align entity.Align) {
	face := s.face(size)

	op := &text.DrawOptions{}
	// Text is placed by its baseline, not its top edge.
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.GeoM.Concat(s.geom)
	op.ColorScale.ScaleWithColor(ColText)
	switch align {
	case entity.AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case entity.AlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	text.Draw(s.target, str, face, op)
}

func (s *Screen) FillRect(x, y, w, h float64) {
	vector.DrawFilledRect(s.target, float32(x), float32(y), float32(w), float32(h), ColBar, false)
}

func (s *Screen) Save() {
	s.stack = append(s.stack, s.geom)
}

func (s *Screen) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.geom = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Scale applies before the current transform, so later draws are scaled in
// their own coordinates.
func (s *Screen) Scale(sx, sy float64) {
	var g ebiten.GeoM
	g.Scale(sx, sy)
	g.Concat(s.geom)
	s.geom = g
}

func (s *Screen) face(size float64) *text.GoTextFace {
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: s.source, Size: size}
	s.faces[size] = f
	return f
}
