package entity

import "cookierush/internal/assets"

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is the 2D drawing target. Coordinates are logical units, text y
// is the baseline, and Scale applies to everything drawn until the matching
// Restore.
type Surface interface {
	Clear()
	DrawImage(id assets.ImageID, x, y, w, h float64)
	FillText(s string, x, y, size float64, align Align)
	FillRect(x, y, w, h float64)
	Save()
	Restore()
	Scale(sx, sy float64)
}
