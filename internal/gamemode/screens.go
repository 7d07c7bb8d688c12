package gamemode

import (
	"fmt"

	"cookierush/internal/assets"
	"cookierush/internal/entity"
)

// Draw renders the scene for the current state.
func (c *Controller) Draw(s entity.Surface) {
	switch c.session.State {
	case StateLoading:
		c.drawLoading(s)
	case StateTitle:
		DrawInstructions(s)
	case StatePlaying:
		c.drawPlaying(s)
	case StateGameOver:
		c.drawGameOver(s)
	}
}

func drawBackground(s entity.Surface) {
	s.Clear()
	s.DrawImage(assets.Background, 0, 0, ScreenWidth, ScreenHeight)
}

// DrawInstructions renders the title screen. It has no side effects.
func DrawInstructions(s entity.Surface) {
	drawBackground(s)

	cx, cy := float64(ScreenWidth/2), float64(ScreenHeight/2)
	s.FillText("Use the arrow keys on your keyboard", cx, cy-40, 24, entity.AlignCenter)
	s.FillText("to eat as many cookies as you can in 60 seconds!", cx, cy, 24, entity.AlignCenter)
	s.FillText("Press Spacebar to Start", cx, cy+40, 24, entity.AlignCenter)
}

func (c *Controller) drawPlaying(s entity.Surface) {
	drawBackground(s)

	c.player.Draw(s)
	for _, ck := range c.cookies {
		ck.Draw(s)
	}

	s.FillText(fmt.Sprintf("Score: %d", c.session.Score), 10, 20, 20, entity.AlignLeft)
	s.FillText(fmt.Sprintf("Time: %ds", c.session.TimeRemaining), ScreenWidth-10, 20, 20, entity.AlignRight)
}

func (c *Controller) drawGameOver(s entity.Surface) {
	drawBackground(s)

	cx, cy := float64(ScreenWidth/2), float64(ScreenHeight/2)
	s.FillText("Game Over!", cx, cy-50, 48, entity.AlignCenter)
	s.FillText(fmt.Sprintf("Your Score: %d", c.session.Score), cx, cy, 48, entity.AlignCenter)
	s.FillText("Press Spacebar to Restart", cx, cy+50, 24, entity.AlignCenter)
}

// drawLoading shows a thin progress bar. A stalled load just leaves it short.
func (c *Controller) drawLoading(s entity.Surface) {
	s.Clear()
	loaded, total := c.tracker.Progress()
	if total == 0 {
		return
	}
	const barWidth, barHeight = 200, 4
	x := float64(ScreenWidth-barWidth) / 2
	y := float64(ScreenHeight-barHeight) / 2
	s.FillRect(x, y, barWidth*float64(loaded)/float64(total), barHeight)
}
