package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"cookierush/internal/config"
	"cookierush/internal/gamemode"
)

const WindowTitle = "Cookie Rush"

func main() {
	cfg := config.Load()

	// 1. Window Setup
	ebiten.SetWindowSize(gamemode.ScreenWidth*cfg.WindowScale, gamemode.ScreenHeight*cfg.WindowScale)
	ebiten.SetWindowTitle(WindowTitle)

	// 2. Initialize Game
	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Run Loop
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
