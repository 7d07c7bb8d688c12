package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"cookierush/internal/assets"
	"cookierush/internal/config"
	"cookierush/internal/gamemode"
	"cookierush/internal/render"
	"cookierush/internal/sound"
)

var keymap = map[ebiten.Key]gamemode.Key{
	ebiten.KeySpace:      gamemode.KeySpace,
	ebiten.KeyArrowUp:    gamemode.KeyUp,
	ebiten.KeyArrowDown:  gamemode.KeyDown,
	ebiten.KeyArrowLeft:  gamemode.KeyLeft,
	ebiten.KeyArrowRight: gamemode.KeyRight,
}

// Arrow keys auto-repeat while held; polled in this order each tick.
var arrowKeys = []ebiten.Key{
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
}

// Game adapts the controller to ebiten. All controller calls happen on the
// Update goroutine.
type Game struct {
	cfg    config.Config
	ctrl   *gamemode.Controller
	screen *render.Screen
	loads  <-chan assets.Result
	keys   []ebiten.Key
}

func NewGame(cfg config.Config) (*Game, error) {
	screen, err := render.NewScreen()
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(cfg.AssetDir)
	loader := assets.NewLoader(fsys, assets.DefaultManifest())

	// Audio Init
	actx := audio.NewContext(sound.SampleRate)
	var music gamemode.Music = sound.Silent{}
	if m, err := sound.LoadMusic(actx, fsys, assets.MusicTrack, cfg.MusicVolume); err != nil {
		log.Println("Failed to load music:", err)
	} else {
		music = m
	}
	var effect gamemode.Effect = sound.Silent{}
	if e, err := sound.LoadEffect(actx, fsys, assets.EffectSound, cfg.EffectVolume); err != nil {
		log.Println("Failed to load sound effect:", err)
	} else {
		effect = e
	}

	g := &Game{
		cfg:    cfg,
		screen: screen,
		ctrl: gamemode.NewController(gamemode.Options{
			Music:      music,
			Effect:     effect,
			AssetTotal: loader.Total(),
		}),
		loads: loader.Start(context.Background()),
	}
	return g, nil
}

// Update: Logic (60 TPS)
func (g *Game) Update() error {
	g.drainLoads()

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		key, ok := keymap[k]
		if !ok {
			key = gamemode.KeyOther
		}
		if key.Repeatable() {
			continue // Sent with the held keys below
		}
		g.ctrl.Dispatch(gamemode.Event{Kind: gamemode.EventKey, Key: key})
	}
	for _, k := range arrowKeys {
		if gamemode.Repeats(inpututil.KeyPressDuration(k)) {
			g.ctrl.Dispatch(gamemode.Event{Kind: gamemode.EventKey, Key: keymap[k]})
		}
	}

	g.ctrl.Dispatch(gamemode.Event{Kind: gamemode.EventFrame})
	g.ctrl.Poll()
	return nil
}

func (g *Game) drainLoads() {
	for g.loads != nil {
		select {
		case r, ok := <-g.loads:
			if !ok {
				g.loads = nil
				return
			}
			if r.Err == nil {
				g.screen.AddImage(r.ID, r.Image)
			}
			g.ctrl.Dispatch(gamemode.Event{Kind: gamemode.EventAsset, Asset: r})
		default:
			return
		}
	}
}

// Draw: Rendering (VSync)
func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Begin(screen)
	g.ctrl.Draw(g.screen)

	if g.cfg.Debug {
		s := g.ctrl.Session()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.2f FPS: %0.2f\nState: %s", ebiten.ActualTPS(), ebiten.ActualFPS(), s.State))
	}
}

// Layout: fixed logical surface, ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gamemode.ScreenWidth, gamemode.ScreenHeight
}
