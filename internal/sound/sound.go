package sound

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

const SampleRate = 44100

func decode(ctx *audio.Context, fsys fs.FS, name string) (*mp3.Stream, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read sound %q: %w", name, err)
	}
	stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode sound %q: %w", name, err)
	}
	return stream, nil
}

// Music is a looping background track.
type Music struct {
	player *audio.Player
}

func LoadMusic(ctx *audio.Context, fsys fs.FS, name string, volume float64) (*Music, error) {
	stream, err := decode(ctx, fsys, name)
	if err != nil {
		return nil, err
	}
	loop := audio.NewInfiniteLoop(stream, stream.Length())
	player, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("music player: %w", err)
	}
	player.SetVolume(volume)
	return &Music{player: player}, nil
}

func (m *Music) Play()  { m.player.Play() }
func (m *Music) Pause() { m.player.Pause() }

func (m *Music) Rewind() {
	if err := m.player.Rewind(); err != nil {
		log.Println("Error rewinding music:", err)
	}
}

// Effect is a short clip. Each Trigger starts a fresh player, so rapid
// triggers overlap instead of cutting each other off.
type Effect struct {
	ctx    *audio.Context
	pcm    []byte
	volume float64
}

func LoadEffect(ctx *audio.Context, fsys fs.FS, name string, volume float64) (*Effect, error) {
	stream, err := decode(ctx, fsys, name)
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read sound %q: %w", name, err)
	}
	return &Effect{ctx: ctx, pcm: pcm, volume: volume}, nil
}

func (e *Effect) Trigger() {
	p := e.ctx.NewPlayerFromBytes(e.pcm)
	p.SetVolume(e.volume)
	p.Play()
}

// Silent stands in for a sound that failed to load.
type Silent struct{}

func (Silent) Play()    {}
func (Silent) Pause()   {}
func (Silent) Rewind()  {}
func (Silent) Trigger() {}
