package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG format (background)
	_ "image/png"  // Register PNG format (sprites)
	"io/fs"
	"log"

	"golang.org/x/sync/errgroup"
)

// ImageID names one of the fixed image slots the game needs.
type ImageID int

const (
	PlayerFrame0 ImageID = iota
	PlayerFrame1
	Cookie0
	Cookie1
	Cookie2
	Background
)

// Sound files. These are optional; the game runs silent without them.
const (
	EffectSound = "nom.mp3"
	MusicTrack  = "music.mp3"
)

var (
	PlayerFrames = []ImageID{PlayerFrame0, PlayerFrame1}
	CookieImages = []ImageID{Cookie0, Cookie1, Cookie2}

	// Required is every image the game needs before the title can show.
	Required = []ImageID{PlayerFrame0, PlayerFrame1, Cookie0, Cookie1, Cookie2, Background}
)

var ErrUnknownImage = errors.New("unknown image")

// Manifest maps every required image to its file name.
type Manifest map[ImageID]string

// DefaultManifest is the file layout shipped in the assets directory.
func DefaultManifest() Manifest {
	return Manifest{
		PlayerFrame0: "1.png",
		PlayerFrame1: "2.png",
		Cookie0:      "4.png",
		Cookie1:      "5.png",
		Cookie2:      "6.png",
		Background:   "bg.jpg",
	}
}

func (m Manifest) Name(id ImageID) (string, error) {
	name, ok := m[id]
	if !ok {
		return "", fmt.Errorf("image %d: %w", int(id), ErrUnknownImage)
	}
	return name, nil
}

// LoadImage reads and decodes a single image file.
func LoadImage(fsys fs.FS, name string) (image.Image, error) {
	fileData, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read image %q: %w", name, err)
	}

	img, _, err := image.Decode(bytes.NewReader(fileData))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}
	return img, nil
}

// Result is the completion notice for one image.
type Result struct {
	ID    ImageID
	Name  string
	Image image.Image
	Err   error
}

// Loader decodes every required image concurrently, looking up file names
// in a manifest.
type Loader struct {
	fsys     fs.FS
	manifest Manifest
	required []ImageID
	limit    int
}

func NewLoader(fsys fs.FS, manifest Manifest) *Loader {
	return &Loader{
		fsys:     fsys,
		manifest: manifest,
		required: Required,
		limit:    4,
	}
}

// Total is the number of images that must load before the game can begin.
func (l *Loader) Total() int {
	return len(l.required)
}

// Start kicks off all loads and returns a channel of results. The channel
// is closed once every load has reported. A failed load never stops the
// others.
func (l *Loader) Start(ctx context.Context) <-chan Result {
	results := make(chan Result, len(l.required))

	var g errgroup.Group
	g.SetLimit(l.limit)

	go func() {
		for _, id := range l.required {
			name, err := l.manifest.Name(id)
			if err != nil {
				results <- Result{ID: id, Err: err}
				continue
			}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					results <- Result{ID: id, Name: name, Err: err}
					return nil
				}
				img, err := LoadImage(l.fsys, name)
				results <- Result{ID: id, Name: name, Image: img, Err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	return results
}

// Tracker counts completed loads and reports when all required images are in.
type Tracker struct {
	total  int
	loaded map[ImageID]bool
	done   bool
}

func NewTracker(total int) *Tracker {
	return &Tracker{
		total:  total,
		loaded: make(map[ImageID]bool, total),
	}
}

// Record accounts for one result. It returns true exactly once: on the
// result that completes the set. Failures are logged and never counted.
func (t *Tracker) Record(r Result) bool {
	if r.Err != nil {
		log.Printf("Failed to load image: %s: %v", r.Name, r.Err)
		return false
	}
	if t.loaded[r.ID] {
		return false
	}
	t.loaded[r.ID] = true

	if !t.done && len(t.loaded) == t.total {
		t.done = true
		return true
	}
	return false
}

// Progress reports loaded and required counts.
func (t *Tracker) Progress() (int, int) {
	return len(t.loaded), t.total
}
