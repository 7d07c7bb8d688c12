package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AssetDir     string
	WindowScale  int
	MusicVolume  float64
	EffectVolume float64
	Debug        bool
}

func Default() Config {
	return Config{
		AssetDir:     "assets",
		WindowScale:  1,
		MusicVolume:  0.5,
		EffectVolume: 1.0,
	}
}

// Load reads an optional .env file, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function. Bad values are logged and
// replaced with defaults.
func FromEnv(lookup func(string) (string, bool)) Config {
	cfg := Default()

	if v, ok := lookup("COOKIES_ASSET_DIR"); ok && v != "" {
		cfg.AssetDir = v
	}
	if v, ok := lookup("COOKIES_WINDOW_SCALE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Printf("Invalid COOKIES_WINDOW_SCALE %q, using %d", v, cfg.WindowScale)
		} else {
			cfg.WindowScale = n
		}
	}
	if v, ok := lookup("COOKIES_MUSIC_VOLUME"); ok {
		cfg.MusicVolume = volume("COOKIES_MUSIC_VOLUME", v, cfg.MusicVolume)
	}
	if v, ok := lookup("COOKIES_EFFECT_VOLUME"); ok {
		cfg.EffectVolume = volume("COOKIES_EFFECT_VOLUME", v, cfg.EffectVolume)
	}
	if v, ok := lookup("COOKIES_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("Invalid COOKIES_DEBUG %q, ignoring", v)
		} else {
			cfg.Debug = b
		}
	}
	return cfg
}

func volume(key, v string, def float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		log.Printf("Invalid %s %q, using %.2f", key, v, def)
		return def
	}
	return f
}
