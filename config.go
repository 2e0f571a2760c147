package rancher

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is read from a toml file, usually rancher.toml next to the program.
type Config struct {
	Window    WindowConfig `toml:"window"`
	Backend   string       `toml:"backend"` // "gio" or "term"
	SheetPath string       `toml:"sheet"`
	FontDirs  []string     `toml:"font_dirs"`
	Log       LogConfig    `toml:"log"`
	Frame     FrameConfig  `toml:"frame"`
	Input     InputConfig  `toml:"input"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	File        string `toml:"file"` // empty means stderr
}

type FrameConfig struct {
	FPS int `toml:"fps"`
}

type InputConfig struct {
	BlinkMS int `toml:"blink_ms"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "rancher",
			Width:  640,
			Height: 480,
		},
		Backend: "gio",
		Log: LogConfig{
			Level: "info",
		},
		Frame: FrameConfig{FPS: 60},
		Input: InputConfig{BlinkMS: 600},
	}
}

// FrameInterval is the pacing interval for the frame driver.
func (c Config) FrameInterval() time.Duration {
	fps := c.Frame.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

func (c Config) BlinkInterval() time.Duration {
	if c.Input.BlinkMS <= 0 {
		return 600 * time.Millisecond
	}
	return time.Duration(c.Input.BlinkMS) * time.Millisecond
}

// ParseConfig overlays the toml data on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	switch cfg.Backend {
	case "gio", "term":
	default:
		return cfg, fmt.Errorf("parse config: unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}
