// Package config loads the seqmem settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/game"
)

// Boards that cmd/seqmem can run the game on.
const (
	BoardDesktop  = "desktop"
	BoardTerminal = "terminal"
	BoardHeadless = "headless"
)

// Config holds the application configuration.
type Config struct {
	Board    string   `yaml:"board"`
	Seed     uint64   `yaml:"seed"` // 0 picks a seed from the clock
	Screen   Screen   `yaml:"screen"`
	Desktop  Desktop  `yaml:"desktop"`
	Terminal Terminal `yaml:"terminal"`
	Headless Headless `yaml:"headless"`
	Timing   Timing   `yaml:"timing"`
	Messages Messages `yaml:"messages"`
	Trace    bool     `yaml:"trace"`
}

type Screen struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Desktop struct {
	Title   string `yaml:"title"`
	Scale   int    `yaml:"scale"`
	Button1 string `yaml:"button1"` // ebiten key name, e.g. "Z"
	Button2 string `yaml:"button2"`
}

type Terminal struct {
	Button1 string `yaml:"button1"` // single character
	Button2 string `yaml:"button2"`
	HoldMs  int    `yaml:"hold_ms"`
	FrameMs int    `yaml:"frame_ms"`
}

type Headless struct {
	Frames int    `yaml:"frames"`
	Script string `yaml:"script"`
}

type Timing struct {
	DisplayBaseMs    uint32 `yaml:"display_base_ms"`
	DisplayStepMs    uint32 `yaml:"display_step_ms"`
	DisplayThreshold int    `yaml:"display_threshold"`
	BannerMs         uint32 `yaml:"banner_ms"`
	NextMs           uint32 `yaml:"next_ms"`
	FailureBannerMs  uint32 `yaml:"failure_banner_ms"`
	ReplayMs         uint32 `yaml:"replay_ms"`
	PulseMs          uint32 `yaml:"pulse_ms"`
}

type Messages struct {
	Menu        string `yaml:"menu"`
	Remember    string `yaml:"remember"`
	Repeat      string `yaml:"repeat"`
	Next        string `yaml:"next"`
	Failure     string `yaml:"failure"`
	Prompt      string `yaml:"prompt"`
	ScorePrefix string `yaml:"score_prefix"`
	ScoreSuffix string `yaml:"score_suffix"`
}

// Default returns the stock configuration.
func Default() *Config {
	var g game.Config
	g.Defaults()
	return &Config{
		Board:    BoardDesktop,
		Screen:   Screen{Width: 128, Height: 64},
		Desktop:  Desktop{Title: "Sequence Memory", Scale: 4, Button1: "Z", Button2: "X"},
		Terminal: Terminal{Button1: "z", Button2: "x", HoldMs: 150, FrameMs: 16},
		Headless: Headless{Frames: 600},
		Timing: Timing{
			DisplayBaseMs:    g.DisplayBaseMs,
			DisplayStepMs:    g.DisplayStepMs,
			DisplayThreshold: g.DisplayThreshold,
			BannerMs:         g.BannerMs,
			NextMs:           g.NextMs,
			FailureBannerMs:  g.FailureBannerMs,
			ReplayMs:         g.ReplayMs,
			PulseMs:          g.PulseMs,
		},
		Messages: Messages(g.Messages),
	}
}

// Path returns where the config file lives when no path is given.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "seqmem", "config.yaml")
}

// Load overlays the YAML file at path on the defaults. An empty path means
// Path(); a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no board can run with.
func (c *Config) Validate() error {
	switch c.Board {
	case BoardDesktop, BoardTerminal, BoardHeadless:
	default:
		return fmt.Errorf("unknown board %q", c.Board)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("bad screen size %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if len([]rune(c.Terminal.Button1)) != 1 || len([]rune(c.Terminal.Button2)) != 1 {
		return fmt.Errorf("terminal buttons must be single characters")
	}
	return nil
}

// Game returns the engine settings. Zero values fall back to the engine
// defaults.
func (c *Config) Game() game.Config {
	t := c.Timing
	return game.Config{
		DisplayBaseMs:    t.DisplayBaseMs,
		DisplayStepMs:    t.DisplayStepMs,
		DisplayThreshold: t.DisplayThreshold,
		BannerMs:         t.BannerMs,
		NextMs:           t.NextMs,
		FailureBannerMs:  t.FailureBannerMs,
		ReplayMs:         t.ReplayMs,
		PulseMs:          t.PulseMs,
		Messages:         game.Messages(c.Messages),
		Trace:            c.Trace,
	}
}
