package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/board/desktop"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/board/headless"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/board/terminal"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/config"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/device"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/game"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

type CLIFlags struct {
	ConfigPath string
	Board      string
	Scale      int
	Title      string
	Seed       uint64
	Verbose    bool // log button edges

	// headless
	Frames int
	Script string
	PNGOut string
	Expect string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() (CLIFlags, map[string]bool) {
	var f CLIFlags
	flag.StringVar(&f.ConfigPath, "config", "", "config file (default: user config dir)")
	flag.StringVar(&f.Board, "board", "", "desktop, terminal or headless")
	flag.IntVar(&f.Scale, "scale", 0, "window scale")
	flag.StringVar(&f.Title, "title", "", "window title")
	flag.Uint64Var(&f.Seed, "seed", 0, "random seed (0: from the clock)")
	flag.BoolVar(&f.Verbose, "v", false, "log button edges")

	// headless options
	flag.IntVar(&f.Frames, "frames", 0, "flushes to run in headless mode")
	flag.StringVar(&f.Script, "script", "", `headless inputs, e.g. "both:1,idle:4,b1:3"`)
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set
}

// applyFlags lets explicitly given flags override the config file.
func applyFlags(cfg *config.Config, f CLIFlags, set map[string]bool) {
	if set["board"] {
		cfg.Board = f.Board
	}
	if set["scale"] {
		cfg.Desktop.Scale = f.Scale
	}
	if set["title"] {
		cfg.Desktop.Title = f.Title
	}
	if set["seed"] {
		cfg.Seed = f.Seed
	}
	if set["frames"] {
		cfg.Headless.Frames = f.Frames
	}
	if set["script"] {
		cfg.Headless.Script = f.Script
	}
	if f.Verbose {
		cfg.Trace = true
	}
}

func runHeadless(cfg *config.Config, logger *log.Logger, pngPath, expectCRC string) error {
	script, err := headless.ParseScript(cfg.Headless.Script)
	if err != nil {
		return err
	}
	b := headless.New(headless.Config{
		Width:  cfg.Screen.Width,
		Height: cfg.Screen.Height,
		Seed:   cfg.Seed,
		Frames: cfg.Headless.Frames,
		Script: script,
	})

	start := time.Now()
	g := game.New(b, cfg.Game(), logger)
	if err := g.Run(); !errors.Is(err, headless.ErrScriptDone) {
		return err
	}
	dur := time.Since(start)

	fb := b.Framebuffer()
	crc := fb.CRC32()
	log.Printf("headless: frames=%d state=%s elapsed=%s wall=%s fb_crc32=%08x",
		b.Flushes(), g.State(), b.Elapsed(), dur.Truncate(time.Millisecond), crc)

	if pngPath != "" {
		if err := saveFramePNG(fb, pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", pngPath)
	}

	if expectCRC != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(fb *mono.Framebuffer, path string) error {
	img := fb.RGBA(color.RGBA{0xff, 0xff, 0xff, 0xff}, color.RGBA{0, 0, 0, 0xff})
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func runDesktop(cfg *config.Config, logger *log.Logger) error {
	b, err := desktop.New(desktop.Config{
		Title:   cfg.Desktop.Title,
		Scale:   cfg.Desktop.Scale,
		Width:   cfg.Screen.Width,
		Height:  cfg.Screen.Height,
		Seed:    cfg.Seed,
		Button1: cfg.Desktop.Button1,
		Button2: cfg.Desktop.Button2,
	})
	if err != nil {
		return err
	}
	g := game.New(b, cfg.Game(), logger)
	return b.Run(g.Run)
}

func runTerminal(cfg *config.Config, logger *log.Logger) error {
	b, err := terminal.New(terminal.Config{
		Width:   cfg.Screen.Width,
		Height:  cfg.Screen.Height,
		Seed:    cfg.Seed,
		Button1: []rune(cfg.Terminal.Button1)[0],
		Button2: []rune(cfg.Terminal.Button2)[0],
		HoldMs:  cfg.Terminal.HoldMs,
		FrameMs: cfg.Terminal.FrameMs,
	})
	if err != nil {
		return err
	}
	defer b.Close()
	if err := game.New(b, cfg.Game(), logger).Run(); !errors.Is(err, device.ErrQuit) {
		return err
	}
	return nil
}

func main() {
	f, set := parseFlags()
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	applyFlags(cfg, f, set)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cfg.Board == config.BoardTerminal {
		// The terminal belongs to the game; keep the log out of it.
		logger.SetOutput(io.Discard)
	}
	log.Printf("board=%s screen=%dx%d seed=%d", cfg.Board, cfg.Screen.Width, cfg.Screen.Height, cfg.Seed)

	switch cfg.Board {
	case config.BoardHeadless:
		err = runHeadless(cfg, logger, f.PNGOut, f.Expect)
	case config.BoardTerminal:
		err = runTerminal(cfg, logger)
	default:
		err = runDesktop(cfg, logger)
	}
	if err != nil {
		log.Fatal(err)
	}
}
