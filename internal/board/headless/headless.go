// Package headless is a board without a screen or buttons: inputs come from
// a script and time is virtual. It backs CI runs and golden-frame checks.
package headless

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/device"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

// ErrScriptDone is returned by Flush once the run is over.
var ErrScriptDone = errors.New("headless: script done")

type Config struct {
	Width, Height int
	Seed          uint64
	// Frames stops the run after that many flushes. Zero runs until the
	// script is used up.
	Frames int
	Script []device.Inputs
}

func (c *Config) Defaults() {
	if c.Width <= 0 {
		c.Width = 128
	}
	if c.Height <= 0 {
		c.Height = 64
	}
}

type Board struct {
	cfg     Config
	fb      *mono.Framebuffer
	pos     int
	elapsed time.Duration
	flushes int
	pulses  int
	led     bool
}

var _ device.Device = (*Board)(nil)

func New(cfg Config) *Board {
	cfg.Defaults()
	return &Board{cfg: cfg, fb: mono.NewFramebuffer(cfg.Width, cfg.Height)}
}

// SampleInputs returns the next scripted sample, or idle once the script
// is exhausted.
func (b *Board) SampleInputs() device.Inputs {
	if b.pos >= len(b.cfg.Script) {
		return device.Inputs{}
	}
	in := b.cfg.Script[b.pos]
	b.pos++
	return in
}

func (b *Board) SetIndicator(on bool) {
	if on && !b.led {
		b.pulses++
	}
	b.led = on
}

func (b *Board) Delay(ms uint32) { b.elapsed += time.Duration(ms) * time.Millisecond }

func (b *Board) Seed() uint64 { return b.cfg.Seed }

func (b *Board) Display() mono.Surface { return b.fb }

func (b *Board) Flush() error {
	b.flushes++
	if b.cfg.Frames > 0 && b.flushes >= b.cfg.Frames {
		return ErrScriptDone
	}
	if b.cfg.Frames == 0 && b.pos >= len(b.cfg.Script) {
		return ErrScriptDone
	}
	return nil
}

// Framebuffer is the frame composed for the last flush.
func (b *Board) Framebuffer() *mono.Framebuffer { return b.fb }

// Elapsed is the virtual time spent in Delay.
func (b *Board) Elapsed() time.Duration { return b.elapsed }

func (b *Board) Flushes() int    { return b.flushes }
func (b *Board) Pulses() int     { return b.pulses }
func (b *Board) Indicator() bool { return b.led }

// ParseScript turns "both:1,idle:4,b1:3" into one Inputs per sample. Each
// step names the buttons held (b1, b2, both or idle) and for how many
// samples; the count defaults to 1.
func ParseScript(s string) ([]device.Inputs, error) {
	var out []device.Inputs
	for _, step := range strings.Split(s, ",") {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		name, count, hasCount := strings.Cut(step, ":")
		n := 1
		if hasCount {
			v, err := strconv.Atoi(count)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("script step %q: bad count", step)
			}
			n = v
		}
		var in device.Inputs
		switch strings.ToLower(name) {
		case "idle":
		case "b1":
			in.Button1Down = true
		case "b2":
			in.Button2Down = true
		case "both":
			in = device.Inputs{Button1Down: true, Button2Down: true}
		default:
			return nil, fmt.Errorf("script step %q: unknown input %q", step, name)
		}
		for i := 0; i < n; i++ {
			out = append(out, in)
		}
	}
	return out, nil
}
