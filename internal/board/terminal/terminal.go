// Package terminal runs the game in a text terminal. Each character cell
// shows two display rows with half-block glyphs; a status line underneath
// carries the LED.
//
// Terminals report key presses and auto-repeats but no releases, so a
// button counts as held until HoldMs passes without a new event for its key.
package terminal

import (
	"image/color"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/device"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

type Config struct {
	Width, Height    int
	Seed             uint64 // 0 seeds from the clock
	Button1, Button2 rune
	HoldMs           int
	FrameMs          int // minimum time between flushes
	// Screen replaces the real terminal, e.g. with a simulation screen.
	Screen tcell.Screen
}

func (c *Config) Defaults() {
	if c.Width <= 0 {
		c.Width = 128
	}
	if c.Height <= 0 {
		c.Height = 64
	}
	if c.Button1 == 0 {
		c.Button1 = 'z'
	}
	if c.Button2 == 0 {
		c.Button2 = 'x'
	}
	if c.HoldMs <= 0 {
		c.HoldMs = 150
	}
	if c.FrameMs <= 0 {
		c.FrameMs = 16
	}
}

// cell glyphs indexed by top<<1 | bottom.
var (
	halfBlocks = [4]rune{' ', '▄', '▀', '█'}
	asciiCells = [4]rune{' ', ',', '\'', '#'}
)

type Board struct {
	cfg    Config
	screen tcell.Screen
	fb     *mono.Framebuffer
	cells  [4]rune
	on     tcell.Style
	status tcell.Style
	now    func() time.Time

	lastFlush time.Time // engine goroutine only

	mu           sync.Mutex
	last1, last2 time.Time

	quit     chan struct{}
	quitOnce sync.Once
	finiOnce sync.Once
}

var _ device.Device = (*Board)(nil)

// New takes over the terminal. Call Close to restore it.
func New(cfg Config) (*Board, error) {
	cfg.Defaults()
	s := cfg.Screen
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	b := &Board{
		cfg:    cfg,
		screen: s,
		fb:     mono.NewFramebuffer(cfg.Width, cfg.Height),
		cells:  pickCells(),
		now:    time.Now,
		quit:   make(chan struct{}),
	}
	b.on, b.status = styles(termenv.ColorProfile())
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	go b.pollEvents()
	return b, nil
}

// pickCells falls back to ASCII where the terminal draws block elements
// double width.
func pickCells() [4]rune {
	for _, r := range halfBlocks {
		if runewidth.RuneWidth(r) != 1 {
			return asciiCells
		}
	}
	return halfBlocks
}

var oledBlue = color.RGBA{0x6c, 0xd0, 0xff, 0xff}

func styles(p termenv.Profile) (on, status tcell.Style) {
	status = tcell.StyleDefault.Reverse(true)
	if p == termenv.Ascii {
		return tcell.StyleDefault, status
	}
	return tcell.StyleDefault.Foreground(tcellColor(p.FromColor(oledBlue))), status
}

func tcellColor(c termenv.Color) tcell.Color {
	switch c := c.(type) {
	case termenv.RGBColor:
		return tcell.GetColor(string(c))
	case termenv.ANSI256Color:
		return tcell.PaletteColor(int(c))
	case termenv.ANSIColor:
		return tcell.PaletteColor(int(c))
	}
	return tcell.ColorDefault
}

func (b *Board) pollEvents() {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			b.handleKey(ev.Key(), ev.Rune())
		case *tcell.EventResize:
			b.screen.Sync()
		}
	}
}

func (b *Board) handleKey(k tcell.Key, r rune) {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		b.quitOnce.Do(func() { close(b.quit) })
		return
	case tcell.KeyRune:
	default:
		return
	}
	now := b.now()
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r {
	case b.cfg.Button1:
		b.last1 = now
	case b.cfg.Button2:
		b.last2 = now
	case ' ':
		b.last1, b.last2 = now, now
	}
}

func (b *Board) SampleInputs() device.Inputs {
	hold := time.Duration(b.cfg.HoldMs) * time.Millisecond
	now := b.now()
	b.mu.Lock()
	defer b.mu.Unlock()
	return device.Inputs{
		Button1Down: !b.last1.IsZero() && now.Sub(b.last1) < hold,
		Button2Down: !b.last2.IsZero() && now.Sub(b.last2) < hold,
	}
}

func (b *Board) SetIndicator(on bool) {
	r := '○'
	if on {
		r = '●'
	}
	b.screen.SetContent(0, b.statusRow(), r, nil, b.status)
	b.screen.Show()
}

func (b *Board) Delay(ms uint32) { b.sleep(time.Duration(ms) * time.Millisecond) }

// sleep waits for d and reports false if Esc cut it short.
func (b *Board) sleep(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-b.quit:
		return false
	}
}

func (b *Board) Seed() uint64 {
	if b.cfg.Seed != 0 {
		return b.cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

func (b *Board) Display() mono.Surface { return b.fb }

// Flush draws the framebuffer, at most once per FrameMs. It reports
// device.ErrQuit after Esc.
func (b *Board) Flush() error {
	select {
	case <-b.quit:
		return device.ErrQuit
	default:
	}
	if !b.lastFlush.IsZero() {
		frame := time.Duration(b.cfg.FrameMs) * time.Millisecond
		if !b.sleep(frame - time.Since(b.lastFlush)) {
			return device.ErrQuit
		}
	}
	b.lastFlush = time.Now()
	size := b.fb.Size()
	for y := 0; y < size.H; y += 2 {
		for x := 0; x < size.W; x++ {
			i := 0
			if b.fb.At(x, y) == mono.On {
				i |= 2
			}
			if b.fb.At(x, y+1) == mono.On {
				i |= 1
			}
			b.screen.SetContent(x, y/2, b.cells[i], nil, b.on)
		}
	}
	b.drawStatus()
	b.screen.Show()
	return nil
}

func (b *Board) statusRow() int { return (b.fb.Size().H + 1) / 2 }

func (b *Board) drawStatus() {
	line := " " + string(b.cfg.Button1) + "/" + string(b.cfg.Button2) + " buttons  space both  esc quit"
	w := b.fb.Size().W
	if pad := w - runewidth.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	x := 1
	for _, r := range line {
		if x >= w {
			break
		}
		b.screen.SetContent(x, b.statusRow(), r, nil, b.status)
		x += runewidth.RuneWidth(r)
	}
}

// Close restores the terminal.
func (b *Board) Close() {
	b.quitOnce.Do(func() { close(b.quit) })
	b.finiOnce.Do(b.screen.Fini)
}
