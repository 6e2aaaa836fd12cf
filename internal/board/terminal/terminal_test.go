package terminal

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/device"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/game"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

func newSimBoard(t *testing.T) *Board {
	t.Helper()
	b, err := New(Config{Width: 16, Height: 8, Screen: tcell.NewSimulationScreen("UTF-8")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(b.Close)
	return b
}

func TestFlushDrawsHalfBlocks(t *testing.T) {
	b := newSimBoard(t)
	fb := b.Display().(*mono.Framebuffer)
	fb.Set(0, 0, mono.On)
	fb.Set(1, 0, mono.On)
	fb.Set(1, 1, mono.On)
	fb.Set(2, 3, mono.On)
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	for _, tc := range []struct {
		x, y int
		want rune
	}{
		{0, 0, b.cells[2]},
		{1, 0, b.cells[3]},
		{2, 1, b.cells[1]},
		{3, 0, b.cells[0]},
	} {
		if r, _, _, _ := b.screen.GetContent(tc.x, tc.y); r != tc.want {
			t.Fatalf("cell (%d,%d): got %q want %q", tc.x, tc.y, r, tc.want)
		}
	}
	if r, _, _, _ := b.screen.GetContent(2, b.statusRow()); r != 'z' {
		t.Fatalf("status line: got %q", r)
	}
}

func TestKeysHoldForHoldWindow(t *testing.T) {
	b := newSimBoard(t)
	clock := time.Unix(100, 0)
	b.now = func() time.Time { return clock }

	if b.SampleInputs().Any() {
		t.Fatalf("buttons down before any key")
	}
	b.handleKey(tcell.KeyRune, 'z')
	clock = clock.Add(149 * time.Millisecond)
	if in := b.SampleInputs(); !in.Button1Down || in.Button2Down {
		t.Fatalf("inputs: %+v", in)
	}
	clock = clock.Add(time.Millisecond)
	if b.SampleInputs().Any() {
		t.Fatalf("button 1 still held after the hold window")
	}
	b.handleKey(tcell.KeyRune, ' ')
	if !b.SampleInputs().Both() {
		t.Fatalf("space should hold both buttons")
	}
}

func TestEscapeQuits(t *testing.T) {
	b := newSimBoard(t)
	b.handleKey(tcell.KeyEscape, 0)
	if err := b.Flush(); !errors.Is(err, device.ErrQuit) {
		t.Fatalf("Flush: %v", err)
	}
	b.Delay(60_000)
}

func TestStylesFollowProfile(t *testing.T) {
	on, _ := styles(termenv.Ascii)
	if on != tcell.StyleDefault {
		t.Fatalf("ascii profile should not colour pixels")
	}
	if got := tcellColor(termenv.ANSI256Color(33)); got != tcell.PaletteColor(33) {
		t.Fatalf("ansi256: %v", got)
	}
	if got := tcellColor(termenv.RGBColor("#6cd0ff")); got != tcell.NewHexColor(0x6cd0ff) {
		t.Fatalf("rgb: %v", got)
	}
}

// countingBoard counts completed flushes.
type countingBoard struct {
	*Board
	flushes int
}

func (c *countingBoard) Flush() error {
	err := c.Board.Flush()
	if err == nil {
		c.flushes++
	}
	return err
}

func TestIdleGameIsPacedByFrameRate(t *testing.T) {
	b, err := New(Config{Width: 16, Height: 8, FrameMs: 20, Screen: tcell.NewSimulationScreen("UTF-8")})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	dev := &countingBoard{Board: b}
	done := make(chan error, 1)
	go func() { done <- game.New(dev, game.Config{}, nil).Run() }()

	time.Sleep(200 * time.Millisecond)
	b.Close()
	if err := <-done; !errors.Is(err, device.ErrQuit) {
		t.Fatalf("Run: %v", err)
	}
	// 200ms at one frame per 20ms, plus the unthrottled first frame and
	// slack for the sleep overshooting.
	if dev.flushes == 0 || dev.flushes > 13 {
		t.Fatalf("flushes in 200ms idle menu: %d", dev.flushes)
	}
}
