// Package game runs the sequence memory game on any device.Device.
//
// The loop is single threaded and polls: each iteration samples the
// buttons, debounces them, composes one frame for the current state and
// flushes it. Delay is the only place the loop waits.
package game

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/debounce"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/device"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/font"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

const buttons = 2

type Game struct {
	dev    device.Device
	cfg    Config
	font   *font.Font
	log    *log.Logger
	rng    *rand.Rand
	screen mono.Size
	cursor mono.Point

	state   State
	seq     Sequence
	guess   int // next index of seq the player has to enter
	highest int // longest sequence cleared this game
	first   bool

	scoreBuf [24]byte
}

// New builds a game for dev. The random generator is seeded once from
// dev.Seed. A nil logger discards output.
func New(dev device.Device, cfg Config, logger *log.Logger) *Game {
	cfg.Defaults()
	cfg.Messages = cfg.Messages.fold()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	seed := dev.Seed()
	return &Game{
		dev:    dev,
		cfg:    cfg,
		font:   cfg.Font,
		log:    logger,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		screen: dev.Display().Bounds().Size,
		state:  Menu,
		first:  true,
	}
}

func (g *Game) State() State { return g.state }

// Run plays until drawing or flushing fails and returns that error.
func (g *Game) Run() error {
	var storage [buttons]uint8
	db := debounce.New(storage[:])
	if err := g.clear(); err != nil {
		return err
	}
	for {
		if err := g.step(db); err != nil {
			return err
		}
	}
}

func (g *Game) step(db *debounce.Debouncer) error {
	in := g.dev.SampleInputs()
	b1 := db.Update(0, in.Button1Down) == debounce.Pressed
	b2 := db.Update(1, in.Button2Down) == debounce.Pressed
	if g.cfg.Trace {
		if b1 {
			g.log.Printf("button 1 pressed")
		}
		if b2 {
			g.log.Printf("button 2 pressed")
		}
	}

	if err := g.clear(); err != nil {
		return err
	}

	from := g.state
	var err error
	switch g.state {
	case Menu:
		err = g.menu(in, b1, b2)
	case Displaying:
		err = g.displaying()
	case Inputting:
		err = g.inputting(b1, b2)
	case Next:
		err = g.next()
	case Failure:
		err = g.failure()
	case Score:
		err = g.score(b1 || b2)
	}
	if err != nil {
		return err
	}
	if g.state != from {
		g.log.Printf("state: %s -> %s", from, g.state)
	}
	return g.present()
}

func (g *Game) menu(in device.Inputs, b1, b2 bool) error {
	if err := g.drawText(g.cfg.Messages.Menu); err != nil {
		return err
	}
	// Raw levels on purpose: two debounced edges rarely land on the same sample.
	if in.Both() {
		g.guess = 0
		g.highest = 0
		g.seq.Reset(false, false, true)
		g.first = true
		g.state = Displaying
		return nil
	}
	// Button feedback only; the menu reuses the sequence as scratch space.
	if b1 {
		g.seq.Push(false)
	} else if b2 {
		g.seq.Push(true)
	}
	return g.drawSequence(g.seq.Len())
}

func (g *Game) displaying() error {
	if g.first {
		if err := g.temporary(g.cfg.Messages.Remember, g.cfg.BannerMs); err != nil {
			return err
		}
	}
	if err := g.drawText(g.cfg.Messages.Prompt); err != nil {
		return err
	}
	if err := g.drawSequence(g.seq.Len()); err != nil {
		return err
	}
	if err := g.present(); err != nil {
		return err
	}
	g.dev.Delay(g.cfg.DisplayMs(g.seq.Len()))
	g.state = Inputting
	if g.first {
		return g.temporary(g.cfg.Messages.Repeat, g.cfg.BannerMs)
	}
	return nil
}

func (g *Game) inputting(b1, b2 bool) error {
	if err := g.drawText(g.cfg.Messages.Prompt); err != nil {
		return err
	}
	if b1 {
		g.guessed(false)
	} else if b2 {
		g.guessed(true)
	}
	if err := g.drawSequence(g.guess); err != nil {
		return err
	}
	if g.guess == g.seq.Len() {
		g.state = Next
	}
	return nil
}

func (g *Game) guessed(v bool) {
	if g.seq.At(g.guess) != v {
		g.state = Failure
		return
	}
	g.guess++
}

func (g *Game) next() error {
	if err := g.temporary(g.cfg.Messages.Next, g.cfg.NextMs); err != nil {
		return err
	}
	g.guess = 0
	g.highest = g.seq.Len()
	g.first = false
	if !g.seq.Push(g.rng.IntN(2) == 1) {
		// Nothing longer fits: the run is over.
		g.state = Score
		return nil
	}
	g.state = Displaying
	return nil
}

func (g *Game) failure() error {
	if err := g.temporary(g.cfg.Messages.Failure, g.cfg.FailureBannerMs); err != nil {
		return err
	}
	if err := g.drawText(g.cfg.Messages.Prompt); err != nil {
		return err
	}
	if err := g.drawSequence(g.seq.Len()); err != nil {
		return err
	}
	if err := g.present(); err != nil {
		return err
	}
	g.dev.Delay(g.cfg.ReplayMs)
	g.state = Score
	return nil
}

func (g *Game) score(pressed bool) error {
	if err := g.drawText(g.cfg.Messages.ScorePrefix); err != nil {
		return err
	}
	if err := g.drawBytes(g.appendScore(g.scoreBuf[:0])); err != nil {
		return err
	}
	if err := g.drawText(g.cfg.Messages.ScoreSuffix); err != nil {
		return err
	}
	if pressed {
		g.seq.Clear()
		g.guess = 0
		g.state = Menu
	}
	return nil
}

// ScoreOf is the number of sequences cleared plus the fraction of the
// failed one that was entered correctly.
func ScoreOf(highest, guess, length int) float32 {
	if length <= 0 {
		return float32(highest)
	}
	return float32(highest) + float32(guess)/float32(length)
}

// temporary shows msg alone for ms and leaves a blank frame behind.
func (g *Game) temporary(msg string, ms uint32) error {
	if err := g.clear(); err != nil {
		return err
	}
	if err := g.drawText(msg); err != nil {
		return err
	}
	if err := g.present(); err != nil {
		return err
	}
	g.dev.Delay(ms)
	return g.clear()
}

// present pulses the indicator around a flush.
func (g *Game) present() error {
	g.dev.SetIndicator(true)
	if g.cfg.PulseMs > 0 {
		g.dev.Delay(g.cfg.PulseMs)
	}
	err := g.dev.Flush()
	g.dev.SetIndicator(false)
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func (g *Game) clear() error {
	g.cursor = mono.Point{}
	if err := g.dev.Display().Clear(mono.Off); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}
