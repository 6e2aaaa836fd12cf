// Package device defines what the game engine needs from a board.
package device

import (
	"errors"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

// ErrQuit is returned by Flush when the user asked the board to stop.
var ErrQuit = errors.New("device: quit requested")

// Inputs is one sample of the two push-buttons.
type Inputs struct {
	Button1Down bool
	Button2Down bool
}

func (in Inputs) Both() bool { return in.Button1Down && in.Button2Down }
func (in Inputs) Any() bool  { return in.Button1Down || in.Button2Down }

// Device is the capability boundary between the engine and a board. A board
// composes its own pins, bus and display controller behind it.
type Device interface {
	// SampleInputs reads the raw button levels. Read errors are the
	// board's business; a failed read reports the buttons as released.
	SampleInputs() Inputs
	// SetIndicator drives the status LED.
	SetIndicator(on bool)
	// Delay blocks for ms milliseconds.
	Delay(ms uint32)
	// Seed returns one value of entropy. Called once at engine start.
	Seed() uint64
	// Display is the surface the engine composes frames on.
	Display() mono.Surface
	// Flush pushes the composed frame to the physical display.
	Flush() error
}
