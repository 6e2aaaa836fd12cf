// Package debounce filters mechanical switch bounce out of sampled
// digital inputs.
//
// Each channel keeps an 8-bit history of raw samples. A transition is only
// reported once the two oldest tracked samples and the three newest agree on
// opposite levels; the three bits in between are ignored, so a bounce in the
// middle of a run does not produce an event.
package debounce

// Result classifies one sample of a channel.
type Result uint8

const (
	NoChange Result = iota
	Pressed
	Released
)

func (r Result) String() string {
	switch r {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "no change"
	}
}

const (
	mask         uint8 = 0b11000111
	risingEdge   uint8 = 0b00000111
	fallingEdge  uint8 = 0b11000000
	confirmedOn  uint8 = 0xFF
	confirmedOff uint8 = 0x00
)

// Debouncer tracks one shift register per channel. The storage is owned by
// the caller and only borrowed for the debouncer's lifetime.
type Debouncer struct {
	patterns []uint8
}

func New(patterns []uint8) *Debouncer {
	return &Debouncer{patterns: patterns}
}

// Channels returns the number of channels backed by the borrowed storage.
func (d *Debouncer) Channels() int { return len(d.patterns) }

// Update shifts a raw sample into channel ch and reports a confirmed edge.
// ch must be in [0, Channels()).
func (d *Debouncer) Update(ch int, pressed bool) Result {
	var next uint8
	if pressed {
		next = 1
	}
	p := d.patterns[ch]<<1 | next
	d.patterns[ch] = p

	switch p & mask {
	case risingEdge:
		d.patterns[ch] = confirmedOn
		return Pressed
	case fallingEdge:
		d.patterns[ch] = confirmedOff
		return Released
	}
	return NoChange
}
