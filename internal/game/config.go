package game

import "github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/font"

// Config holds the engine's tuning constants. Durations are milliseconds.
type Config struct {
	DisplayBaseMs    uint32 // time to memorise a short sequence
	DisplayStepMs    uint32 // extra time per element past DisplayThreshold
	DisplayThreshold int
	BannerMs         uint32 // one-time "Remember!"/"Repeat!" banners
	NextMs           uint32
	FailureBannerMs  uint32
	ReplayMs         uint32 // how long the correct sequence is shown after a miss
	PulseMs          uint32 // indicator on-time around each flush, 0 for none

	Messages Messages
	Font     *font.Font // nil selects font.Font6x13
	Trace    bool       // log confirmed button edges
}

// Messages are the texts shown on screen.
type Messages struct {
	Menu        string
	Remember    string
	Repeat      string
	Next        string
	Failure     string
	Prompt      string
	ScorePrefix string
	ScoreSuffix string
}

// Defaults fills missing fields with the stock tuning.
func (c *Config) Defaults() {
	if c.DisplayBaseMs == 0 {
		c.DisplayBaseMs = 2000
	}
	if c.DisplayStepMs == 0 {
		c.DisplayStepMs = 200
	}
	if c.DisplayThreshold <= 0 {
		c.DisplayThreshold = 6
	}
	if c.BannerMs == 0 {
		c.BannerMs = 1000
	}
	if c.NextMs == 0 {
		c.NextMs = 400
	}
	if c.FailureBannerMs == 0 {
		c.FailureBannerMs = 200
	}
	if c.ReplayMs == 0 {
		c.ReplayMs = 2000
	}
	if c.Font == nil {
		c.Font = font.Font6x13
	}
	c.Messages.defaults()
}

func (m *Messages) defaults() {
	set := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}
	set(&m.Menu, "Sequence memory!\nTry the buttons.\nPush both buttons\nto start.")
	set(&m.Remember, "Remember!")
	set(&m.Repeat, "Repeat!")
	set(&m.Next, "Good! Next:")
	set(&m.Failure, "No!")
	set(&m.Prompt, ": ")
	set(&m.ScorePrefix, "You cleared ")
	set(&m.ScoreSuffix, "\nsequences!")
}

// fold maps every message onto the characters an ASCII sheet can draw.
func (m Messages) fold() Messages {
	for _, s := range []*string{&m.Menu, &m.Remember, &m.Repeat, &m.Next, &m.Failure, &m.Prompt, &m.ScorePrefix, &m.ScoreSuffix} {
		*s = font.Fold(*s)
	}
	return m
}

// DisplayMs is how long a sequence of n elements stays on screen.
func (c Config) DisplayMs(n int) uint32 {
	if n > c.DisplayThreshold {
		return c.DisplayBaseMs + c.DisplayStepMs*uint32(n-c.DisplayThreshold)
	}
	return c.DisplayBaseMs
}
