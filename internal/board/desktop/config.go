package desktop

import "image/color"

// Config contains window and input settings.
type Config struct {
	Title   string // window title
	Scale   int    // integer upscaling factor
	Width   int    // display width in pixels
	Height  int    // display height in pixels
	Seed    uint64 // 0 seeds from the clock
	Button1 string // ebiten key names, e.g. "Z"
	Button2 string
	// Display colours, OLED blue on black by default.
	On, Off color.RGBA
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "Sequence Memory"
	}
	if c.Scale <= 0 {
		c.Scale = 4
	}
	if c.Width <= 0 {
		c.Width = 128
	}
	if c.Height <= 0 {
		c.Height = 64
	}
	if c.Button1 == "" {
		c.Button1 = "Z"
	}
	if c.Button2 == "" {
		c.Button2 = "X"
	}
	if c.On == (color.RGBA{}) {
		c.On = color.RGBA{0x6c, 0xd0, 0xff, 0xff}
	}
	if c.Off == (color.RGBA{}) {
		c.Off = color.RGBA{0x04, 0x08, 0x10, 0xff}
	}
}
