// Package desktop runs the game in an ebiten window. Two keys stand in for
// the push-buttons and a dot under the display for the status LED.
//
// ebiten owns the main goroutine, so the engine runs on its own goroutine
// and hands finished frames over through a mutex-guarded front buffer.
package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/device"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

// statusHeight is the strip under the display holding the LED and key hint.
const statusHeight = 16

type Board struct {
	cfg        Config
	key1, key2 ebiten.Key

	back *mono.Framebuffer // engine goroutine only

	mu        sync.Mutex
	front     *mono.Framebuffer
	published uint64 // generation of front
	in        device.Inputs
	led       bool

	// shown carries the generation each Draw put on screen.
	shown chan uint64

	closed    chan struct{}
	closeOnce sync.Once
	done      chan error
	runErr    error

	tex *ebiten.Image
	pix []byte
}

var _ device.Device = (*Board)(nil)

func New(cfg Config) (*Board, error) {
	cfg.Defaults()
	k1, err := parseKey(cfg.Button1)
	if err != nil {
		return nil, err
	}
	k2, err := parseKey(cfg.Button2)
	if err != nil {
		return nil, err
	}
	return &Board{
		cfg:    cfg,
		key1:   k1,
		key2:   k2,
		back:   mono.NewFramebuffer(cfg.Width, cfg.Height),
		front:  mono.NewFramebuffer(cfg.Width, cfg.Height),
		closed: make(chan struct{}),
		done:   make(chan error, 1),
		shown:  make(chan uint64, 1),
		pix:    make([]byte, 4*cfg.Width*cfg.Height),
	}, nil
}

func parseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("desktop: key %q: %w", name, err)
	}
	return k, nil
}

// Run starts engine on its own goroutine and blocks in the ebiten loop until
// the window is closed or engine fails. Closing the window is not an error.
func (b *Board) Run(engine func() error) error {
	ebiten.SetWindowTitle(b.cfg.Title)
	ebiten.SetWindowSize(b.cfg.Width*b.cfg.Scale, (b.cfg.Height+statusHeight)*b.cfg.Scale)
	go func() { b.done <- engine() }()

	err := ebiten.RunGame(b)
	b.close()
	if err != nil {
		return err
	}
	if b.runErr == nil {
		b.runErr = <-b.done
	}
	if errors.Is(b.runErr, device.ErrQuit) {
		return nil
	}
	return b.runErr
}

func (b *Board) close() { b.closeOnce.Do(func() { close(b.closed) }) }

// Device side. Everything below runs on the engine goroutine.

func (b *Board) SampleInputs() device.Inputs {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.in
}

func (b *Board) SetIndicator(on bool) {
	b.mu.Lock()
	b.led = on
	b.mu.Unlock()
}

// Delay sleeps, returning early once the window has closed.
func (b *Board) Delay(ms uint32) {
	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()
	select {
	case <-t.C:
	case <-b.closed:
	}
}

func (b *Board) Seed() uint64 {
	if b.cfg.Seed != 0 {
		return b.cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

func (b *Board) Display() mono.Surface { return b.back }

// Flush publishes the composed frame and waits until a Draw has put it on
// screen, which paces the engine to the display refresh. It reports
// device.ErrQuit once the window is gone.
func (b *Board) Flush() error {
	select {
	case <-b.closed:
		return device.ErrQuit
	default:
	}
	b.mu.Lock()
	b.front.CopyFrom(b.back)
	b.published++
	gen := b.published
	b.mu.Unlock()
	for {
		select {
		case g := <-b.shown:
			if g >= gen {
				return nil
			}
		case <-b.closed:
			return device.ErrQuit
		}
	}
}

// ebiten side.

func (b *Board) Update() error {
	select {
	case err := <-b.done:
		// The engine stopped on its own; take the window down with it.
		b.runErr = err
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := b.saveScreenshot(); err == nil {
			fmt.Fprintf(os.Stderr, "wrote %s\n", name)
		}
	}
	b.mu.Lock()
	b.in = device.Inputs{
		Button1Down: ebiten.IsKeyPressed(b.key1),
		Button2Down: ebiten.IsKeyPressed(b.key2),
	}
	b.mu.Unlock()
	return nil
}

func (b *Board) Draw(screen *ebiten.Image) {
	w, h := b.cfg.Width, b.cfg.Height
	if b.tex == nil {
		b.tex = ebiten.NewImage(w, h)
	}
	led := b.takeFrame()
	b.tex.WritePixels(b.pix)
	screen.DrawImage(b.tex, nil)

	ledColor := color.RGBA{0x30, 0x10, 0x10, 0xff}
	if led {
		ledColor = color.RGBA{0xff, 0x40, 0x30, 0xff}
	}
	vector.DrawFilledCircle(screen, float32(w-8), float32(h+statusHeight/2), 4, ledColor, true)
	ebitenutil.DebugPrintAt(screen, b.hint(), 2, h)
}

// takeFrame converts the front buffer into pix, reports the LED state and
// tells a waiting Flush which generation is now on screen.
func (b *Board) takeFrame() (led bool) {
	b.mu.Lock()
	b.front.WriteRGBA(b.pix, b.cfg.On, b.cfg.Off)
	led, gen := b.led, b.published
	b.mu.Unlock()
	select {
	case b.shown <- gen:
	default:
		// A stale generation is still queued; replace it.
		select {
		case <-b.shown:
		default:
		}
		select {
		case b.shown <- gen:
		default:
		}
	}
	return led
}

func (b *Board) hint() string {
	return fmt.Sprintf("%s/%s  Esc", b.key1, b.key2)
}

func (b *Board) Layout(outW, outH int) (int, int) {
	return b.cfg.Width, b.cfg.Height + statusHeight
}

func (b *Board) saveScreenshot() (string, error) {
	b.mu.Lock()
	img := b.front.RGBA(b.cfg.On, b.cfg.Off)
	b.mu.Unlock()
	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return name, png.Encode(f, img)
}
