// Command fontsheet dumps the built-in font sheet and renders sample text
// through the glyph pipeline, reporting how many asset reads it took.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/muesli/ansi"
	"github.com/muesli/termenv"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/font"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/progmem"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
)

func writePNG(fb *mono.Framebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, fb.RGBA(white, black)); err != nil {
		return fmt.Errorf("write PNG: %w", err)
	}
	return nil
}

func renderSheet(f *font.Font) (*mono.Framebuffer, error) {
	size := f.Image.Size()
	fb := mono.NewFramebuffer(size.W, size.H)
	if err := f.Image.Draw(fb, mono.Point{}); err != nil {
		return nil, err
	}
	return fb, nil
}

// renderText lays text out left to right, wrapping at newlines and at the
// right edge.
func renderText(f *font.Font, text string, w, h int) (*mono.Framebuffer, error) {
	fb := mono.NewFramebuffer(w, h)
	var at mono.Point
	for _, r := range font.Fold(text) {
		if r == '\n' || (at.X > 0 && at.X+f.CharacterSize.W > w) {
			at = mono.Pt(0, at.Y+f.LineHeight())
			if r == '\n' {
				continue
			}
		}
		if err := f.Glyph(r).Draw(fb, at); err != nil {
			return nil, err
		}
		at.X += f.Advance()
	}
	return fb, nil
}

var previewCells = [4]string{" ", "▄", "▀", "█"}

// preview renders fb as half-block text lines under a caption rule, coloured
// for the terminal profile p. Every line is fb's width in columns.
func preview(fb *mono.Framebuffer, p termenv.Profile, caption string) []string {
	size := fb.Size()
	plain := p == termenv.Ascii
	ink := p.Color("#6cd0ff")
	head := caption
	if !plain {
		head = p.String(caption).Bold().String()
	}
	if pad := size.W - ansi.PrintableRuneWidth(head); pad > 0 {
		head += strings.Repeat("-", pad)
	}
	lines := []string{head}
	for y := 0; y < size.H; y += 2 {
		var sb strings.Builder
		for x := 0; x < size.W; x++ {
			i := 0
			if fb.At(x, y) == mono.On {
				i |= 2
			}
			if fb.At(x, y+1) == mono.On {
				i |= 1
			}
			switch {
			case i == 0:
				sb.WriteByte(' ')
			case plain:
				sb.WriteString(previewCells[i])
			default:
				sb.WriteString(p.String(previewCells[i]).Foreground(ink).String())
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func printPreview(fb *mono.Framebuffer, caption string) {
	for _, l := range preview(fb, termenv.ColorProfile(), caption) {
		fmt.Println(l)
	}
}

func main() {
	out := flag.String("out", "", "write the font sheet to PNG at path")
	text := flag.String("text", "", "text to render")
	textOut := flag.String("textout", "text.png", "PNG path for -text")
	width := flag.Int("width", 128, "text canvas width")
	height := flag.Int("height", 64, "text canvas height")
	show := flag.Bool("preview", false, "also print renders to the terminal")
	flag.Parse()

	f := font.Font6x13
	rom, _ := f.Image.Memory().(*progmem.ROM)
	log.Printf("font: cell=%dx%d advance=%d grid=%dx%d sheet=%dx%d bytes=%d",
		f.CharacterSize.W, f.CharacterSize.H, f.Advance(), f.Columns(), f.Rows(),
		f.Image.Width(), f.Image.Height(), f.Image.Memory().Len())

	if *out != "" {
		if rom != nil {
			rom.ResetStats()
		}
		fb, err := renderSheet(f)
		if err != nil {
			log.Fatalf("render sheet: %v", err)
		}
		if err := writePNG(fb, *out); err != nil {
			log.Fatal(err)
		}
		logReads("sheet", rom)
		log.Printf("wrote %s", *out)
		if *show {
			printPreview(fb, " sheet ")
		}
	}

	if *text != "" {
		if rom != nil {
			rom.ResetStats()
		}
		fb, err := renderText(f, *text, *width, *height)
		if err != nil {
			log.Fatalf("render text: %v", err)
		}
		if err := writePNG(fb, *textOut); err != nil {
			log.Fatal(err)
		}
		logReads("text", rom)
		log.Printf("wrote %s", *textOut)
		if *show {
			printPreview(fb, " text ")
		}
	}
}

func logReads(what string, rom *progmem.ROM) {
	if rom == nil {
		return
	}
	reads, n := rom.Stats()
	log.Printf("%s: %d reads, %d bytes (chunk %d)", what, reads, n, font.ChunkSize)
}
