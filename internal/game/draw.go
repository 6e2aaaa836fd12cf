package game

import (
	"fmt"
	"strconv"

	"github.com/FabianRolfMatthiasNoll/SequenceMemory/internal/mono"
)

// Block layout, in pixels.
const (
	BlockGroupSpacing = 2 // extra gap before every third block
	BlockLineHeight   = 2 // height of a button 1 block
	BlockSpace        = 2
	blockGroup        = 3
)

func (g *Game) newline() {
	g.cursor.X = 0
	g.cursor.Y += g.font.LineHeight()
}

func (g *Game) drawText(s string) error {
	for _, r := range s {
		if err := g.drawChar(r); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) drawBytes(b []byte) error {
	for _, c := range b {
		if err := g.drawChar(rune(c)); err != nil {
			return err
		}
	}
	return nil
}

// drawChar draws r at the cursor and advances it, wrapping at '\n' and at
// the right edge of the screen.
func (g *Game) drawChar(r rune) error {
	switch r {
	case '\n':
		g.newline()
		return nil
	case '\r':
		return nil
	}
	if g.cursor.X > 0 && g.cursor.X+g.font.CharacterSize.W > g.screen.W {
		g.newline()
	}
	if err := g.font.Glyph(r).Draw(g.dev.Display(), g.cursor); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	g.cursor.X += g.font.Advance()
	return nil
}

// drawSequence draws the first n elements of the sequence as blocks.
func (g *Game) drawSequence(n int) error {
	for i := 0; i < n; i++ {
		if i%blockGroup == 0 {
			g.cursor.X += BlockGroupSpacing
		}
		if err := g.drawBlock(g.seq.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// drawBlock draws a tall block for button 2 and a short bar sitting just
// above the bottom of the cell for button 1.
func (g *Game) drawBlock(v bool) error {
	cw, ch := g.font.CharacterSize.W, g.font.CharacterSize.H
	if g.cursor.X > g.screen.W-cw {
		g.newline()
	}
	area := mono.Rect(g.cursor.X, g.cursor.Y, cw, ch-1)
	if !v {
		area = mono.Rect(g.cursor.X, g.cursor.Y+ch-BlockLineHeight-1, cw, BlockLineHeight)
	}
	if err := g.dev.Display().FillSolid(area, mono.On); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	g.cursor.X += cw + BlockSpace
	return nil
}

func (g *Game) appendScore(b []byte) []byte {
	return strconv.AppendFloat(b, float64(ScoreOf(g.highest, g.guess, g.seq.Len())), 'f', 1, 32)
}
