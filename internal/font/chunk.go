package font

import (
	"fmt"
	"io"
)

// ChunkSize is the window of asset memory held in RAM during a blit.
const ChunkSize = 32

// chunkReader serves bytes out of a ChunkSize window of Memory.
//
// Refill policy: whenever a byte outside the loaded window is requested the
// window is reloaded starting at that byte. A window that would run past the
// end of the asset is shifted back so it ends exactly at the last byte.
type chunkReader struct {
	mem   Memory
	buf   [ChunkSize]byte
	start int
	n     int
}

func (c *chunkReader) byteAt(off int) (byte, error) {
	if off < c.start || off >= c.start+c.n {
		if err := c.load(off); err != nil {
			return 0, err
		}
	}
	return c.buf[off-c.start], nil
}

func (c *chunkReader) load(off int) error {
	if c.mem == nil {
		return fmt.Errorf("font: read at %d with no asset memory", off)
	}
	size := c.mem.Len()
	if off < 0 || off >= size {
		return fmt.Errorf("font: offset %d outside %d byte asset", off, size)
	}
	start := off
	if start > size-ChunkSize {
		start = size - ChunkSize
	}
	if start < 0 {
		start = 0
	}
	n := min(ChunkSize, size-start)
	got, err := c.mem.ReadAt(c.buf[:n], int64(start))
	if got < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("font: load chunk at %d: %w", start, err)
	}
	c.start, c.n = start, n
	return nil
}
