// Package progmem models read-only asset memory such as microcontroller
// flash, where assets are fetched in explicit reads rather than addressed
// directly.
package progmem

import (
	"errors"
	"io"
)

var errNegativeOffset = errors.New("progmem: negative offset")

// ROM is an immutable, byte-addressed blob.
type ROM struct {
	data []byte

	reads     int
	bytesRead int
}

// New wraps data without copying; callers must not modify it afterwards.
func New(data []byte) *ROM {
	return &ROM{data: data}
}

func (r *ROM) Len() int { return len(r.data) }

// ReadAt implements io.ReaderAt.
func (r *ROM) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errNegativeOffset
	}
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	r.reads++
	r.bytesRead += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Stats reports how many reads were issued and how many bytes they returned.
func (r *ROM) Stats() (reads, bytes int) { return r.reads, r.bytesRead }

func (r *ROM) ResetStats() { r.reads, r.bytesRead = 0, 0 }
