package game

// MaxSequence bounds the length of a round.
const MaxSequence = 4096

// Sequence is a fixed-capacity list of button choices: false is button 1,
// true is button 2.
type Sequence struct {
	buf [MaxSequence]bool
	n   int
}

func (s *Sequence) Len() int { return s.n }

// At returns element i. Indexing past Len panics.
func (s *Sequence) At(i int) bool { return s.buf[:s.n][i] }

// Push appends v and reports false if the sequence is full.
func (s *Sequence) Push(v bool) bool {
	if s.n == len(s.buf) {
		return false
	}
	s.buf[s.n] = v
	s.n++
	return true
}

func (s *Sequence) Clear() { s.n = 0 }

// Reset replaces the contents with vals.
func (s *Sequence) Reset(vals ...bool) {
	s.Clear()
	for _, v := range vals {
		s.Push(v)
	}
}
