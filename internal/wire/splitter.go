// Package wire turns an unbounded, arbitrarily chunked byte stream into
// discrete frames delimited by a configurable terminator.
package wire

import (
	"bytes"
	"errors"
)

// ErrNegativeCount is returned when a byte-count terminator below zero is set.
var ErrNegativeCount = errors.New("wire: byte-count terminator must not be negative")

// Terminator marks frame boundaries in the inbound stream. It is one of
// Delim (a byte sequence), Count (a fixed number of bytes), or nil, meaning
// every feed drains the buffer into a single frame.
type Terminator interface {
	terminator()
}

// Delim ends a frame at each occurrence of a byte sequence. An empty Delim
// behaves like a nil terminator.
type Delim []byte

// Count ends the current frame once the given number of bytes has arrived.
// After the frame completes the splitter falls back to Count(0), which
// behaves like a nil terminator until the terminator is reassigned.
type Count int

func (Delim) terminator() {}
func (Count) terminator() {}

// Splitter accumulates stream bytes and extracts complete frames. It performs
// no I/O and is not safe for concurrent use; each connection owns one.
type Splitter struct {
	term Terminator
	buf  []byte
	// interior bytes of the frame in progress, carried across feeds
	partial []byte
}

// NewSplitter builds a splitter with the given initial terminator.
func NewSplitter(term Terminator) (*Splitter, error) {
	s := &Splitter{}
	if err := s.SetTerminator(term); err != nil {
		return nil, err
	}
	return s, nil
}

// SetTerminator replaces the current terminator. The change applies to any
// bytes still buffered, so a terminator swap takes effect mid-stream.
func (s *Splitter) SetTerminator(term Terminator) error {
	if c, ok := term.(Count); ok && c < 0 {
		return ErrNegativeCount
	}
	s.term = term
	return nil
}

// Terminator reports the terminator currently in effect. In Count mode this
// is the remaining byte count of the frame in progress.
func (s *Splitter) Terminator() Terminator {
	return s.term
}

// Feed appends p to the internal buffer and returns the complete frames it
// closed off, in stream order. A frame whose interior is empty (two adjacent
// delimiters) is consumed but never returned. The returned slices do not
// alias p and are owned by the caller.
//
// The loop runs to a fixed point because a single transport read may carry
// several frames, and the terminator may change between them.
func (s *Splitter) Feed(p []byte) [][]byte {
	s.buf = append(s.buf, p...)

	var frames [][]byte
	for len(s.buf) > 0 {
		switch term := s.term.(type) {
		case Count:
			if term <= 0 {
				frames = s.drainAll(frames)
				continue
			}
			n := int(term)
			if len(s.buf) < n {
				// frame spans feeds: keep counting down
				s.collect(s.buf)
				s.term = Count(n - len(s.buf))
				s.buf = s.buf[:0]
				continue
			}
			s.collect(s.buf[:n])
			s.buf = s.buf[n:]
			s.term = Count(0)
			frames = s.complete(frames)
		case Delim:
			if len(term) == 0 {
				frames = s.drainAll(frames)
				continue
			}
			if i := bytes.Index(s.buf, term); i >= 0 {
				if i > 0 {
					s.collect(s.buf[:i])
				}
				s.buf = s.buf[i+len(term):]
				frames = s.complete(frames)
				continue
			}
			// No full match. A buffer suffix that is a strict prefix of the
			// terminator may be completed by the next feed, so it stays.
			if k := prefixAtEnd(s.buf, term); k > 0 {
				if k < len(s.buf) {
					s.collect(s.buf[:len(s.buf)-k])
					s.buf = s.buf[len(s.buf)-k:]
				}
				return frames
			}
			s.collect(s.buf)
			s.buf = s.buf[:0]
		default:
			frames = s.drainAll(frames)
		}
	}
	return frames
}

// collect appends interior bytes to the frame in progress.
func (s *Splitter) collect(b []byte) {
	s.partial = append(s.partial, b...)
}

// complete closes the frame in progress, suppressing empty interiors.
func (s *Splitter) complete(frames [][]byte) [][]byte {
	if len(s.partial) > 0 {
		frames = append(frames, s.partial)
		s.partial = nil
	}
	return frames
}

// drainAll emits everything buffered as one frame (terminator-less mode).
func (s *Splitter) drainAll(frames [][]byte) [][]byte {
	s.collect(s.buf)
	s.buf = s.buf[:0]
	return s.complete(frames)
}

// prefixAtEnd reports the length of the longest buf suffix that is a strict
// prefix of term, 0 if none.
func prefixAtEnd(buf, term []byte) int {
	for n := len(term) - 1; n > 0; n-- {
		if bytes.HasSuffix(buf, term[:n]) {
			return n
		}
	}
	return 0
}
