// Package window presents a [start, end) byte slice of a shared document
// resource as an independently positioned, read-only stream. Many windows
// may be open over the same resource at once; each read borrows the
// shared cursor with a save, seek, read, restore sequence so that no
// window ever perturbs the position another window observes.
package window

import (
	"errors"
	"fmt"
	"io"

	"github.com/zostay/go-partstream/registry"
)

// Stream is a bounded view into a shared document resource. It keeps its
// own position, local to the window, and never reads outside the locator
// range it was opened with. The shared resource is borrowed, not owned:
// every completed operation leaves the resource's global cursor exactly
// as it found it.
type Stream struct {
	loc    Locator
	res    *registry.Resource
	pos    uint64
	srcEOF bool
}

// Open resolves the locator against the registry and returns a stream
// positioned at the start of the window. It fails with
// ErrAddressResolution if the document id is not registered or the
// locator range is inverted.
func Open(reg *registry.Registry, loc Locator) (*Stream, error) {
	if loc.End < loc.Start {
		return nil, fmt.Errorf("%w: end %d precedes start %d", ErrAddressResolution, loc.End, loc.Start)
	}

	res, ok := reg.Get(loc.DocumentID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown document %q", ErrAddressResolution, loc.DocumentID)
	}

	return &Stream{loc: loc, res: res}, nil
}

// OpenURI parses the given window address and opens a stream for it. See
// ParseLocator for the address form and Open for resolution failures.
func OpenURI(reg *registry.Registry, s string) (*Stream, error) {
	loc, err := ParseLocator(s)
	if err != nil {
		return nil, err
	}
	return Open(reg, loc)
}

// Locator returns the locator the stream was opened with.
func (s *Stream) Locator() Locator {
	return s.loc
}

// Read fills p with up to len(p) bytes from the window, never past the
// end of the window, and advances the stream position by the number of
// bytes read. At the end of the window it returns 0 and io.EOF. Short
// reads from the underlying resource are passed through as-is.
//
// The shared cursor discipline: the resource's current cursor is saved,
// the cursor is moved to the window position, the read is performed, and
// the cursor is restored. The whole sequence runs under the document's
// cursor lock, so reads from other windows over the same resource may
// interleave or run in parallel without corrupting one another.
func (s *Stream) Read(p []byte) (int, error) {
	remaining := int64(s.loc.Size()) - int64(s.pos)
	if remaining <= 0 {
		return 0, io.EOF
	}

	n := int64(len(p))
	if n > remaining {
		n = remaining
	}

	s.res.Lock()
	defer s.res.Unlock()

	h := s.res.Handle()

	saved, err := h.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	if _, err := h.Seek(int64(s.loc.Start+s.pos), io.SeekStart); err != nil {
		return 0, err
	}

	rn, rerr := h.Read(p[:n])
	s.pos += uint64(rn)

	if _, err := h.Seek(saved, io.SeekStart); err != nil {
		return rn, err
	}

	if errors.Is(rerr, io.EOF) {
		s.srcEOF = true
		if rn > 0 {
			rerr = nil
		}
	}

	return rn, rerr
}

// Tell returns the stream position, relative to the start of the window.
func (s *Stream) Tell() uint64 {
	return s.pos
}

// EOF reports whether the stream is exhausted. It is true once the
// underlying resource has reported exhaustion during a read through this
// window, or once the position has reached the end of the window. Either
// condition alone is sufficient.
func (s *Stream) EOF() bool {
	return s.srcEOF || s.pos >= s.loc.Size()
}

// Seek repositions the stream within the window and returns the new
// position, relative to the start of the window. The whence values are
// the io.Seeker constants, with the window's own bounds:
//
//   - io.SeekStart requires 0 <= offset < Size(). Seeking to exactly
//     Size() is rejected, even though reading until natural exhaustion is
//     allowed; the asymmetry is deliberate.
//   - io.SeekCurrent requires offset >= 0. This is a forward-biased
//     reader; relative seeks never move backward.
//   - io.SeekEnd requires Size()+offset >= 0 and sets the position to
//     Size()+offset.
//
// Any other whence value, or a failing bound above, leaves the position
// unchanged and returns ErrOutOfBounds.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	size := int64(s.loc.Size())

	switch whence {
	case io.SeekStart:
		if offset < 0 || offset >= size {
			return int64(s.pos), fmt.Errorf("%w: start-relative offset %d", ErrOutOfBounds, offset)
		}
		s.pos = uint64(offset)
	case io.SeekCurrent:
		if offset < 0 {
			return int64(s.pos), fmt.Errorf("%w: backward relative offset %d", ErrOutOfBounds, offset)
		}
		s.pos += uint64(offset)
	case io.SeekEnd:
		if size+offset < 0 {
			return int64(s.pos), fmt.Errorf("%w: end-relative offset %d", ErrOutOfBounds, offset)
		}
		s.pos = uint64(size + offset)
	default:
		return int64(s.pos), fmt.Errorf("%w: unknown whence %d", ErrOutOfBounds, whence)
	}

	return int64(s.pos), nil
}
