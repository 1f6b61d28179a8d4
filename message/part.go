package message

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/zostay/go-partstream/message/header"
	"github.com/zostay/go-partstream/message/transfer"
	"github.com/zostay/go-partstream/registry"
	"github.com/zostay/go-partstream/window"
)

// Media types and dispositions this package treats specially.
const (
	TextPlain            = "text/plain"
	TextHTML             = "text/html"
	MultipartPrefix      = "multipart/"
	MultipartMixed       = "multipart/mixed"
	MultipartAlternative = "multipart/alternative"
	MultipartSigned      = "multipart/signed"

	DispositionInline     = "inline"
	DispositionAttachment = "attachment"
)

// Errors returned by Part and Message operations.
var (
	// ErrContainerPart is returned by Reader() when called on a part
	// that is a multipart container. Containers have sub-parts, not
	// content of their own.
	ErrContainerPart = errors.New("part is a multipart container")

	// ErrNoWindow is returned by OpenWindow() when the part's content is
	// an owned buffer rather than a window into the raw document.
	ErrNoWindow = errors.New("part content is not backed by a document window")

	// ErrNotSigned is returned by SetSignaturePlaceholder() when the
	// message is not a multipart/signed envelope.
	ErrNotSigned = errors.New("message is not a multipart/signed envelope")
)

// Part is a node in the document tree. It holds the part's headers, its
// content, a weak reference to its parent, and its children in document
// order.
//
// Content is one of two things. A part fresh from the scanning
// collaborator records a window locator: the [start, end) byte range of
// its body inside the shared raw document. A part whose content has been
// replaced owns a byte buffer instead. Either way the bytes are read
// through Reader().
//
// A Part is a container if and only if it declares a multipart media
// type and has children; otherwise it is a content leaf.
//
// The tree owns its children exclusively, top-down. The parent pointer
// is only used for traversal and removal; it never extends a part's
// lifetime.
type Part struct {
	header.Header

	loc     *window.Locator
	content []byte

	parent *Part
	parts  []*Part
}

// NewWindowPart returns a leaf part whose content is the given window
// into the shared raw document. A nil header means an empty header.
func NewWindowPart(h *header.Header, loc window.Locator) *Part {
	p := &Part{loc: &loc}
	if h != nil {
		p.Header = *h
	}
	return p
}

// NewContentPart returns a leaf part that owns the given content bytes.
// A nil header means an empty header.
func NewContentPart(h *header.Header, content []byte) *Part {
	p := &Part{content: content}
	if h != nil {
		p.Header = *h
	}
	return p
}

// IsMultipart reports whether this part is a container: it declares a
// multipart media type and has at least one child. A part with a
// multipart media type whose sub-parts were never split out is still a
// leaf; its content is the unsplit body.
func (p *Part) IsMultipart() bool {
	mt, err := p.GetMediaType()
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(mt), MultipartPrefix) && len(p.parts) > 0
}

// Parent returns the part's parent or nil for the root.
func (p *Part) Parent() *Part {
	return p.parent
}

// Parts returns the part's children in document order.
func (p *Part) Parts() []*Part {
	return p.parts
}

// AddPart appends the given parts as children, in order. A part that
// already has a parent is detached from it first, so that every non-root
// part has exactly one parent and appears exactly once among that
// parent's children.
func (p *Part) AddPart(children ...*Part) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.RemovePart(c)
		}
		c.parent = p
		p.parts = append(p.parts, c)
	}
}

// InsertPart inserts the given part as a child before the child at the
// given index. An index of len(Parts()) appends; indexes out of that
// range are clamped. A part that already has a parent is detached first.
func (p *Part) InsertPart(i int, c *Part) {
	if c.parent != nil {
		c.parent.RemovePart(c)
	}
	if i < 0 {
		i = 0
	}
	if i > len(p.parts) {
		i = len(p.parts)
	}

	c.parent = p
	p.parts = append(p.parts, nil)
	copy(p.parts[i+1:], p.parts[i:])
	p.parts[i] = c
}

// RemovePart removes the given child and clears its parent pointer. It
// returns false if the given part is not a child of this part.
func (p *Part) RemovePart(c *Part) bool {
	for i, have := range p.parts {
		if have == c {
			p.parts = append(p.parts[:i], p.parts[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// Window returns the part's window locator. The second value is false
// when the part's content is an owned buffer instead.
func (p *Part) Window() (window.Locator, bool) {
	if p.loc == nil {
		return window.Locator{}, false
	}
	return *p.loc, true
}

// Content returns the part's owned content buffer. The second value is
// false when the part's content is a window into the raw document.
func (p *Part) Content() ([]byte, bool) {
	if p.content == nil {
		return nil, false
	}
	return p.content, true
}

// SetContent replaces the part's content with an owned buffer. Any
// window locator previously held is dropped; the bytes of the raw
// document are unaffected.
func (p *Part) SetContent(content []byte) {
	p.content = content
	p.loc = nil
}

// SetWindow replaces the part's content with a window into the raw
// document. Any owned buffer previously held is dropped.
func (p *Part) SetWindow(loc window.Locator) {
	p.loc = &loc
	p.content = nil
}

// OpenWindow opens a fresh stream over the part's window locator. It
// returns ErrNoWindow for parts holding an owned buffer and passes
// through open failures from the window package.
func (p *Part) OpenWindow(reg *registry.Registry) (*window.Stream, error) {
	if p.loc == nil {
		return nil, ErrNoWindow
	}
	return window.Open(reg, *p.loc)
}

// Reader returns a reader over the part's content bytes as they appear
// in the document: window-backed parts read through a fresh window
// stream, buffer-backed parts read from the owned buffer. It returns
// ErrContainerPart when called on a multipart container.
//
// The bytes still carry any Content-transfer-encoding; see
// TransferDecodedReader.
func (p *Part) Reader(reg *registry.Registry) (io.Reader, error) {
	if p.IsMultipart() {
		return nil, ErrContainerPart
	}
	if p.loc != nil {
		return window.Open(reg, *p.loc)
	}
	return bytes.NewReader(p.content), nil
}

// TransferDecodedReader returns a reader over the part's content with
// the Content-transfer-encoding named in the part's header decoded away.
func (p *Part) TransferDecodedReader(reg *registry.Registry) (io.Reader, error) {
	r, err := p.Reader(reg)
	if err != nil {
		return nil, err
	}
	return transfer.ApplyTransferDecoding(&p.Header, r), nil
}

// GetPart returns the index-th part (0-based) among the parts matching
// the predicate, searching this part and its subtree depth-first in
// document order. It returns nil when fewer than index+1 parts match.
func (p *Part) GetPart(index int, pred Predicate) *Part {
	var found *Part
	seen := 0
	p.everyPart(func(q *Part) bool {
		if !pred.Match(q) {
			return true
		}
		if seen == index {
			found = q
			return false
		}
		seen++
		return true
	})
	return found
}

// GetAllParts returns every part matching the predicate, in document
// order. It returns an empty slice when nothing matches, never an error.
func (p *Part) GetAllParts(pred Predicate) []*Part {
	var all []*Part
	p.everyPart(func(q *Part) bool {
		if pred.Match(q) {
			all = append(all, q)
		}
		return true
	})
	return all
}

// GetPartCount returns the number of parts matching the predicate.
func (p *Part) GetPartCount(pred Predicate) int {
	n := 0
	p.everyPart(func(q *Part) bool {
		if pred.Match(q) {
			n++
		}
		return true
	})
	return n
}

// everyPart visits this part and its subtree depth-first in document
// order, stopping early when the visitor returns false.
func (p *Part) everyPart(visit func(*Part) bool) bool {
	if !visit(p) {
		return false
	}
	for _, c := range p.parts {
		if !c.everyPart(visit) {
			return false
		}
	}
	return true
}

// GenerateBoundary returns a fresh boundary string suitable for the
// boundary parameter of a multipart Content-type.
func GenerateBoundary() string {
	return "=_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
