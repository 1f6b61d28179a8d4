package message

import (
	"github.com/zostay/go-partstream/registry"
)

// Message is the distinguished root Part of a document tree. It records
// the registry it resolves windows against and, when the tree was built
// over a registered raw document, the document's id so the registration
// can be released when the consumer is done.
type Message struct {
	Part

	reg *registry.Registry
	doc registry.DocumentID
}

// New returns an empty message for programmatic construction. Parts
// added to it will usually carry owned content buffers rather than
// windows.
func New(reg *registry.Registry) *Message {
	return &Message{reg: reg}
}

// NewForDocument returns an empty message rooted over a registered raw
// document. The scanning collaborator calls this once per document, then
// attaches parts whose locators reference the given id. Closing the
// message unregisters the document.
func NewForDocument(reg *registry.Registry, doc registry.DocumentID) *Message {
	return &Message{reg: reg, doc: doc}
}

// Registry returns the registry the message resolves windows against.
func (m *Message) Registry() *registry.Registry {
	return m.reg
}

// DocumentID returns the id of the raw document backing this message, or
// an empty id for a purely programmatic message.
func (m *Message) DocumentID() registry.DocumentID {
	return m.doc
}

// Close releases the message's claim on the raw document by
// unregistering it. Windows already open over the document keep their
// resolved handles, but no new window can be opened against the id.
// Close on a programmatic message is a no-op.
func (m *Message) Close() error {
	if m.doc != "" {
		m.reg.Unregister(m.doc)
		m.doc = ""
	}
	return nil
}

// GetTextPart returns the index-th part (0-based) with the text/plain
// media type, or nil if there are not that many.
func (m *Message) GetTextPart(index int) *Part {
	return m.GetPart(index, MediaType(TextPlain))
}

// GetHTMLPart returns the index-th part (0-based) with the text/html
// media type, or nil if there are not that many.
func (m *Message) GetHTMLPart(index int) *Part {
	return m.GetPart(index, MediaType(TextHTML))
}

// GetAllAttachmentParts returns every part classified as an attachment,
// in document order: every content leaf except inline text. A text part
// explicitly marked attachment is included.
func (m *Message) GetAllAttachmentParts() []*Part {
	return m.GetAllParts(Attachment())
}

// GetAttachmentPart returns the index-th attachment (0-based), or nil if
// there are not that many.
func (m *Message) GetAttachmentPart(index int) *Part {
	return m.GetPart(index, Attachment())
}

// GetAttachmentCount returns the number of attachment parts.
func (m *Message) GetAttachmentCount() int {
	return m.GetPartCount(Attachment())
}

// GetSignaturePart returns the signature part of a signed envelope: the
// root's second child, present if and only if the root's media type is
// multipart/signed (compared case-insensitively) and the envelope is
// complete. For any other message it returns nil.
//
// A signed envelope's children are exactly [body, signature], body
// first.
func (m *Message) GetSignaturePart() *Part {
	if !MediaType(MultipartSigned).Match(&m.Part) {
		return nil
	}
	if len(m.parts) < 2 {
		return nil
	}
	return m.parts[1]
}
