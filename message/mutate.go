package message

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zostay/go-partstream/message/charset"
	"github.com/zostay/go-partstream/message/header"
	"github.com/zostay/go-partstream/message/transfer"
)

// ensureContainer prepares the root to accept a new child leaf. A root
// that already declares a multipart media type is left alone. Any other
// root becomes a multipart/mixed container: if it held content of its
// own, that content moves into a new first child that keeps the old
// Content-type, Content-transfer-encoding, and Content-disposition. A
// body that carried no disposition is marked inline so it stays body
// content rather than classifying as an attachment.
func (m *Message) ensureContainer() {
	if MediaTypePrefix(MultipartPrefix).Match(&m.Part) {
		return
	}

	if m.loc != nil || m.content != nil {
		body := &Part{loc: m.loc, content: m.content}
		moveContentFields(&m.Header, &body.Header)
		if _, err := body.GetPresentation(); err != nil {
			body.SetPresentation(DispositionInline)
		}
		m.loc = nil
		m.content = nil
		m.AddPart(body)
	}

	m.SetMediaType(MultipartMixed)
	_ = m.SetBoundary(GenerateBoundary())
}

// moveContentFields moves the Content-* fields describing a body from
// one header to another.
func moveContentFields(from, to *header.Header) {
	for _, name := range []string{
		header.ContentType,
		header.ContentTransferEncoding,
		header.ContentDisposition,
	} {
		if v, err := from.Get(name); err == nil {
			to.Set(name, v)
			_ = from.Delete(name)
		}
	}
}

// SetContentPart replaces the content of the first part with the given
// media type, or creates one. The source bytes are UTF-8; they are
// re-encoded into the given target charset before being stored, and the
// charset parameter of the part's Content-type is updated to match. An
// empty charset stores the bytes as UTF-8.
//
// When a part of the media type already exists, its content source and
// charset are replaced in place and the tree shape is untouched. When
// none exists, a new child leaf is appended, preserving the order of the
// existing children.
func (m *Message) SetContentPart(mediaType string, src []byte, charsetName string) error {
	content, err := charset.Encode(charsetName, src)
	if err != nil {
		return err
	}
	if charsetName == "" {
		charsetName = "utf-8"
	}

	if p := m.GetPart(0, MediaType(mediaType)); p != nil {
		p.SetContent(content)
		p.SetMediaType(mediaType)
		return p.SetCharset(charsetName)
	}

	p := &Part{content: content}
	p.SetMediaType(mediaType)
	if err := p.SetCharset(charsetName); err != nil {
		return err
	}
	p.SetPresentation(DispositionInline)

	m.ensureContainer()
	m.AddPart(p)
	return nil
}

// RemoveContentPart removes the index-th part (0-based) with the given
// media type from the tree. It reports whether a removal occurred; a
// missing part is not an error.
func (m *Message) RemoveContentPart(mediaType string, index int) bool {
	p := m.GetPart(index, MediaType(mediaType))
	if p == nil || p.parent == nil {
		return false
	}
	return p.parent.RemovePart(p)
}

// RemoveAllContentParts removes every part with the given media type. It
// reports whether anything was removed.
//
// When keepOthersAsAttachments is false, inline leaves that were
// siblings of the removed parts and do not match the media type are
// discarded as well, instead of being left behind to show up as
// attachments. When it is true they stay in place.
func (m *Message) RemoveAllContentParts(mediaType string, keepOthersAsAttachments bool) bool {
	matches := m.GetAllParts(MediaType(mediaType))

	parents := make([]*Part, 0, len(matches))
	removed := false
	for _, p := range matches {
		if p.parent == nil {
			continue
		}
		parents = append(parents, p.parent)
		if p.parent.RemovePart(p) {
			removed = true
		}
	}

	if !removed || keepOthersAsAttachments {
		return removed
	}

	drop := And(
		NoContainer(),
		Disposition(DispositionInline),
		Not(MediaType(mediaType)),
	)
	for _, parent := range parents {
		siblings := make([]*Part, len(parent.parts))
		copy(siblings, parent.parts)
		for _, s := range siblings {
			if drop.Match(s) {
				parent.RemovePart(s)
			}
		}
	}

	return true
}

// AddAttachmentPart appends a new leaf child carrying the given content.
// The disposition defaults to attachment when empty, and a synthetic
// unique filename is generated when none is given. The content is stored
// base64-encoded with a matching Content-transfer-encoding header, since
// attachment bytes are arbitrary. The new part is returned.
func (m *Message) AddAttachmentPart(src []byte, mediaType, filename, disposition string) (*Part, error) {
	if disposition == "" {
		disposition = DispositionAttachment
	}
	if filename == "" {
		filename = fmt.Sprintf("attachment-%s", uuid.NewString())
	}

	content, err := transfer.EncodeBytes(transfer.Base64, src)
	if err != nil {
		return nil, err
	}

	p := &Part{content: content}
	p.SetMediaType(mediaType)
	p.SetPresentation(disposition)
	if err := p.SetFilename(filename); err != nil {
		return nil, err
	}
	p.SetTransferEncoding(transfer.Base64)

	m.ensureContainer()
	m.AddPart(p)
	return p, nil
}
