package message

import (
	"github.com/zostay/go-partstream/message/header/param"
	"github.com/zostay/go-partstream/message/transfer"
)

// ConvertToSignedEnvelope restructures the message into a
// multipart/signed envelope. The message's entire current content,
// whether a single body or a multipart tree, becomes the envelope's
// first child (the body), and a second child is appended as an empty
// signature placeholder whose media type is the given protocol. The
// root's Content-type becomes multipart/signed with the given micalg and
// protocol parameters and a fresh boundary.
//
// Two adjustments are made to the body so its bytes are stable under
// signing. Every content leaf that does not already carry a safe
// transfer encoding is switched to quoted-printable, keeping raw 8-bit
// data out of the signed text. And when the body is a multipart
// alternative group containing an HTML alternative, the HTML part is
// moved ahead of its sibling alternatives.
//
// A message that is already multipart/signed is left untouched.
//
// The placeholder's content is supplied by the caller afterward, through
// SetSignaturePlaceholder; producing an actual signature is outside this
// model.
func (m *Message) ConvertToSignedEnvelope(micalg, protocol string) error {
	if MediaType(MultipartSigned).Match(&m.Part) {
		return nil
	}

	// the whole current root content becomes the envelope body
	body := &Part{loc: m.loc, content: m.content}
	moveContentFields(&m.Header, &body.Header)
	children := m.parts
	m.parts = nil
	m.loc = nil
	m.content = nil
	for _, c := range children {
		c.parent = body
	}
	body.parts = children

	forceSafeEncoding(body)
	orderHTMLFirst(body)

	sig := &Part{}
	sig.SetMediaType(protocol)
	sig.SetPresentation(DispositionAttachment)

	m.SetContentType(param.New(MultipartSigned, map[string]string{
		param.Micalg:   micalg,
		param.Protocol: protocol,
		param.Boundary: GenerateBoundary(),
	}))

	m.AddPart(body, sig)
	return nil
}

// SetSignaturePlaceholder stores the caller-supplied signature bytes in
// the envelope's signature part. It returns ErrNotSigned when the
// message is not a multipart/signed envelope.
func (m *Message) SetSignaturePlaceholder(content []byte) error {
	sig := m.GetSignaturePart()
	if sig == nil {
		return ErrNotSigned
	}
	sig.SetContent(content)
	return nil
}

// forceSafeEncoding walks the body and switches every content leaf
// without a safe transfer encoding to quoted-printable.
func forceSafeEncoding(body *Part) {
	body.everyPart(func(p *Part) bool {
		if p.IsMultipart() {
			return true
		}
		cte, err := p.GetTransferEncoding()
		if err != nil || !transfer.IsSafe(cte) {
			p.SetTransferEncoding(transfer.QuotedPrintable)
		}
		return true
	})
}

// orderHTMLFirst moves a text/html alternative to the front of its
// multipart/alternative group, anywhere inside the body.
func orderHTMLFirst(body *Part) {
	body.everyPart(func(p *Part) bool {
		if !MediaType(MultipartAlternative).Match(p) || !p.IsMultipart() {
			return true
		}
		for i, c := range p.parts {
			if MediaType(TextHTML).Match(c) {
				if i > 0 {
					copy(p.parts[1:i+1], p.parts[:i])
					p.parts[0] = c
				}
				break
			}
		}
		return true
	})
}
