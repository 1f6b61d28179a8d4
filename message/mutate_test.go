package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-partstream/message"
	"github.com/zostay/go-partstream/message/charset"
	"github.com/zostay/go-partstream/message/transfer"
	"github.com/zostay/go-partstream/registry"
)

func TestSetContentPartReplacesInPlace(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)
	before := m.Parts()

	require.NoError(t, m.SetContentPart(message.TextPlain, []byte("new body"), ""))

	// same tree shape, same part, new content
	require.Len(t, m.Parts(), 3)
	assert.Same(t, before[0], m.Parts()[0])
	text := m.GetTextPart(0)
	content, ok := text.Content()
	require.True(t, ok)
	assert.Equal(t, "new body", string(content))
	_, ok = text.Window()
	assert.False(t, ok)

	cs, err := text.GetCharset()
	require.NoError(t, err)
	assert.Equal(t, "utf-8", cs)
}

func TestSetContentPartCreates(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)
	require.Nil(t, m.GetPart(0, message.MediaType("text/markdown")))

	require.NoError(t, m.SetContentPart("text/markdown", []byte("# hi"), ""))

	// appended after the existing children
	require.Len(t, m.Parts(), 4)
	md := m.Parts()[3]
	mt, err := md.GetMediaType()
	require.NoError(t, err)
	assert.Equal(t, "text/markdown", mt)

	pr, err := md.GetPresentation()
	require.NoError(t, err)
	assert.Equal(t, message.DispositionInline, pr)

	// inline text is body content, not an attachment
	assert.Equal(t, 1, m.GetAttachmentCount())
}

func TestSetContentPartCharset(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)

	require.NoError(t, m.SetContentPart(message.TextPlain, []byte("héllo"), "ISO-8859-1"))

	text := m.GetTextPart(0)
	content, ok := text.Content()
	require.True(t, ok)
	assert.Equal(t, []byte("h\xe9llo"), content)

	cs, err := text.GetCharset()
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-1", cs)

	err = m.SetContentPart(message.TextPlain, []byte("x"), "no-such-charset")
	assert.ErrorIs(t, err, charset.ErrUnsupportedCharset)
}

func TestSetContentPartOnLeafRoot(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	m := message.New(reg)
	m.SetMediaType(message.TextPlain)
	m.SetContent([]byte("old body"))

	require.NoError(t, m.SetContentPart(message.TextHTML, []byte("<p>hi</p>"), ""))

	// the leaf root became a mixed container; the old body moved into
	// the first child with its Content-type intact
	mt, err := m.GetMediaType()
	require.NoError(t, err)
	assert.Equal(t, message.MultipartMixed, mt)
	_, err = m.GetBoundary()
	assert.NoError(t, err)

	require.Len(t, m.Parts(), 2)
	old := m.Parts()[0]
	mt, err = old.GetMediaType()
	require.NoError(t, err)
	assert.Equal(t, message.TextPlain, mt)
	content, ok := old.Content()
	require.True(t, ok)
	assert.Equal(t, "old body", string(content))

	// the demoted body stays body content, not an attachment
	pr, err := old.GetPresentation()
	require.NoError(t, err)
	assert.Equal(t, message.DispositionInline, pr)
	assert.Equal(t, 0, m.GetAttachmentCount())

	assert.Same(t, m.Parts()[1], m.GetHTMLPart(0))
}

func TestEnsureContainerKeepsExplicitDisposition(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	m := message.New(reg)
	m.SetMediaType(message.TextPlain)
	m.SetPresentation(message.DispositionAttachment)
	m.SetContent([]byte("notes"))

	require.NoError(t, m.SetContentPart(message.TextHTML, []byte("<p>hi</p>"), ""))

	old := m.Parts()[0]
	pr, err := old.GetPresentation()
	require.NoError(t, err)
	assert.Equal(t, message.DispositionAttachment, pr)
	assert.Equal(t, 1, m.GetAttachmentCount())
}

func TestRemoveContentPart(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)

	assert.False(t, m.RemoveContentPart(message.TextPlain, 3))
	assert.True(t, m.RemoveContentPart(message.TextPlain, 0))
	assert.Nil(t, m.GetTextPart(0))
	assert.Len(t, m.Parts(), 2)

	// the root itself matches but has no parent to remove it from
	assert.False(t, m.RemoveContentPart(message.MultipartMixed, 0))
}

func TestRemoveAllContentPartsKeepingOthers(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)

	assert.True(t, m.RemoveAllContentParts(message.TextHTML, true))
	assert.Nil(t, m.GetHTMLPart(0))

	// the inline text sibling survives
	require.Len(t, m.Parts(), 2)
	assert.NotNil(t, m.GetTextPart(0))

	assert.False(t, m.RemoveAllContentParts(message.TextHTML, true))
}

func TestRemoveAllContentPartsDiscardingOthers(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)

	assert.True(t, m.RemoveAllContentParts(message.TextHTML, false))

	// the inline text sibling goes too; the attachment stays
	require.Len(t, m.Parts(), 1)
	assert.Nil(t, m.GetTextPart(0))
	assert.Equal(t, 1, m.GetAttachmentCount())
}

func TestAddAttachmentPart(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)
	payload := []byte("%PDF-1.4\x00\x01")

	p, err := m.AddAttachmentPart(payload, "application/pdf", "report.pdf", "")
	require.NoError(t, err)
	assert.Same(t, m.Parts()[3], p)

	pr, err := p.GetPresentation()
	require.NoError(t, err)
	assert.Equal(t, message.DispositionAttachment, pr)

	fn, err := p.GetFilename()
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", fn)

	cte, err := p.GetTransferEncoding()
	require.NoError(t, err)
	assert.Equal(t, transfer.Base64, cte)

	// stored base64, decodes back to the original bytes
	stored, ok := p.Content()
	require.True(t, ok)
	assert.NotEqual(t, payload, stored)

	decoded, err := transfer.DecodeBytes(transfer.Base64, stored)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)

	assert.Equal(t, 2, m.GetAttachmentCount())
}

func TestAddAttachmentPartDefaults(t *testing.T) {
	t.Parallel()

	_, m := makeTree(t)

	p, err := m.AddAttachmentPart([]byte("inline bytes"), "image/gif", "", message.DispositionInline)
	require.NoError(t, err)

	pr, err := p.GetPresentation()
	require.NoError(t, err)
	assert.Equal(t, message.DispositionInline, pr)

	fn, err := p.GetFilename()
	require.NoError(t, err)
	assert.Regexp(t, `^attachment-`, fn)
}

func TestAddAttachmentPartToLeafRoot(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	m := message.New(reg)
	m.SetMediaType(message.TextPlain)
	m.SetContent([]byte("body"))

	_, err := m.AddAttachmentPart([]byte("data"), "application/octet-stream", "blob.bin", "")
	require.NoError(t, err)

	require.Len(t, m.Parts(), 2)
	assert.NotNil(t, m.GetTextPart(0))

	// only the added attachment counts; the demoted text body is inline
	pr, err := m.Parts()[0].GetPresentation()
	require.NoError(t, err)
	assert.Equal(t, message.DispositionInline, pr)
	assert.Equal(t, 1, m.GetAttachmentCount())
}
