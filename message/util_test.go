package message_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zostay/go-partstream/message"
	"github.com/zostay/go-partstream/message/header"
	"github.com/zostay/go-partstream/registry"
	"github.com/zostay/go-partstream/window"
)

// rawDoc is the raw document the test trees window into. The scanning
// collaborator would normally compute these offsets.
var rawDoc = []byte("PLAINBODYHTMLBODY!IMAGEBYTES")

const (
	plainStart, plainEnd = 0, 9
	htmlStart, htmlEnd   = 9, 18
	imageStart, imageEnd = 18, 28
)

func leafHeader(mediaType, disposition string) *header.Header {
	h := &header.Header{}
	h.SetMediaType(mediaType)
	if disposition != "" {
		h.SetPresentation(disposition)
	}
	return h
}

// makeTree builds the usual three-leaf message over rawDoc: an inline
// text part, an inline HTML part, and an image attachment.
func makeTree(t *testing.T) (*registry.Registry, *message.Message) {
	t.Helper()

	reg := registry.New()
	id := reg.Register(bytes.NewReader(rawDoc))

	m := message.NewForDocument(reg, id)
	m.SetMediaType(message.MultipartMixed)
	require.NoError(t, m.SetBoundary("test-boundary"))

	text := message.NewWindowPart(
		leafHeader(message.TextPlain, message.DispositionInline),
		window.Locator{DocumentID: id, Start: plainStart, End: plainEnd},
	)
	html := message.NewWindowPart(
		leafHeader(message.TextHTML, message.DispositionInline),
		window.Locator{DocumentID: id, Start: htmlStart, End: htmlEnd},
	)
	image := message.NewWindowPart(
		leafHeader("image/png", message.DispositionAttachment),
		window.Locator{DocumentID: id, Start: imageStart, End: imageEnd},
	)
	require.NoError(t, image.SetFilename("pic.png"))

	m.AddPart(text, html, image)
	return reg, m
}
