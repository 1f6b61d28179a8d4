package transfer

import (
	"bytes"
	"io"
	"strings"

	"github.com/zostay/go-partstream/message/header"
)

const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes are transformed between quoted-printable and binary
	Base64          = "base64"           // bytes are transformed between base64 and binary
)

// IsSafe reports whether the named transfer encoding renders arbitrary
// 8-bit content safe for transports and envelopes (such as
// multipart/signed bodies) that must not see raw 8-bit data.
func IsSafe(cte string) bool {
	switch strings.ToLower(cte) {
	case QuotedPrintable, Base64:
		return true
	}
	return false
}

// Transcoding is a pair of functions used to transform to and from a
// transfer encoding.
type Transcoding struct {
	// Encoder returns an io.WriteCloser which encodes binary data and
	// writes the encoded form to the given io.Writer. Close() must be
	// called when writing is finished.
	Encoder func(io.Writer) io.WriteCloser

	// Decoder returns an io.Reader which reads encoded data from the
	// given io.Reader and yields the binary form.
	Decoder func(io.Reader) io.Reader
}

// AsIsTranscoder is a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings defines the supported Content-transfer-encodings and how
// to handle them.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}

// ApplyTransferEncoding checks the given header to see whether transfer
// encoding ought to be performed and returns an io.WriteCloser that
// encodes written data accordingly (or passes it through when no
// encoding applies).
//
// Close() must be called on the returned io.WriteCloser when writing is
// finished.
func ApplyTransferEncoding(h *header.Header, w io.Writer) io.WriteCloser {
	cte, err := h.GetTransferEncoding()
	if err != nil {
		return NewAsIsEncoder(w)
	}

	if tc, ok := Transcodings[strings.ToLower(cte)]; ok {
		return tc.Encoder(w)
	}
	return NewAsIsEncoder(w)
}

// ApplyTransferDecoding returns an io.Reader that decodes incoming bytes
// according to the transfer encoding named by the given header, or the
// given io.Reader unchanged when no decoding applies. Multipart
// containers are never decoded; a transfer encoding on a container is
// ignored.
func ApplyTransferDecoding(h *header.Header, r io.Reader) io.Reader {
	ct, err := h.GetContentType()
	if err == nil && ct != nil && ct.Type() == "multipart" {
		return r
	}

	cte, err := h.GetTransferEncoding()
	if err != nil {
		return r
	}

	if tc, ok := Transcodings[strings.ToLower(cte)]; ok {
		return tc.Decoder(r)
	}
	return r
}

// EncodeBytes encodes b with the named transfer encoding. Unknown
// encodings are treated as-is.
func EncodeBytes(cte string, b []byte) ([]byte, error) {
	tc, ok := Transcodings[strings.ToLower(cte)]
	if !ok {
		tc = AsIsTranscoder
	}

	buf := &bytes.Buffer{}
	w := tc.Encoder(buf)
	if _, err := w.Write(b); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes decodes b from the named transfer encoding. Unknown
// encodings are treated as-is.
func DecodeBytes(cte string, b []byte) ([]byte, error) {
	tc, ok := Transcodings[strings.ToLower(cte)]
	if !ok {
		tc = AsIsTranscoder
	}
	return io.ReadAll(tc.Decoder(bytes.NewReader(b)))
}
