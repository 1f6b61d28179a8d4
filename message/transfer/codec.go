package transfer

import (
	"encoding/base64"
	"io"
	"mime/quotedprintable"
)

const base64LineLength = 76

var base64LineBreak = []byte{'\n'}

// writer wraps an io.Writer so the as-is path satisfies io.WriteCloser.
// When closer is non-nil, Close() is forwarded to it.
type writer struct {
	io.Writer
	closer io.Closer
}

func (w *writer) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// NewAsIsEncoder returns an io.WriteCloser that writes bytes as-is.
func NewAsIsEncoder(w io.Writer) io.WriteCloser {
	return &writer{w, nil}
}

// NewAsIsDecoder returns an io.Reader that reads bytes as-is.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}

// NewQuotedPrintableEncoder transforms all bytes written to the returned
// io.WriteCloser into quoted-printable form and writes them to the given
// io.Writer.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{qpw, qpw}
}

// NewQuotedPrintableDecoder reads quoted-printable bytes from the given
// io.Reader and yields the decoded form.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}

// lineWriter folds its output into lines of a fixed length.
type lineWriter struct {
	every int
	acc   int
	w     io.Writer
}

func (lw *lineWriter) Write(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		room := lw.every - lw.acc
		if room > len(b) {
			room = len(b)
		}

		wn, err := lw.w.Write(b[:room])
		n += wn
		if err != nil {
			return n, err
		}

		lw.acc += room
		b = b[room:]

		if lw.acc == lw.every {
			if _, err := lw.w.Write(base64LineBreak); err != nil {
				return n, err
			}
			lw.acc = 0
		}
	}
	return n, nil
}

func (lw *lineWriter) Close() error {
	if lw.acc > 0 {
		if _, err := lw.w.Write(base64LineBreak); err != nil {
			return err
		}
		lw.acc = 0
	}
	if c, ok := lw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewBase64Encoder transforms all bytes written to the returned
// io.WriteCloser into base64, folded at 76 columns, and writes them to
// the given io.Writer.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	lw := &lineWriter{every: base64LineLength, w: w}
	b64 := base64.NewEncoder(base64.StdEncoding, lw)
	return &writer{b64, &chainCloser{b64, lw}}
}

// chainCloser closes the encoder before the line folder beneath it.
type chainCloser struct {
	first, second io.Closer
}

func (c *chainCloser) Close() error {
	if err := c.first.Close(); err != nil {
		return err
	}
	return c.second.Close()
}

// NewBase64Decoder reads base64 bytes from the given io.Reader and
// yields the decoded form. The underlying decoder ignores line breaks.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
