// Package charset re-encodes part content between UTF-8 and the MIME
// charsets named in Content-type headers. It backs the target-charset
// contract of message.SetContentPart. Charset detection of unlabeled
// input is out of scope here.
package charset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrUnsupportedCharset is returned when the named charset is not found
// in the IANA index.
var ErrUnsupportedCharset = errors.New("unsupported charset")

// lookup resolves a MIME charset name to its encoding. It returns nil
// for names that require no transformation (UTF-8, ASCII, or an empty
// name).
func lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return nil, nil
	}

	e, err := ianaindex.MIME.Encoding(name)
	if err != nil || e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharset, name)
	}
	return e, nil
}

// Encode converts UTF-8 bytes into the named charset. Names that mean
// UTF-8 or ASCII return the input unchanged.
func Encode(name string, b []byte) ([]byte, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return b, nil
	}

	out, _, err := transform.Bytes(e.NewEncoder(), b)
	if err != nil {
		return nil, fmt.Errorf("encoding to %q: %w", name, err)
	}
	return out, nil
}

// Decode converts bytes in the named charset into UTF-8.
func Decode(name string, b []byte) ([]byte, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return b, nil
	}

	out, _, err := transform.Bytes(e.NewDecoder(), b)
	if err != nil {
		return nil, fmt.Errorf("decoding from %q: %w", name, err)
	}
	return out, nil
}

// Reader wraps r so that bytes in the named charset read out as UTF-8.
func Reader(name string, r io.Reader) (io.Reader, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return r, nil
	}
	return transform.NewReader(r, e.NewDecoder()), nil
}
