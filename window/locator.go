package window

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/zostay/go-partstream/registry"
)

// Scheme is the URI scheme used to address windows.
const Scheme = "part"

// Errors returned when opening and operating on windows.
var (
	// ErrAddressResolution is returned by Open() and ParseLocator() when a
	// locator cannot be resolved to a window: the document id is unknown
	// to the registry, the start or end fields are missing or malformed,
	// or end is less than start. It is a failed open, never a panic.
	ErrAddressResolution = errors.New("cannot resolve window address")

	// ErrOutOfBounds is returned by Seek() when the requested position
	// falls outside the permitted window. The stream position is left
	// unchanged.
	ErrOutOfBounds = errors.New("seek out of window bounds")
)

// Locator identifies a byte range inside the resource registered under a
// document id. The range is half-open: the window covers [Start, End).
// End must be greater than or equal to Start.
type Locator struct {
	DocumentID registry.DocumentID
	Start      uint64
	End        uint64
}

// Size returns the length of the window in bytes.
func (l Locator) Size() uint64 {
	return l.End - l.Start
}

// URI renders the locator in its addressable form,
// part://<documentId>?start=<uint>&end=<uint>.
func (l Locator) URI() string {
	q := url.Values{}
	q.Set("start", strconv.FormatUint(l.Start, 10))
	q.Set("end", strconv.FormatUint(l.End, 10))
	u := url.URL{
		Scheme:   Scheme,
		Host:     string(l.DocumentID),
		RawQuery: q.Encode(),
	}
	return u.String()
}

// ParseLocator parses the URI form of a window address. It returns
// ErrAddressResolution (wrapped with detail) if the scheme is wrong, the
// document id is empty, either of the start or end query parameters is
// missing or not a non-negative integer, or end is less than start.
//
// ParseLocator does not consult a registry; whether the document id
// actually resolves is checked when the window is opened.
func ParseLocator(s string) (Locator, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Locator{}, fmt.Errorf("%w: %v", ErrAddressResolution, err)
	}

	if u.Scheme != Scheme {
		return Locator{}, fmt.Errorf("%w: unexpected scheme %q", ErrAddressResolution, u.Scheme)
	}

	if u.Host == "" {
		return Locator{}, fmt.Errorf("%w: missing document id", ErrAddressResolution)
	}

	q := u.Query()
	start, err := parseBound(q, "start")
	if err != nil {
		return Locator{}, err
	}

	end, err := parseBound(q, "end")
	if err != nil {
		return Locator{}, err
	}

	if end < start {
		return Locator{}, fmt.Errorf("%w: end %d precedes start %d", ErrAddressResolution, end, start)
	}

	return Locator{
		DocumentID: registry.DocumentID(u.Host),
		Start:      start,
		End:        end,
	}, nil
}

// parseBound reads one required non-negative integer query parameter.
func parseBound(q url.Values, name string) (uint64, error) {
	if !q.Has(name) {
		return 0, fmt.Errorf("%w: missing %s", ErrAddressResolution, name)
	}

	n, err := strconv.ParseUint(q.Get(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s: %v", ErrAddressResolution, name, err)
	}

	return n, nil
}
