package header

import (
	"errors"
	"strings"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the
	// operation being performed failed because the header exists, but a
	// sub-field of the header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned by Header methods when the operation
	// being performed failed because there are multiple fields with the
	// given name.
	ErrManyFields = errors.New("many header fields found")

	// ErrIndexOutOfRange is returned by field index operations when the
	// given index does not refer to a field.
	ErrIndexOutOfRange = errors.New("field index out of range")

	// ErrWrongAddressType is returned by address setting methods that
	// accept either a string or an addr.AddressList when something other
	// than those types is provided.
	ErrWrongAddressType = errors.New("incorrect address type during write")
)

// Field is a single header field: a name and an already-decoded body.
type Field struct {
	name string
	body string
}

// NewField constructs a field with the given name and body.
func NewField(name, body string) *Field {
	return &Field{name: name, body: body}
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// Body returns the field body.
func (f *Field) Body() string { return f.body }

// SetName replaces the field name.
func (f *Field) SetName(name string) { f.name = name }

// SetBody replaces the field body.
func (f *Field) SetBody(body string) { f.body = body }

// Header is an ordered multimap of header fields. Field order is
// preserved and fields with the same name may repeat. Name lookup is
// case-insensitive. The zero value is an empty header, ready to use.
type Header struct {
	fields []*Field
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	fields := make([]*Field, len(h.fields))
	for i, f := range h.fields {
		c := *f
		fields[i] = &c
	}
	return &Header{fields: fields}
}

// Len returns the number of fields in the header.
func (h *Header) Len() int {
	return len(h.fields)
}

// GetField returns the field at the given index or nil if the index is
// out of range.
func (h *Header) GetField(i int) *Field {
	if i < 0 || i >= len(h.fields) {
		return nil
	}
	return h.fields[i]
}

// Fields returns the fields of the header in order.
func (h *Header) Fields() []*Field {
	return h.fields
}

// GetIndexesNamed returns the indexes of every field with the given
// name, in order. Name comparison is case-insensitive.
func (h *Header) GetIndexesNamed(name string) []int {
	var ixs []int
	for i, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			ixs = append(ixs, i)
		}
	}
	return ixs
}

// GetAllFieldsNamed returns every field with the given name, in order.
func (h *Header) GetAllFieldsNamed(name string) []*Field {
	var fs []*Field
	for _, f := range h.fields {
		if strings.EqualFold(f.name, name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// InsertBeforeField inserts a new field before the field at the given
// index. An index of Len() appends the field to the end of the header.
// Indexes out of that range are clamped.
func (h *Header) InsertBeforeField(i int, name, body string) {
	if i < 0 {
		i = 0
	}
	if i > len(h.fields) {
		i = len(h.fields)
	}

	h.fields = append(h.fields, nil)
	copy(h.fields[i+1:], h.fields[i:])
	h.fields[i] = NewField(name, body)
}

// DeleteField removes the field at the given index. It returns
// ErrIndexOutOfRange if the index does not refer to a field.
func (h *Header) DeleteField(i int) error {
	if i < 0 || i >= len(h.fields) {
		return ErrIndexOutOfRange
	}
	h.fields = append(h.fields[:i], h.fields[i+1:]...)
	return nil
}

// Get retrieves the body of the named field.
//
// If the named field is not set in the header, it will return an empty
// string with ErrNoSuchField. If there are multiple fields with the
// given name, it will return the first body found with ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return "", ErrNoSuchField
	}

	b := h.fields[ixs[0]].body
	if len(ixs) > 1 {
		return b, ErrManyFields
	}

	return b, nil
}

// GetAll returns the bodies of every field with the given name.
//
// It returns nil with ErrNoSuchField if no field with the given name is
// set on the header.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.body
	}
	return bs, nil
}

// Set replaces all existing fields with the given name with a single
// field with the given name and body. If the field already exists, the
// first occurrence is replaced in place and any others are deleted. If
// it does not exist, the field is appended to the end of the header.
func (h *Header) Set(name, body string) {
	ixs := h.GetIndexesNamed(name)

	if len(ixs) == 0 {
		h.InsertBeforeField(h.Len(), name, body)
		return
	}

	if len(ixs) > 1 {
		for i := len(ixs) - 1; i > 0; i-- {
			_ = h.DeleteField(ixs[i])
		}
	}

	f := h.fields[ixs[0]]
	f.SetName(name)
	f.SetBody(body)
}

// SetAll replaces all fields with the given name with the bodies given.
// Existing fields are updated in place; extra bodies are appended to the
// end of the header; extra fields are deleted.
func (h *Header) SetAll(name string, bodies ...string) {
	ixs := h.GetIndexesNamed(name)

	for i, b := range bodies {
		if i < len(ixs) {
			h.fields[ixs[i]].SetBody(b)
			continue
		}
		h.InsertBeforeField(h.Len(), name, b)
	}

	if len(ixs) > len(bodies) {
		for i := len(ixs) - 1; i >= len(bodies); i-- {
			_ = h.DeleteField(ixs[i])
		}
	}
}

// Delete removes every field with the given name. It returns
// ErrNoSuchField if no field with that name exists.
func (h *Header) Delete(name string) error {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return ErrNoSuchField
	}

	for i := len(ixs) - 1; i >= 0; i-- {
		_ = h.DeleteField(ixs[i])
	}
	return nil
}

// String renders the header one "Name: body" line per field. This is a
// debugging convenience, not a wire format; rendering a header back into
// original octets belongs to the external round-trip collaborator.
func (h *Header) String() string {
	var out strings.Builder
	for _, f := range h.fields {
		out.WriteString(f.name)
		out.WriteString(": ")
		out.WriteString(f.body)
		out.WriteString("\n")
	}
	return out.String()
}
