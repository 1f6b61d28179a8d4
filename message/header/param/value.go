package param

import (
	"mime"
	"strings"
)

// Names of parameters commonly attached to Content-type and
// Content-disposition headers.
const (
	Boundary = "boundary"
	Charset  = "charset"
	Filename = "filename"
	Micalg   = "micalg"
	Protocol = "protocol"
)

// Value represents a parameterized header body: a primary value followed
// by zero or more name=value parameters, as found in the Content-type and
// Content-disposition headers.
type Value struct {
	v      string
	params map[string]string
}

// New constructs a Value from a primary value and zero or more parameter
// maps. Later maps override earlier ones where names collide.
func New(v string, params ...map[string]string) *Value {
	ps := make(map[string]string)
	for _, p := range params {
		for n, pv := range p {
			ps[strings.ToLower(n)] = pv
		}
	}
	return &Value{v: v, params: ps}
}

// Parse parses a parameterized header body. It returns an error when the
// body cannot be parsed at all.
func Parse(body string) (*Value, error) {
	v, ps, err := mime.ParseMediaType(body)
	if err != nil {
		return nil, err
	}
	return &Value{v: v, params: ps}, nil
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() *Value {
	return New(v.v, v.params)
}

// Value returns the primary value: the media type of a Content-type
// header or the presentation of a Content-disposition header.
func (v *Value) Value() string {
	return v.v
}

// MediaType is a synonym for Value with Content-type semantics.
func (v *Value) MediaType() string {
	return v.v
}

// Presentation is a synonym for Value with Content-disposition semantics.
func (v *Value) Presentation() string {
	return v.v
}

// Type returns the part of the media type before the slash, or an empty
// string if the primary value has no slash.
func (v *Value) Type() string {
	if t, _, ok := strings.Cut(v.v, "/"); ok {
		return t
	}
	return ""
}

// Subtype returns the part of the media type after the slash, or an empty
// string if the primary value has no slash.
func (v *Value) Subtype() string {
	if _, s, ok := strings.Cut(v.v, "/"); ok {
		return s
	}
	return ""
}

// Parameters returns a copy of the parameters attached to the value.
func (v *Value) Parameters() map[string]string {
	ps := make(map[string]string, len(v.params))
	for n, pv := range v.params {
		ps[n] = pv
	}
	return ps
}

// Parameter returns the named parameter or an empty string if it is not
// set. Parameter names are case-insensitive.
func (v *Value) Parameter(name string) string {
	return v.params[strings.ToLower(name)]
}

// Charset returns the charset parameter.
func (v *Value) Charset() string {
	return v.Parameter(Charset)
}

// Boundary returns the boundary parameter.
func (v *Value) Boundary() string {
	return v.Parameter(Boundary)
}

// Filename returns the filename parameter.
func (v *Value) Filename() string {
	return v.Parameter(Filename)
}

// String renders the value and its parameters in header body form.
func (v *Value) String() string {
	return mime.FormatMediaType(v.v, v.params)
}

// Modification is an operation that alters a Value during Modify().
type Modification func(*Value)

// Modify clones the given value and applies each modification to the
// clone in order, returning the modified clone.
func Modify(v *Value, changes ...Modification) *Value {
	out := v.Clone()
	for _, change := range changes {
		change(out)
	}
	return out
}

// Change replaces the primary value.
func Change(v string) Modification {
	return func(pv *Value) { pv.v = v }
}

// Set sets the named parameter.
func Set(name, value string) Modification {
	return func(pv *Value) { pv.params[strings.ToLower(name)] = value }
}

// Delete removes the named parameter.
func Delete(name string) Modification {
	return func(pv *Value) { delete(pv.params, strings.ToLower(name)) }
}
