package message

import "strings"

// Predicate selects parts during traversal. Predicates are plain values
// describing a criterion, so they compose and compare cleanly; build
// them from the constructors below and combine them with And, Or, and
// Not.
type Predicate interface {
	Match(p *Part) bool
}

type anyPart struct{}

func (anyPart) Match(*Part) bool { return true }

// Anything matches every part.
func Anything() Predicate {
	return anyPart{}
}

type mediaTypeIs string

func (m mediaTypeIs) Match(p *Part) bool {
	mt, err := p.GetMediaType()
	return err == nil && strings.EqualFold(mt, string(m))
}

// MediaType matches parts whose Content-type media type equals the given
// type, compared case-insensitively.
func MediaType(mt string) Predicate {
	return mediaTypeIs(mt)
}

type mediaTypeHasPrefix string

func (m mediaTypeHasPrefix) Match(p *Part) bool {
	mt, err := p.GetMediaType()
	return err == nil && strings.HasPrefix(strings.ToLower(mt), strings.ToLower(string(m)))
}

// MediaTypePrefix matches parts whose Content-type media type starts
// with the given prefix, compared case-insensitively. Use "text/" to
// match all textual parts.
func MediaTypePrefix(prefix string) Predicate {
	return mediaTypeHasPrefix(prefix)
}

type dispositionIs string

func (d dispositionIs) Match(p *Part) bool {
	pr, err := p.GetPresentation()
	return err == nil && strings.EqualFold(pr, string(d))
}

// Disposition matches parts whose Content-disposition value equals the
// given value, compared case-insensitively. Parts without a
// Content-disposition header never match.
func Disposition(d string) Predicate {
	return dispositionIs(d)
}

type containerIs bool

func (c containerIs) Match(p *Part) bool {
	return p.IsMultipart() == bool(c)
}

// Container matches multipart container parts.
func Container() Predicate {
	return containerIs(true)
}

// NoContainer matches content leaves, excluding multipart containers.
func NoContainer() Predicate {
	return containerIs(false)
}

type allOf []Predicate

func (ps allOf) Match(p *Part) bool {
	for _, pred := range ps {
		if !pred.Match(p) {
			return false
		}
	}
	return true
}

// And matches parts matching every given predicate.
func And(preds ...Predicate) Predicate {
	return allOf(preds)
}

type oneOf []Predicate

func (ps oneOf) Match(p *Part) bool {
	for _, pred := range ps {
		if pred.Match(p) {
			return true
		}
	}
	return false
}

// Or matches parts matching at least one of the given predicates.
func Or(preds ...Predicate) Predicate {
	return oneOf(preds)
}

type not struct{ pred Predicate }

func (n not) Match(p *Part) bool {
	return !n.pred.Match(p)
}

// Not matches parts the given predicate does not match.
func Not(pred Predicate) Predicate {
	return not{pred}
}

// Attachment matches the parts a consumer would list as attachments: a
// leaf part is an attachment unless it is inline text. A text part
// explicitly marked attachment matches; a text part with no disposition
// at all also matches, since only an explicit inline disposition marks
// text as body content.
func Attachment() Predicate {
	return And(
		NoContainer(),
		Not(And(
			MediaTypePrefix("text/"),
			Disposition(DispositionInline),
		)),
	)
}
