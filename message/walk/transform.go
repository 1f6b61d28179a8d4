package walk

import (
	"errors"
	"fmt"

	"github.com/zostay/go-partstream/message"
)

var (
	// ErrSkip may be returned by a Transformer callback to signal that the
	// part should be dropped from the transformed tree entirely.
	ErrSkip = errors.New("skip part")

	// ErrCopy may be returned by a Transformer callback to signal that the
	// part should be carried over as-is.
	ErrCopy = errors.New("copy part")

	// ErrNilNil is reported by AndTransform when a Transformer callback
	// returns no parts and no error.
	ErrNilNil = errors.New("no parts and no error")
)

// BadTransformationError is used when transformation needs to fail with
// an error describing a misbehaving Transformer.
type BadTransformationError struct {
	Cause   error
	Message string
}

// Error returns the error message describing the bad transformation.
func (b *BadTransformationError) Error() string {
	return fmt.Sprintf("%s: %v", b.Message, b.Cause)
}

// Unwrap returns the error that caused the bad transformation.
func (b *BadTransformationError) Unwrap() error {
	return b.Cause
}

// Transformer is a callback passed to AndTransform() to rebuild a part
// tree. It is given each original part and the ancestry of that part in
// the original tree, and returns the zero or more parts that stand in
// for it in the transformed tree.
//
// Returning ErrSkip drops the part, returning ErrCopy carries it over
// unchanged, and any other error terminates the transformation. A
// return of no parts and no error is a mistake and fails with
// ErrNilNil.
type Transformer func(part *message.Part, parents []*message.Part) ([]*message.Part, error)

// AndTransform rebuilds the given part tree depth-first in document
// order, parents before children, and returns the parts standing in for
// the given part. A part the Transformer turns into one or more
// containers gets its original children transformed and attached to
// each such container; a container whose children are all skipped is
// itself dropped, so the transformation never produces an empty
// multipart.
func AndTransform(transformer Transformer, part *message.Part) ([]*message.Part, error) {
	parents := make([]*message.Part, 0, 10)
	return andTransform(transformer, part, parents)
}

func andTransform(
	transformer Transformer,
	part *message.Part,
	parents []*message.Part,
) ([]*message.Part, error) {
	outs, err := transformer(part, parents)
	outs, err = handleTransformerReturn(part, outs, err)
	if err != nil {
		return nil, err
	}

	if !part.IsMultipart() {
		return outs, nil
	}

	isContainer := message.MediaTypePrefix(message.MultipartPrefix)
	parents = append(parents, part)

	kept := outs[:0]
	for _, out := range outs {
		if !isContainer.Match(out) {
			kept = append(kept, out)
			continue
		}

		for _, sub := range part.Parts() {
			subOuts, err := andTransform(transformer, sub, parents)
			if err != nil {
				return nil, err
			}
			out.AddPart(subOuts...)
		}

		if len(out.Parts()) > 0 {
			kept = append(kept, out)
		}
	}

	return kept, nil
}

// handleTransformerReturn classifies a Transformer's return into
// replacement parts, a sentinel outcome, or a failure.
func handleTransformerReturn(
	orig *message.Part,
	parts []*message.Part,
	err error,
) ([]*message.Part, error) {
	switch {
	case parts == nil && err == nil:
		return nil, &BadTransformationError{ErrNilNil, "transformer error"}
	case parts != nil && err != nil:
		return nil, &BadTransformationError{err, "transformer returned both parts and error"}
	case parts != nil:
		return parts, nil
	case errors.Is(err, ErrSkip):
		return []*message.Part{}, nil
	case errors.Is(err, ErrCopy):
		c := CopyPart(orig)
		return []*message.Part{c}, nil
	default:
		return nil, err
	}
}

// CopyPart carries an original part over into a transformed tree: the
// headers are cloned and the content is carried by reference, a window
// locator for window-backed parts or the owned buffer for the rest. A
// container copies as an empty container; AndTransform refills its
// children.
func CopyPart(orig *message.Part) *message.Part {
	h := orig.Header.Clone()

	if loc, ok := orig.Window(); ok {
		return message.NewWindowPart(h, loc)
	}
	if content, ok := orig.Content(); ok {
		return message.NewContentPart(h, content)
	}
	return message.NewContentPart(h, nil)
}
