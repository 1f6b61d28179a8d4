// Package walk provides generic depth-first processing of a document's
// part tree, for consumers whose needs go beyond the predicate-filtered
// queries of the message package.
package walk

import "github.com/zostay/go-partstream/message"

// Processor is a callback passed to AndProcess() to do any kind of
// generic processing of a part and its sub-parts.
//
// The Processor is given the part to process and the ancestry of the
// part. If len(parents) is zero, this is the top-level part (i.e., the
// part AndProcess() was called upon, which might not be the root of the
// whole message).
//
// The Processor may return an error to cause AndProcess() to terminate
// immediately and return that error.
type Processor func(part *message.Part, parents []*message.Part) error

// AndProcess walks the part tree depth-first in document order and calls
// the given Processor for each part found, the given part included. It
// terminates once all parts have been processed and returns nil. If the
// Processor returns an error, it terminates early and returns that
// error.
func AndProcess(processor Processor, part *message.Part) error {
	parents := make([]*message.Part, 0, 10)
	return andProcess(processor, part, parents)
}

func andProcess(processor Processor, part *message.Part, parents []*message.Part) error {
	if err := processor(part, parents); err != nil {
		return err
	}

	if part.IsMultipart() {
		parents = append(parents, part)
		for _, subPart := range part.Parts() {
			if err := andProcess(processor, subPart, parents); err != nil {
				return err
			}
		}
	}

	return nil
}
