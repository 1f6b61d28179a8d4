// Package partstream provides random-access, byte-range-scoped read
// streams over the parts of an already-decomposed multipart document,
// such as a MIME email, together with the part tree that owns those byte
// ranges.
//
// A raw document is registered once with a registry.Registry, which hands
// back an opaque document id. Every part of the document records a
// (documentId, start, end) locator into that single shared resource. A
// consumer wanting the bytes of one part opens a window.Stream against
// the part's locator. Each stream keeps its own position and never reads
// outside its [start, end) slice, even though every stream for the same
// document shares one underlying handle and one underlying cursor.
//
// The message package supplies the tree: a message.Part holds headers, a
// content locator (or an owned buffer after mutation), a weak parent
// reference, and ordered children. The message.Message root adds
// document-level queries (text part, HTML part, attachments, the
// signature part of a multipart/signed envelope) and structural
// mutations (replace or remove content parts, add attachments, convert a
// message into a signed envelope).
//
// Scanning raw bytes to find the multipart boundaries in the first place
// is not part of this module. A scanner produces (start, end) offsets and
// a parsed header per part; this module takes it from there.
package partstream
