// Package message provides the hierarchical model of a decomposed
// multipart document. A Part is a tree node holding headers, a content
// locator (a window into the shared raw document, or an owned buffer
// after mutation), a weak reference to its parent, and ordered children.
// A Message is the distinguished root Part; it adds document-level
// queries (nth text or HTML part, attachment enumeration, the signature
// part of a signed envelope) and structural mutations (set or remove
// content parts, add attachments, convert to a signed envelope).
//
// The tree is built by an external scanning collaborator that registers
// the raw document with a registry.Registry and computes the byte range
// of each part. This package takes the tree from there: traversal runs
// depth-first in document order, filtered by composable Predicate
// values, and a part's bytes are read by opening a window over its
// locator.
//
// Tree mutation and traversal of the same Message are not internally
// synchronized; concurrent use requires external synchronization.
package message
