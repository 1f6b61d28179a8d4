// Package header provides the headers collection attached to each part
// of a document: an ordered multimap of name/body fields with
// case-insensitive name lookup, plus convenience methods for the fields a
// part tree's consumers read most, such as the Content-type media type,
// the Content-disposition presentation and filename, dates, and address
// fields.
//
// Parsing a header out of raw bytes, decoding RFC 2047 words, and
// charset handling of field bodies are the job of an external parsing
// collaborator. This package works with already-decoded field bodies.
package header
