// Package transfer encodes and decodes the transfer encodings named by
// the Content-transfer-encoding header. Only quoted-printable and base64
// actually transform bytes; binary, 7bit, and 8bit leave the bytes
// as-is.
//
// Here "decoded" means content transformed from the named
// Content-transfer-encoding back to its charset-encoded form, and
// "encoded" means the reverse.
package transfer
