// Package param deals with parameterized header bodies: the Content-type
// and Content-disposition headers, whose values carry a primary value
// followed by name=value parameters. It also provides helpers for
// breaking down the MIME types set in the Content-type header.
package param
