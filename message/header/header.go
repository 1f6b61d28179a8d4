package header

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-partstream/message/header/param"
)

// These are standard headers defined in RFC 5322 and RFC 2183.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-disposition"
	ContentTransferEncoding = "Content-transfer-encoding"
	ContentType             = "Content-type"
	Date                    = "Date"
	From                    = "From"
	MessageID               = "Message-id"
	ReplyTo                 = "Reply-to"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// ParseTime provides the time parsing used by GetTime() and GetDate().
// It attempts the format specified by RFC 5322 first and falls back to
// parsing in many other formats seen in the wild.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime gets the given header field as a time.Time. It will attempt to
// parse the date in many formats, not just the format specified by RFC
// 5322 (though it will try that first).
//
// It will return the zero value and ErrNoSuchField if the header does
// not exist, the zero value and ErrManyFields if more than one field
// with the name is set, or a parse error.
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(body)
}

// SetTime replaces all fields with the given name with a single field
// holding the given time, formatted via time.RFC1123Z.
func (h *Header) SetTime(name string, t time.Time) {
	h.Set(name, t.Format(time.RFC1123Z))
}

// GetDate retrieves the Date header as a time.Time value.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate updates the Date header from the given time.Time value.
func (h *Header) SetDate(d time.Time) {
	h.SetTime(Date, d)
}

// ParseAddressList parses an address list field body. It attempts a
// strict parse first. If that fails, a lenient parse is attempted, which
// splits on commas and treats the last word of each piece as the email
// address, so it returns something for nearly any input. Badly formatted
// fields may therefore produce weird addresses rather than an error.
func ParseAddressList(body string) addr.AddressList {
	al, err := addr.ParseEmailAddressList(body)
	if err != nil {
		al = lenientAddressList(body)
	}
	return al
}

// lenientAddressList is the fallback parse used by ParseAddressList when
// the strict parser rejects the input (strict out, liberal in).
func lenientAddressList(body string) addr.AddressList {
	pieces := strings.Split(body, ",")
	as := make(addr.AddressList, 0, len(pieces))
	for _, orig := range pieces {
		words := strings.Fields(orig)
		if len(words) == 0 {
			continue
		}

		email := strings.Trim(words[len(words)-1], "<>")
		dn := strings.Join(words[:len(words)-1], " ")

		var spec *addr.AddrSpec
		if at := strings.Index(email, "@"); at > -1 {
			spec = addr.NewAddrSpecParsed(email[:at], email[at+1:], email)
		} else {
			spec = addr.NewAddrSpecParsed(email, "", email)
		}

		mb, err := addr.NewMailboxParsed(dn, spec, "", orig)
		if err != nil {
			continue
		}
		as = append(as, mb)
	}
	return as
}

// GetAddressList will return an addr.AddressList for the named field.
// This method works hard to avoid parse errors and tries to accept
// anything, so a badly formatted address field might return a weird
// address value.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return ErrManyFields if the field is set more than
// once on the header.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}
	return ParseAddressList(body), nil
}

// SetAddressList will replace all existing header fields with the given
// name with a single header containing the given addr.AddressList.
func (h *Header) SetAddressList(name string, body ...addr.Address) {
	h.Set(name, addr.AddressList(body).String())
}

// setAddress allows the setting of an address field either from a string
// or from an address list or fails with an error.
func (h *Header) setAddress(n string, as []any) error {
	var al addr.AddressList
	for _, a := range as {
		switch v := a.(type) {
		case string:
			add, err := addr.ParseEmailAddress(v)
			if err != nil {
				return err
			}
			al = append(al, add)
		case addr.Address:
			al = append(al, v)
		default:
			return ErrWrongAddressType
		}
	}
	h.SetAddressList(n, al...)
	return nil
}

// GetFrom returns the From address field as an addr.AddressList.
func (h *Header) GetFrom() (addr.AddressList, error) {
	return h.GetAddressList(From)
}

// SetFrom sets the From address field with either an addr.AddressList or
// a string. It fails with an error if something other than those types
// is provided or if the given string fails to strictly parse.
func (h *Header) SetFrom(a ...any) error {
	return h.setAddress(From, a)
}

// GetTo returns the To address field as an addr.AddressList.
func (h *Header) GetTo() (addr.AddressList, error) {
	return h.GetAddressList(To)
}

// SetTo sets the To address field with either an addr.AddressList or a
// string.
func (h *Header) SetTo(a ...any) error {
	return h.setAddress(To, a)
}

// GetCc returns the Cc address field as an addr.AddressList.
func (h *Header) GetCc() (addr.AddressList, error) {
	return h.GetAddressList(Cc)
}

// SetCc sets the Cc address field with either an addr.AddressList or a
// string.
func (h *Header) SetCc(a ...any) error {
	return h.setAddress(Cc, a)
}

// GetBcc returns the Bcc address field as an addr.AddressList.
func (h *Header) GetBcc() (addr.AddressList, error) {
	return h.GetAddressList(Bcc)
}

// SetBcc sets the Bcc address field with either an addr.AddressList or a
// string.
func (h *Header) SetBcc(a ...any) error {
	return h.setAddress(Bcc, a)
}

// GetReplyTo returns the Reply-to address field as an addr.AddressList.
func (h *Header) GetReplyTo() (addr.AddressList, error) {
	return h.GetAddressList(ReplyTo)
}

// SetReplyTo sets the Reply-to address field with either an
// addr.AddressList or a string.
func (h *Header) SetReplyTo(a ...any) error {
	return h.setAddress(ReplyTo, a)
}

// GetSender returns the Sender address field as an addr.AddressList.
func (h *Header) GetSender() (addr.AddressList, error) {
	return h.GetAddressList(Sender)
}

// SetSender sets the Sender address field with either an
// addr.AddressList or a string.
func (h *Header) SetSender(a ...any) error {
	return h.setAddress(Sender, a)
}

// GetSubject returns the value of the Subject header field.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// SetSubject replaces the Subject header field.
func (h *Header) SetSubject(s string) {
	h.Set(Subject, s)
}

// GetMessageID returns the message ID found in the Message-id header, if
// any.
func (h *Header) GetMessageID() (string, error) {
	return h.Get(MessageID)
}

// SetMessageID sets the Message-id header of the message header.
func (h *Header) SetMessageID(ref string) {
	h.Set(MessageID, ref)
}

// GetParamValue will return a param.Value for the header field matching
// the given name.
//
// This will return ErrNoSuchField if no field with the given name is
// present, ErrManyFields if more than one field with the given name is
// found, or an error if it is unable to parse a param.Value.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}
	return param.Parse(body)
}

// SetParamValue will replace all existing header fields with the given
// name with a single param.Value header containing the given value.
func (h *Header) SetParamValue(name string, v *param.Value) {
	h.Set(name, v.String())
}

// getParamValueValue reads the primary value of the param.Value header
// or returns an error.
func (h *Header) getParamValueValue(name string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}
	return pv.Value(), nil
}

// setParamValueValue sets the primary value of the param.Value header,
// preserving any parameters already set on it.
func (h *Header) setParamValueValue(name, v string) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		pv = param.New(v)
	} else {
		pv = param.Modify(pv, param.Change(v))
	}
	h.SetParamValue(name, pv)
}

// getParamValueParam gets a parameter value of the param.Value header or
// returns an error.
func (h *Header) getParamValueParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	if v := pv.Parameter(p); v != "" {
		return v, nil
	}
	return "", ErrNoSuchFieldParameter
}

// setParamValueParam sets a parameter value of the param.Value header.
// The header must already exist before calling this method.
func (h *Header) setParamValueParam(name, p, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return err
	}
	h.SetParamValue(name, param.Modify(pv, param.Set(p, v)))
	return nil
}

// GetContentType returns the Content-type header as a param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// SetContentType replaces the Content-type with the given param.Value.
func (h *Header) SetContentType(v *param.Value) {
	h.SetParamValue(ContentType, v)
}

// GetMediaType returns the MIME type set in the Content-type header
// (other parameters will not be returned).
func (h *Header) GetMediaType() (string, error) {
	return h.getParamValueValue(ContentType)
}

// SetMediaType replaces the MIME type on the Content-type header,
// creating the header if it has not been set yet. Any other parameters
// already set on the header will be preserved.
func (h *Header) SetMediaType(mt string) {
	h.setParamValueValue(ContentType, mt)
}

// GetCharset gets the charset parameter from the Content-type header
// field.
//
// This method returns an empty string with ErrNoSuchField if no field is
// present in the header and an empty string with ErrNoSuchFieldParameter
// if the field is present but the parameter is not set on it.
func (h *Header) GetCharset() (string, error) {
	return h.getParamValueParam(ContentType, param.Charset)
}

// SetCharset sets the charset parameter on the Content-type header. This
// method fails with ErrNoSuchField if the field is not set on the
// header.
func (h *Header) SetCharset(c string) error {
	return h.setParamValueParam(ContentType, param.Charset, c)
}

// GetBoundary gets the boundary parameter from the Content-type header
// field.
func (h *Header) GetBoundary() (string, error) {
	return h.getParamValueParam(ContentType, param.Boundary)
}

// SetBoundary sets the boundary parameter on the Content-type header.
// This method fails with ErrNoSuchField if the field is not set on the
// header.
func (h *Header) SetBoundary(b string) error {
	return h.setParamValueParam(ContentType, param.Boundary, b)
}

// GetContentDisposition returns the Content-disposition header as a
// param.Value.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// SetContentDisposition sets the Content-disposition to a new value from
// a param.Value.
func (h *Header) SetContentDisposition(v *param.Value) {
	h.SetParamValue(ContentDisposition, v)
}

// GetPresentation returns the primary value of the Content-disposition
// header, describing what the function of this part of the message is,
// such as "inline" or "attachment".
func (h *Header) GetPresentation() (string, error) {
	return h.getParamValueValue(ContentDisposition)
}

// SetPresentation sets the disposition value of the Content-disposition
// header field, creating the header if it has not been set yet. Any
// other parameters already set on the header will be preserved.
func (h *Header) SetPresentation(d string) {
	h.setParamValueValue(ContentDisposition, d)
}

// GetFilename gets the filename parameter of the Content-disposition
// header.
func (h *Header) GetFilename() (string, error) {
	return h.getParamValueParam(ContentDisposition, param.Filename)
}

// SetFilename sets the filename parameter of the Content-disposition
// header. This method fails with ErrNoSuchField if the field is not set
// on the header.
func (h *Header) SetFilename(f string) error {
	return h.setParamValueParam(ContentDisposition, param.Filename, f)
}

// GetTransferEncoding returns the content of the
// Content-transfer-encoding header.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}

// SetTransferEncoding replaces the Content-transfer-encoding with the
// given value.
func (h *Header) SetTransferEncoding(b string) {
	h.Set(ContentTransferEncoding, b)
}
