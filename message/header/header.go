package header

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mimetree/message/header/field"
	"github.com/zostay/go-mimetree/message/header/param"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the
	// operation being performed failed because the header exists, but a
	// sub-field of the header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")
)

// These are the header field names used by this module.
const (
	AutoSubmitted           = "Auto-Submitted"
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-Disposition"
	ContentID               = "Content-Id"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-Reply-To"
	MessageID               = "Message-Id"
	Precedence              = "Precedence"
	References              = "References"
	ReplyTo                 = "Reply-To"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// WhitespacePolicy decides how the value of a Pair becomes a field.
type WhitespacePolicy int

const (
	// Normalize trims the value and renders the field as "Name: value".
	Normalize WhitespacePolicy = iota

	// Preserve renders the value exactly as given after the colon.
	Preserve
)

// Pair is a header field name and value waiting to be added to a header.
type Pair struct {
	Name  string
	Value string
}

func (p Pair) field(policy WhitespacePolicy) *field.Field {
	if policy == Preserve {
		return field.NewVerbatim(p.Name, p.Value)
	}
	return field.New(p.Name, strings.TrimSpace(p.Value))
}

// Header is an ordered list of header fields. Lookups by name are
// case-insensitive, duplicate names are kept, and the case of each name is
// preserved for output. Reads return the last field of a name.
//
// The zero value is an empty header using DefaultBreak.
type Header struct {
	lbr          Break
	badStart     []byte
	unterminated bool
	fields       []*field.Field
}

// New returns an empty header with the given line break.
func New(lbr Break) *Header {
	return &Header{lbr: lbr}
}

// OfList builds a header from the given pairs, in order, using the policy to
// turn each pair into a field.
func OfList(policy WhitespacePolicy, pairs ...Pair) *Header {
	h := &Header{fields: make([]*field.Field, 0, len(pairs)+2)}
	for _, p := range pairs {
		h.fields = append(h.fields, p.field(policy))
	}
	return h
}

// Break returns the line break used to separate header fields and terminate the
// header.
func (h *Header) Break() Break {
	if h.lbr == Meh {
		return DefaultBreak
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header.
func (h *Header) SetBreak(lbr Break) {
	h.lbr = lbr
}

// Len returns the number of fields in the header.
func (h *Header) Len() int {
	return len(h.fields)
}

// Fields returns all the fields in the header.
func (h *Header) Fields() []*field.Field {
	return append([]*field.Field{}, h.fields...)
}

// GetField returns the nth field or nil.
func (h *Header) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetIndexesNamed returns the indexes of fields with the given name.
func (h *Header) GetIndexesNamed(name string) []int {
	is := make([]int, 0, 2)
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// Get retrieves the body of the last field with the given name.
//
// If the named field is not set in the header, it will return an empty string
// with ErrNoSuchField.
func (h *Header) Get(name string) (string, error) {
	for i := len(h.fields) - 1; i >= 0; i-- {
		if strings.EqualFold(h.fields[i].Name(), name) {
			return h.fields[i].Body(), nil
		}
	}
	return "", ErrNoSuchField
}

// GetAll retrieves the bodies of every field with the given name, in header
// order.
//
// It returns nil with ErrNoSuchField if no field with the given name is set on
// the header.
func (h *Header) GetAll(name string) ([]string, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	bodies := make([]string, len(ixs))
	for i, ix := range ixs {
		bodies[i] = h.fields[ix].Body()
	}
	return bodies, nil
}

// Add appends a new field to the bottom of the header. Existing fields of the
// same name are left alone.
func (h *Header) Add(name, body string) {
	h.fields = append(h.fields, Pair{name, body}.field(Normalize))
}

// AddAll appends every pair to the bottom of the header, in order.
func (h *Header) AddAll(pairs ...Pair) {
	for _, p := range pairs {
		h.fields = append(h.fields, p.field(Normalize))
	}
}

// AddHeader appends a copy of every field of other to the bottom of this
// header, in order.
func (h *Header) AddHeader(other *Header) {
	for _, f := range other.fields {
		h.fields = append(h.fields, f.Clone())
	}
}

// Delete removes every field with the given name. It returns the number of
// fields removed.
func (h *Header) Delete(name string) int {
	kept := h.fields[:0]
	for _, f := range h.fields {
		if !strings.EqualFold(f.Name(), name) {
			kept = append(kept, f)
		}
	}

	n := len(h.fields) - len(kept)
	for i := len(kept); i < len(h.fields); i++ {
		h.fields[i] = nil
	}
	h.fields = kept
	return n
}

// SetAtBottom removes every field with the given name and then appends a new
// field with that name and body at the bottom of the header.
func (h *Header) SetAtBottom(name, body string) {
	h.Delete(name)
	h.Add(name, body)
}

// Clone returns a deep copy of the header object.
func (h *Header) Clone() *Header {
	c := &Header{
		lbr:          h.lbr,
		unterminated: h.unterminated,
		fields:       make([]*field.Field, len(h.fields), len(h.fields)+2),
	}
	if h.badStart != nil {
		c.badStart = append([]byte{}, h.badStart...)
	}
	for i, f := range h.fields {
		c.fields[i] = f.Clone()
	}
	return c
}

// BadStart returns the junk that preceded the first field when the header was
// parsed. It is written back out ahead of the fields.
func (h *Header) BadStart() []byte {
	return h.badStart
}

// WriteFieldsTo writes the fields of the header without the blank line that
// terminates it.
func (h *Header) WriteFieldsTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	h.writeFields(&buf)
	return buf.WriteTo(w)
}

func (h *Header) writeFields(buf *bytes.Buffer) {
	lbr := h.Break().Bytes()
	buf.Write(h.badStart)
	for i, f := range h.fields {
		buf.Write(f.Bytes())
		if !h.unterminated || i < len(h.fields)-1 {
			buf.Write(lbr)
		}
	}
}

// WriteTo writes the header, including the blank line that terminates it.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	h.writeFields(&buf)
	if h.unterminated && len(h.fields) > 0 {
		buf.Write(h.Break().Bytes())
	}
	buf.Write(h.Break().Bytes())
	return buf.WriteTo(w)
}

// Bytes returns the header as a slice of bytes, including the terminating
// blank line.
func (h *Header) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = h.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the header as a string.
func (h *Header) String() string {
	return string(h.Bytes())
}

// GetTime parses the last field with the given name as a date using
// ParseTime().
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(body)
}

// GetDate parses the Date field.
func (h *Header) GetDate() (time.Time, error) { return h.GetTime(Date) }

// GetAddressList parses the last field with the given name as an address list
// using ParseAddressList(). It only fails when the field is missing.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}
	return ParseAddressList(body), nil
}

// GetFrom parses the From field.
func (h *Header) GetFrom() (addr.AddressList, error) { return h.GetAddressList(From) }

// GetTo parses the To field.
func (h *Header) GetTo() (addr.AddressList, error) { return h.GetAddressList(To) }

// GetCc parses the Cc field.
func (h *Header) GetCc() (addr.AddressList, error) { return h.GetAddressList(Cc) }

// GetReplyTo parses the Reply-To field.
func (h *Header) GetReplyTo() (addr.AddressList, error) { return h.GetAddressList(ReplyTo) }

// GetParamValue parses the last field with the given name as a parameterized
// value, such as Content-Type or Content-Disposition.
//
// It returns ErrNoSuchField if the field is not present and param.ErrEmptyValue
// if the field is present but blank.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}
	return param.Parse(body)
}

// lookupParam returns parameter p of the named field. ErrNoSuchField means
// there is no such field and ErrNoSuchFieldParameter that it lacks p.
func (h *Header) lookupParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}
	if v, ok := pv.Lookup(p); ok {
		return v, nil
	}
	return "", ErrNoSuchFieldParameter
}

// GetContentType returns the parsed Content-Type field.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// GetMediaType returns the media type of the Content-Type field.
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return pv.MediaType(), nil
}

// GetCharset returns the charset parameter of the Content-Type field.
func (h *Header) GetCharset() (string, error) {
	return h.lookupParam(ContentType, param.Charset)
}

// GetBoundary returns the boundary parameter of the Content-Type field.
func (h *Header) GetBoundary() (string, error) {
	return h.lookupParam(ContentType, param.Boundary)
}

// GetContentDisposition returns the parsed Content-Disposition field.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// GetPresentation returns the disposition of the Content-Disposition field,
// usually "inline" or "attachment".
func (h *Header) GetPresentation() (string, error) {
	pv, err := h.GetContentDisposition()
	if err != nil {
		return "", err
	}
	return pv.Disposition(), nil
}

// GetFilename returns the filename parameter of the Content-Disposition field.
func (h *Header) GetFilename() (string, error) {
	return h.lookupParam(ContentDisposition, param.Filename)
}

// GetSubject returns the Subject field.
func (h *Header) GetSubject() (string, error) { return h.Get(Subject) }

// GetMessageID returns the Message-Id field.
func (h *Header) GetMessageID() (string, error) { return h.Get(MessageID) }

// GetInReplyTo returns the In-Reply-To field.
func (h *Header) GetInReplyTo() (string, error) { return h.Get(InReplyTo) }

// GetContentID returns the Content-Id field.
func (h *Header) GetContentID() (string, error) { return h.Get(ContentID) }

// GetTransferEncoding returns the Content-Transfer-Encoding field.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}
