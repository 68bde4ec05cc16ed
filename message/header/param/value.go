package param

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-Type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-Type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in
	// the Content-Disposition header.
	Filename = "filename"

	// Name is the name of the name parameter that may be present in the
	// Content-Type header of an attachment.
	Name = "name"
)

// ErrEmptyValue is returned by Parse when the field body is blank.
var ErrEmptyValue = errors.New("parameterized value is empty")

// Param is a single parameter following the primary value. A bare token with
// no "=" has HasValue set to false.
type Param struct {
	Key      string
	Value    string
	HasValue bool
}

// Value represents a parsed parameterized header field, such as is used in the
// Content-Type and Content-Disposition headers. A Value is immutable.
type Value struct {
	v  string
	ps []Param
}

// Parse takes a header field body and breaks it into a primary value and an
// ordered list of parameters. Every segment between semicolons is trimmed of
// surrounding whitespace. Each segment after the first is split on its first
// "=" into a key and value, which are trimmed too. Empty segments are skipped.
//
// It returns ErrEmptyValue if the body is empty once trimmed.
func Parse(body string) (*Value, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyValue
	}

	segs := strings.Split(body, ";")
	pv := &Value{
		v:  strings.TrimSpace(segs[0]),
		ps: make([]Param, 0, len(segs)-1),
	}

	for _, seg := range segs[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		k, v, found := strings.Cut(seg, "=")
		pv.ps = append(pv.ps, Param{
			Key:      strings.TrimSpace(k),
			Value:    strings.TrimSpace(v),
			HasValue: found,
		})
	}

	return pv, nil
}

// New creates a new parameterized value with the given parameters.
func New(v string, ps ...Param) *Value {
	return &Value{v, append([]Param{}, ps...)}
}

// Value returns the primary value. This is the value before the first
// semicolon.
func (pv *Value) Value() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-Type value,
// e.g., "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// Disposition is a synonym for Value() and returns the Content-Disposition,
// usually "inline" or "attachment".
func (pv *Value) Disposition() string {
	return pv.v
}

// Type is only intended for use with the Content-Type header. It returns the
// lowercased portion of MediaType() before the slash or an empty string if
// there is no slash.
//
// For example, if MediaType() returns "image/jpeg", this method will return
// "image".
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return strings.ToLower(pv.v[:ix])
	}
	return ""
}

// Subtype is only intended for use with the Content-Type header. It returns
// the lowercased portion of MediaType() after the slash or an empty string if
// there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return strings.ToLower(pv.v[ix+1:])
	}
	return ""
}

// Params returns a copy of the parameters in the order they were given.
func (pv *Value) Params() []Param {
	return append([]Param{}, pv.ps...)
}

// Lookup finds the first parameter whose key matches k case-insensitively and
// returns its value unquoted. An RFC 2231 form of the parameter, k* or the
// k*0, k*1, ... sections, takes precedence and is returned decoded. The
// boolean is false if there is no such parameter or if it is a bare token.
func (pv *Value) Lookup(k string) (string, bool) {
	if v, ok := pv.extended(k); ok {
		return v, true
	}

	if v, ok := pv.raw(k); ok {
		return Unquote(v), true
	}
	return "", false
}

// raw returns the value of the first parameter named k as written.
func (pv *Value) raw(k string) (string, bool) {
	for _, p := range pv.ps {
		if strings.EqualFold(p.Key, k) {
			return p.Value, p.HasValue
		}
	}
	return "", false
}

// Parameter returns the unquoted value of the named parameter or an empty
// string.
func (pv *Value) Parameter(k string) string {
	v, _ := pv.Lookup(k)
	return v
}

// Filename returns the value of the "filename" parameter. It is intended for
// use with the Content-Disposition header.
func (pv *Value) Filename() string {
	return pv.Parameter(Filename)
}

// Name returns the value of the "name" parameter.
func (pv *Value) Name() string {
	return pv.Parameter(Name)
}

// Charset returns the value of the "charset" parameter.
func (pv *Value) Charset() string {
	return pv.Parameter(Charset)
}

// Boundary returns the value of the "boundary" parameter.
func (pv *Value) Boundary() string {
	return pv.Parameter(Boundary)
}

// String returns the serialized value including the primary value and all
// parameters, in order.
func (pv *Value) String() string {
	var sb strings.Builder
	sb.WriteString(pv.v)
	for _, p := range pv.ps {
		if p.HasValue {
			_, _ = fmt.Fprintf(&sb, "; %s=%s", p.Key, p.Value)
		} else {
			_, _ = fmt.Fprintf(&sb, "; %s", p.Key)
		}
	}
	return sb.String()
}

// Bytes returns the same as String() as a slice of bytes.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Unquote removes a single pair of matching double quotes surrounding s and
// the backslash of each quoted-pair between them. The value is returned
// unchanged otherwise.
func Unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}

	s = s[1 : len(s)-1]
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Quote wraps s in double quotes, escaping any backslash or double quote
// inside it.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
