package field

import (
	"bytes"
	"fmt"
)

// Field is a single header field. It holds the semantic name and body, which
// are used for lookups, and the raw bytes of the field as it was read (or as
// it was given verbatim), which are used for output.
type Field struct {
	name  string
	body  string
	value string
	raw   []byte
}

// New returns a field with the given name and body. On output, it is rendered
// as "Name: body" with non-ASCII text encoded as EncodeFor() decides for the
// name. A body may contain folding, which is kept on output but removed from
// the value returned by Body().
func New(name, body string) *Field {
	return &Field{
		name:  name,
		body:  string(unfold([]byte(body))),
		value: body,
	}
}

// NewVerbatim returns a field whose value is written exactly as given after
// the colon, whitespace and folding included. The body used for lookups is
// the unfolded value with surrounding whitespace removed.
func NewVerbatim(name, value string) *Field {
	raw := make([]byte, 0, len(name)+len(value)+1)
	raw = append(raw, name...)
	raw = append(raw, ':')
	raw = append(raw, value...)
	return &Field{
		name: name,
		body: string(bytes.TrimSpace(unfold([]byte(value)))),
		raw:  raw,
	}
}

// Name returns the name of the header field.
func (f *Field) Name() string {
	return f.name
}

// Body returns the unfolded and decoded value of the header field.
func (f *Field) Body() string {
	return f.body
}

// Raw returns the original bytes of the field without the trailing line
// break. It returns nil if the field was created with New().
func (f *Field) Raw() []byte {
	return f.raw
}

// String returns the complete header field as a string.
func (f *Field) String() string {
	if f.raw != nil {
		return string(f.raw)
	}
	return fmt.Sprintf("%s: %s", f.name, EncodeFor(f.name, f.value))
}

// Bytes returns the complete header field as a slice of bytes.
func (f *Field) Bytes() []byte {
	if f.raw != nil {
		return f.raw
	}
	return []byte(f.String())
}

// Clone returns a copy of the field.
func (f *Field) Clone() *Field {
	c := &Field{name: f.name, body: f.body, value: f.value}
	if f.raw != nil {
		c.raw = make([]byte, len(f.raw))
		copy(c.raw, f.raw)
	}
	return c
}
