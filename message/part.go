package message

import (
	"bytes"
	"io"

	"github.com/zostay/go-mimetree/message/header"
)

// Part is a node in a message tree: a header and the raw body bytes that
// follow it. The body is kept exactly as read or as built. Use ParseContent()
// to find out whether it holds data, a nested message, or more parts.
//
// A Part is treated as immutable once built or parsed. Methods that change a
// part, such as ModifyHeader(), return a new Part. The tree may therefore be
// shared freely between goroutines for reading.
type Part struct {
	header *header.Header
	body   []byte

	// headerOnly is set when the part was parsed from input that never
	// reached a blank line. No blank line is written back out for it.
	headerOnly bool
}

// New returns a part with the given header and body. A nil header is treated
// as an empty header. The part takes ownership of both arguments.
func New(h *header.Header, body []byte) *Part {
	if h == nil {
		h = &header.Header{}
	}
	return &Part{header: h, body: body}
}

// Header returns the header of the part. The returned header must not be
// modified. Use ModifyHeader() to get a part with a different header.
func (p *Part) Header() *header.Header {
	return p.header
}

// Body returns the raw body bytes, still transfer encoded. The returned slice
// must not be modified.
func (p *Part) Body() []byte {
	return p.body
}

// HeaderOnly returns true if the part was parsed from input that had no
// blank line ending the header and so has no body at all.
func (p *Part) HeaderOnly() bool {
	return p.headerOnly
}

// ModifyHeader returns a new part sharing the body of this part with a copy of
// the header that has been passed through fn.
func (p *Part) ModifyHeader(fn func(h *header.Header)) *Part {
	h := p.header.Clone()
	fn(h)
	return &Part{header: h, body: p.body, headerOnly: p.headerOnly}
}

// WriteTo writes the header, the blank line ending it, and then the body to
// the given io.Writer.
func (p *Part) WriteTo(w io.Writer) (int64, error) {
	if p.headerOnly {
		return p.header.WriteFieldsTo(w)
	}

	n, err := p.header.WriteTo(w)
	if err != nil {
		return n, err
	}

	bn, err := w.Write(p.body)
	n += int64(bn)
	return n, err
}

// Bytes returns the serialized part.
func (p *Part) Bytes() []byte {
	buf := &bytes.Buffer{}
	_, _ = p.WriteTo(buf)
	return buf.Bytes()
}

// String returns the serialized part as a string.
func (p *Part) String() string {
	return string(p.Bytes())
}
