package message

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/mimetype"
	"github.com/zostay/go-mimetree/message/transfer"
)

// Content is what the body of a Part holds. It is always one of *Data,
// *Nested, or *Multipart.
type Content interface {
	isContent()
}

// Data is a leaf body: transfer encoded bytes.
type Data struct {
	Stream *transfer.OctetStream
}

// Nested is the body of a message/rfc822 part: a complete message.
type Nested struct {
	Message *Part
}

// Multipart is a body made of boundary delimited parts.
type Multipart struct {
	// Boundary is the token used to delimit the parts.
	Boundary string

	// Prologue holds the bytes before the opening delimiter, including the
	// line break that precedes the delimiter. A nil Prologue means the body had
	// no opening delimiter, so none is written.
	Prologue []byte

	// Epilogue holds the bytes after the closing delimiter. A nil Epilogue
	// means the body had no closing delimiter, so none is written.
	Epilogue []byte

	// ContainerHeaders is the header of the part that holds this body. It is
	// consulted for defaults while parsing the parts, as with
	// multipart/digest. Built multiparts have an empty one.
	ContainerHeaders *header.Header

	// Parts are the parts, in order.
	Parts []*Part
}

func (*Data) isContent()      {}
func (*Nested) isContent()    {}
func (*Multipart) isContent() {}

// defaultMediaType is the Content-Type assumed for a part that has none.
func defaultMediaType(container *header.Header) string {
	if container != nil {
		if mt, err := container.GetMediaType(); err == nil && strings.EqualFold(mt, mimetype.MultipartDigest) {
			return mimetype.MessageRFC822
		}
	}
	return mimetype.TextPlain
}

// transferEncoding returns the Content-Transfer-Encoding of the header or
// 7bit when there is none.
func transferEncoding(h *header.Header) transfer.Encoding {
	cte, err := h.GetTransferEncoding()
	if err != nil || strings.TrimSpace(cte) == "" {
		return transfer.Bit7
	}
	enc, _ := transfer.ParseEncoding(cte)
	return enc
}

// ParseContent parses the body of p to find out what it holds. The container
// is the header of the multipart holding p, if any. It supplies the default
// Content-Type when p has none: message/rfc822 inside a multipart/digest and
// text/plain otherwise.
//
// Only one level is parsed. The parts of a *Multipart and the message of a
// *Nested are returned as Parts whose own bodies may be passed back here.
//
// It fails with ErrNoBoundary when a multipart lacks a boundary parameter and
// with ErrMalformedMultipart when the boundary never occurs in the body. A
// message/rfc822 body that cannot be transfer decoded returns the decoding
// error.
func ParseContent(p *Part, container *header.Header, opts ...ParseOption) (Content, error) {
	pr := newParser(opts)
	h := p.Header()

	mt := defaultMediaType(container)
	ct, err := h.GetContentType()
	if err == nil && ct.MediaType() != "" {
		mt = strings.ToLower(ct.MediaType())
	}

	switch {
	case mimetype.IsMultipart(mt):
		boundary, _ := ct.Lookup("boundary")
		if boundary == "" {
			return nil, ErrNoBoundary
		}

		mp, err := pr.splitMultipart(p.Body(), boundary, h.Break())
		if err != nil {
			return nil, err
		}
		mp.ContainerHeaders = h
		return mp, nil

	case mt == mimetype.MessageRFC822:
		stream := &transfer.OctetStream{Encoding: transferEncoding(h), Content: p.Body()}
		raw := p.Body()
		if stream.Encoding == transfer.Base64 || stream.Encoding == transfer.QuotedPrintable {
			raw, err = stream.Decode()
			if err != nil {
				return nil, err
			}
		}

		msg, err := pr.parsePart(bytes.NewReader(raw), false)
		if err != nil {
			return nil, fmt.Errorf("nested message: %w", err)
		}
		return &Nested{Message: msg}, nil

	default:
		return &Data{
			Stream: &transfer.OctetStream{
				Encoding: transferEncoding(h),
				Content:  p.Body(),
			},
		}, nil
	}
}

// SetContent returns a new part with the header of p and a body serialized from
// c. The header is left alone except where it has to agree with c:
//
//   - for *Data, Content-Transfer-Encoding is set to the stream encoding when
//     they differ;
//   - for *Multipart, the Content-Type boundary parameter is set when it
//     differs from c.Boundary;
//   - for *Nested, the message is transfer encoded using the part's
//     Content-Transfer-Encoding.
func SetContent(p *Part, c Content) *Part {
	h := p.Header().Clone()
	buf := &bytes.Buffer{}

	switch v := c.(type) {
	case *Data:
		enc := v.Stream.Encoding
		if enc == transfer.None {
			enc = transfer.Bit7
		}
		if transferEncoding(h) != enc {
			h.SetAtBottom(header.ContentTransferEncoding, enc.String())
		}
		buf.Write(v.Stream.Content)

	case *Nested:
		raw := v.Message.Bytes()
		switch enc := transferEncoding(h); enc {
		case transfer.Base64, transfer.QuotedPrintable:
			buf.Write(transfer.Encode(raw, enc).Content)
		default:
			buf.Write(raw)
		}

	case *Multipart:
		if b, err := h.GetBoundary(); err != nil || b != v.Boundary {
			mt, err := h.GetMediaType()
			if err != nil || !mimetype.IsMultipart(mt) {
				mt = mimetype.MultipartMixed
			}
			h.SetAtBottom(header.ContentType, fmt.Sprintf(`%s; boundary="%s"`, mt, v.Boundary))
		}
		v.writeTo(buf, h.Break())
	}

	return &Part{header: h, body: buf.Bytes()}
}

// ToEmail returns a new part with the given header and a body serialized from
// c, as with SetContent.
func ToEmail(h *header.Header, c Content) *Part {
	return SetContent(New(h, nil), c)
}

// writeTo serializes the multipart body using the given line break.
func (m *Multipart) writeTo(buf *bytes.Buffer, br header.Break) {
	if m.Prologue != nil {
		buf.Write(m.Prologue)
		_, _ = fmt.Fprintf(buf, "--%s%s", m.Boundary, br)
	}

	for i, part := range m.Parts {
		if i > 0 {
			_, _ = fmt.Fprintf(buf, "%s--%s%s", br, m.Boundary, br)
		}
		_, _ = part.WriteTo(buf)
	}

	if m.Epilogue != nil {
		_, _ = fmt.Fprintf(buf, "%s--%s--", br, m.Boundary)
		buf.Write(m.Epilogue)
	}
}

// DecodedBody returns the payload of p with the transfer encoding removed. For
// a message/rfc822 part, this is the nested message. A multipart has no single
// payload, so ErrAmbiguousPayload is returned for one.
func DecodedBody(p *Part, container *header.Header, opts ...ParseOption) ([]byte, error) {
	c, err := ParseContent(p, container, opts...)
	if err != nil && !errors.Is(err, ErrNoBoundary) && !errors.Is(err, ErrMalformedMultipart) {
		return nil, err
	}

	switch v := c.(type) {
	case *Data:
		return v.Stream.Decode()
	case *Nested:
		return v.Message.Bytes(), nil
	default:
		return nil, ErrAmbiguousPayload
	}
}
