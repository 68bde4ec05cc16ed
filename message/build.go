package message

import (
	"fmt"
	"os"

	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/mimetype"
	"github.com/zostay/go-mimetree/message/transfer"
)

// Presentations that may be set in Content-Disposition.
const (
	PresentationInline     = "inline"
	PresentationAttachment = "attachment"
)

// CreateDataPart returns a leaf part holding data encoded with enc. The extra
// pairs become the header, in order, followed by the Content-Transfer-Encoding.
func CreateDataPart(enc transfer.Encoding, extra []header.Pair, data []byte) *Part {
	if enc == transfer.None {
		enc = transfer.Bit7
	}

	h := header.OfList(header.Normalize, extra...)
	h.SetAtBottom(header.ContentTransferEncoding, enc.String())

	return New(h, transfer.Encode(data, enc).Content)
}

// DataPartFromFile reads the named file into a leaf part. The Content-Type is
// guessed from the file name and the encoding is chosen to suit it. The extra
// pairs follow the Content-Type in the header.
func DataPartFromFile(path string, extra ...header.Pair) (*Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	mt := mimetype.FromFilename(path)
	pairs := make([]header.Pair, 0, len(extra)+1)
	pairs = append(pairs, header.Pair{Name: header.ContentType, Value: mt})
	pairs = append(pairs, extra...)

	return CreateDataPart(mimetype.DefaultEncoding(mt), pairs, data), nil
}

// CreateMultipart joins the parts into a multipart of the given content type.
// The extra pairs become the header, followed by a Content-Type carrying a
// fresh boundary that occurs in none of the parts.
//
// As a convenience carried over for compatibility, a single part is not
// wrapped. It is returned with the extra pairs added to the bottom of a copy
// of its header, whatever contentType is.
//
// It returns ErrNoParts if parts is empty.
func CreateMultipart(contentType string, extra []header.Pair, parts []*Part) (*Part, error) {
	switch len(parts) {
	case 0:
		return nil, ErrNoParts
	case 1:
		return parts[0].ModifyHeader(func(h *header.Header) {
			h.AddAll(extra...)
		}), nil
	}

	corpus := make([][]byte, len(parts))
	for i, part := range parts {
		corpus[i] = part.Bytes()
	}
	boundary := GenerateSafeBoundary(corpus...)

	h := header.OfList(header.Normalize, extra...)
	h.SetAtBottom(header.ContentType, fmt.Sprintf(`%s; boundary="%s"`, contentType, boundary))

	return ToEmail(h, &Multipart{
		Boundary:         boundary,
		Prologue:         []byte{},
		Epilogue:         []byte{},
		ContainerHeaders: &header.Header{},
		Parts:            append([]*Part{}, parts...),
	}), nil
}

// Resource is a part to be referenced by Content-Id from a related body.
type Resource struct {
	// Name becomes the Content-Id, wrapped in angle brackets.
	Name string
	Part *Part
}

// CreateRelated builds a multipart/related with body first, marked inline, and
// then each resource, marked with a Content-Id made from its name.
func CreateRelated(body *Part, resources []Resource) (*Part, error) {
	parts := make([]*Part, 0, len(resources)+1)
	parts = append(parts, setPresentation(body, PresentationInline))
	for _, r := range resources {
		cid := fmt.Sprintf("<%s>", r.Name)
		parts = append(parts, r.Part.ModifyHeader(func(h *header.Header) {
			h.SetAtBottom(header.ContentID, cid)
		}))
	}

	return CreateMultipart(mimetype.MultipartRelated, nil, parts)
}

// CreateAlternative builds a multipart/alternative from the given parts, in
// order of increasing preference.
func CreateAlternative(parts ...*Part) (*Part, error) {
	return CreateMultipart(mimetype.MultipartAlternative, nil, parts)
}

func setPresentation(p *Part, presentation string) *Part {
	return p.ModifyHeader(func(h *header.Header) {
		h.SetAtBottom(header.ContentDisposition, presentation)
	})
}
