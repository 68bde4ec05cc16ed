package message

import (
	"strings"

	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/header/param"
	"github.com/zostay/go-mimetree/message/mimetype"
)

// UnnamedAttachment is the file name given to an attachment whose
// Content-Disposition names no file.
const UnnamedAttachment = "unnamed-attachment"

// Disposition is how a part is meant to be presented: inline, or as an
// attachment with a file name.
type Disposition struct {
	Attachment bool
	Filename   string
}

// Inline is the Disposition of a part meant for direct presentation.
var Inline = Disposition{}

// AttachmentNamed returns the Disposition of an attachment with the given
// file name.
func AttachmentNamed(filename string) Disposition {
	return Disposition{Attachment: true, Filename: filename}
}

// String returns "inline" or "attachment; filename=...". A file name that is
// not plain ASCII is written as an RFC 2231 filename* parameter.
func (d Disposition) String() string {
	if !d.Attachment {
		return PresentationInline
	}
	return PresentationAttachment + "; " + param.Format(param.Filename, d.Filename)
}

// ParseLastHeader parses the last field named name on p as a parameterized
// value. The boolean is false when there is no such field or its body is
// blank.
func ParseLastHeader(p *Part, name string) (*param.Value, bool) {
	pv, err := p.Header().GetParamValue(name)
	if err != nil {
		return nil, false
	}
	return pv, true
}

// ContentType returns the lowercased media type of p, or
// application/x-octet-stream if there is no Content-Type.
func ContentType(p *Part) string {
	if pv, ok := ParseLastHeader(p, header.ContentType); ok && pv.MediaType() != "" {
		return strings.ToLower(pv.MediaType())
	}
	return mimetype.OctetStream
}

// ContentDisposition classifies p as inline or as an attachment.
//
// A Content-Disposition of "attachment" makes p an attachment named by the
// filename parameter, or UnnamedAttachment if there is none. A
// Content-Disposition of "inline" makes p inline. Otherwise, a name parameter
// on the Content-Type makes p an attachment with that name, and p is inline
// if there is none.
func ContentDisposition(p *Part) Disposition {
	if cd, ok := ParseLastHeader(p, header.ContentDisposition); ok {
		switch strings.ToLower(cd.Disposition()) {
		case PresentationAttachment:
			if fn, ok := cd.Lookup(param.Filename); ok && fn != "" {
				return AttachmentNamed(fn)
			}
			return AttachmentNamed(UnnamedAttachment)
		case PresentationInline:
			return Inline
		}
	}

	if ct, ok := ParseLastHeader(p, header.ContentType); ok {
		if name, ok := ct.Lookup(param.Name); ok {
			return AttachmentNamed(name)
		}
	}

	return Inline
}

// AttachmentName returns the file name of p if it is classified as an
// attachment and the name parameter of its Content-Type otherwise.
func AttachmentName(p *Part) (string, bool) {
	if d := ContentDisposition(p); d.Attachment {
		return d.Filename, true
	}

	if ct, ok := ParseLastHeader(p, header.ContentType); ok {
		return ct.Lookup(param.Name)
	}

	return "", false
}

// RelatedPartCID returns the Content-Id of p with surrounding whitespace and
// one pair of angle brackets removed.
func RelatedPartCID(p *Part) (string, bool) {
	cid, err := p.Header().GetContentID()
	if err != nil {
		return "", false
	}

	cid = strings.TrimSpace(cid)
	if len(cid) >= 2 && cid[0] == '<' && cid[len(cid)-1] == '>' {
		cid = cid[1 : len(cid)-1]
	}
	return cid, cid != ""
}
