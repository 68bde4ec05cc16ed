// Package walk provides functions for searching and transforming the part tree
// of a message.
//
// A part whose body cannot be parsed is treated as a leaf. The walk carries on
// and the failure is logged at debug level, but it is never returned.
//
// Bodies are parsed afresh on every call, so parts found by two calls are
// equal in content but are not the same *message.Part.
package walk

import (
	"context"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/attachment"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/mimetype"
)

// content parses the body of p. It returns nil if p cannot be parsed.
func content(ctx context.Context, p *message.Part, container *header.Header) message.Content {
	c, err := message.ParseContent(p, container)
	if err != nil {
		loggerFor(ctx).Debug().
			Err(err).
			Str("content-type", message.ContentType(p)).
			Msg("treating unparsable part as a leaf")
		return nil
	}
	return c
}

// multipart returns the parsed body of p if it is a multipart.
func multipart(p *message.Part, container *header.Header) (*message.Multipart, bool) {
	mp, ok := content(context.Background(), p, container).(*message.Multipart)
	return mp, ok
}

// Parts returns the parts of p if p is a multipart. The boolean is false for
// any other part, including a multipart that cannot be parsed.
func Parts(p *message.Part) ([]*message.Part, bool) {
	mp, ok := multipart(p, nil)
	if !ok {
		return nil, false
	}
	return mp.Parts, true
}

// InlineParts returns the parts meant to be shown directly, in order. A
// multipart/alternative is returned whole, leaving the choice of
// representation to the caller.
func InlineParts(p *message.Part) []*message.Part {
	return inlineParts(p, nil)
}

func inlineParts(p *message.Part, container *header.Header) []*message.Part {
	if mp, ok := multipart(p, container); ok {
		if message.ContentType(p) == mimetype.MultipartAlternative {
			return []*message.Part{p}
		}

		var found []*message.Part
		for _, child := range mp.Parts {
			found = append(found, inlineParts(child, mp.ContainerHeaders)...)
		}
		return found
	}

	if message.ContentDisposition(p) == message.Inline {
		return []*message.Part{p}
	}
	return nil
}

// AlternativeParts returns the representations offered by a
// multipart/alternative, in order of increasing preference. Nested
// alternatives are flattened. Any other part is returned alone.
func AlternativeParts(p *message.Part) []*message.Part {
	return alternativeParts(p, nil)
}

func alternativeParts(p *message.Part, container *header.Header) []*message.Part {
	if message.ContentType(p) == mimetype.MultipartAlternative {
		if mp, ok := multipart(p, container); ok {
			var found []*message.Part
			for _, child := range mp.Parts {
				found = append(found, alternativeParts(child, mp.ContainerHeaders)...)
			}
			return found
		}
	}
	return []*message.Part{p}
}

// Related is a part that carries a Content-Id.
type Related struct {
	CID  string
	Part *message.Part
}

// AllRelatedParts returns every part with a Content-Id, depth first with each
// part listed before its children.
func AllRelatedParts(p *message.Part) []Related {
	return allRelatedParts(p, nil)
}

func allRelatedParts(p *message.Part, container *header.Header) []Related {
	var found []Related
	if cid, ok := message.RelatedPartCID(p); ok {
		found = append(found, Related{CID: cid, Part: p})
	}

	if mp, ok := multipart(p, container); ok {
		for _, child := range mp.Parts {
			found = append(found, allRelatedParts(child, mp.ContainerHeaders)...)
		}
	}

	return found
}

// FindRelated returns the first part, in the order of AllRelatedParts(), whose
// Content-Id is exactly cid. It returns nil if there is none.
func FindRelated(p *message.Part, cid string) *message.Part {
	for _, r := range AllRelatedParts(p) {
		if r.CID == cid {
			return r.Part
		}
	}
	return nil
}

// AllAttachments returns every attachment in the tree, in order. An attached
// message is listed, followed by the attachments found inside it.
func AllAttachments(p *message.Part) []*attachment.Attachment {
	return allAttachments(p, nil)
}

func allAttachments(p *message.Part, container *header.Header) []*attachment.Attachment {
	var found []*attachment.Attachment

	switch v := content(context.Background(), p, container).(type) {
	case *message.Multipart:
		for _, child := range v.Parts {
			found = append(found, allAttachments(child, v.ContainerHeaders)...)
		}

	case *message.Nested:
		if a := attachment.Parse(p, container); a != nil {
			found = append(found, a)
		}
		found = append(found, allAttachments(v.Message, nil)...)

	default:
		if a := attachment.Parse(p, container); a != nil {
			found = append(found, a)
		}
	}

	return found
}

// FindAttachment returns the first attachment, in the order of
// AllAttachments(), named exactly filename. It returns nil if there is none.
func FindAttachment(p *message.Part, filename string) *attachment.Attachment {
	for _, a := range AllAttachments(p) {
		if a.Filename() == filename {
			return a
		}
	}
	return nil
}
