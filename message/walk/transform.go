package walk

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/attachment"
	"github.com/zostay/go-mimetree/message/header"
)

// TransformError is returned by MapFileAttachments() when the callback fails.
type TransformError struct {
	Cause    error
	Filename string
}

// Error returns the error message describing the failed transformation.
func (e *TransformError) Error() string {
	return fmt.Sprintf("transform attachment %q: %v", e.Filename, e.Cause)
}

// Unwrap returns the error returned by the callback.
func (e *TransformError) Unwrap() error {
	return e.Cause
}

// Action tells MapFileAttachments() what to do with an attachment.
type Action struct {
	replacement *message.Part
}

// Keep leaves the attachment as it is.
func Keep() Action {
	return Action{}
}

// Replace puts p in the place of the attachment. The replacement is used
// exactly as given.
func Replace(p *message.Part) Action {
	return Action{replacement: p}
}

// Mapper is the callback passed to MapFileAttachments(). It is called once for
// every attachment that is not itself an attached message.
type Mapper func(ctx context.Context, a *attachment.Attachment) (Action, error)

// MapOption configures MapFileAttachments().
type MapOption func(*mapper)

// WithConcurrency allows up to n sibling parts of each multipart to be mapped
// at the same time. The default is 1, which maps every part in order.
func WithConcurrency(n int) MapOption {
	return func(m *mapper) {
		m.concurrency = n
	}
}

// WithContainer sets the header of the multipart holding the part being
// mapped, for use when mapping a part taken out of a larger message.
func WithContainer(h *header.Header) MapOption {
	return func(m *mapper) {
		m.container = h
	}
}

type mapper struct {
	fn          Mapper
	concurrency int
	container   *header.Header
}

// MapFileAttachments rebuilds p, passing every attachment to fn and replacing
// it if fn asks for that. Attached messages are searched for attachments and
// rewrapped. Multiparts keep their boundary, prologue, epilogue, and the order
// of their parts. Any part in which nothing was replaced is returned as the
// very same *message.Part, so a pass that keeps everything writes out the
// original bytes.
//
// If fn fails, the rebuild is abandoned and a *TransformError is returned. If
// ctx is cancelled, the rebuild is abandoned and the context error is
// returned.
func MapFileAttachments(
	ctx context.Context,
	p *message.Part,
	fn Mapper,
	opts ...MapOption,
) (*message.Part, error) {
	m := &mapper{fn: fn, concurrency: 1}
	for _, opt := range opts {
		opt(m)
	}

	return m.mapPart(ctx, p, m.container)
}

func (m *mapper) mapPart(
	ctx context.Context,
	p *message.Part,
	container *header.Header,
) (*message.Part, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch v := content(ctx, p, container).(type) {
	case *message.Multipart:
		parts, err := m.mapParts(ctx, v)
		if err != nil {
			return nil, err
		}
		if parts == nil {
			return p, nil
		}

		rebuilt := *v
		rebuilt.Parts = parts
		return message.SetContent(p, &rebuilt), nil

	case *message.Nested:
		inner, err := m.mapPart(ctx, v.Message, nil)
		if err != nil {
			return nil, err
		}
		if inner == v.Message {
			return p, nil
		}
		return message.SetContent(p, &message.Nested{Message: inner}), nil

	case *message.Data:
		a := attachment.Parse(p, container)
		if a == nil {
			return p, nil
		}

		act, err := m.fn(ctx, a)
		if err != nil {
			return nil, &TransformError{Cause: err, Filename: a.Filename()}
		}
		if act.replacement == nil {
			return p, nil
		}

		loggerFor(ctx).Debug().
			Str("filename", a.Filename()).
			Msg("replaced attachment")
		return act.replacement, nil
	}

	return p, nil
}

// mapParts maps the parts of mp. It returns nil if no part changed.
func (m *mapper) mapParts(ctx context.Context, mp *message.Multipart) ([]*message.Part, error) {
	parts := make([]*message.Part, len(mp.Parts))

	if m.concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(m.concurrency)
		for i, child := range mp.Parts {
			g.Go(func() error {
				np, err := m.mapPart(gctx, child, mp.ContainerHeaders)
				if err != nil {
					return err
				}
				parts[i] = np
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, child := range mp.Parts {
			np, err := m.mapPart(ctx, child, mp.ContainerHeaders)
			if err != nil {
				return nil, err
			}
			parts[i] = np
		}
	}

	for i := range parts {
		if parts[i] != mp.Parts[i] {
			return parts, nil
		}
	}
	return nil, nil
}
