package walk

import (
	"context"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/header"
)

// Processor is a callback that can be passed to the AndProcess() function to
// do any kind of generic processing of a message and its sub-parts.
//
// The Processor is given a part to process and the ancestry of the part. If
// len(parents) is zero, then this is the top-level part (i.e., the top-level
// part that AndProcess() was called upon, which might not be the root message).
// The container is the header of the multipart holding the part, or nil.
//
// The Processor may return an error to cause AndProcess() to terminate
// immediately and return that error.
type Processor func(part *message.Part, container *header.Header, parents []*message.Part) error

// AndProcess will walk the part tree of a message (or a part of a message) and
// call the given Processor function for each part found, parents before
// children. The parts of a multipart and the message inside a message/rfc822
// part are both treated as children. It will terminate once all parts have
// been processed and return nil. If the Processor function returns an error,
// it will terminate early and return that error.
func AndProcess(
	processor Processor,
	msg *message.Part,
) error {
	parents := make([]*message.Part, 0, 10)
	return andProcess(processor, msg, nil, parents)
}

func andProcess(
	processor Processor,
	part *message.Part,
	container *header.Header,
	parents []*message.Part,
) error {
	err := processor(part, container, parents)
	if err != nil {
		return err
	}

	parents = append(parents, part)
	switch v := content(context.Background(), part, container).(type) {
	case *message.Multipart:
		for _, subPart := range v.Parts {
			err := andProcess(processor, subPart, v.ContainerHeaders, parents)
			if err != nil {
				return err
			}
		}

	case *message.Nested:
		return andProcess(processor, v.Message, nil, parents)
	}

	return nil
}
