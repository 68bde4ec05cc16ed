package walk_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/walk"
)

func TestAndProcess(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	var seen []string
	err := walk.AndProcess(
		func(part *message.Part, container *header.Header, parents []*message.Part) error {
			seen = append(seen, strings.Repeat(" ", len(parents))+message.ContentType(part))

			if len(parents) == 0 {
				assert.Nil(t, container)
				s, err := part.Header().GetSubject()
				assert.NoError(t, err)
				assert.Equal(t, "Hello World", s)
			} else {
				assert.Same(t, m, parents[0])
			}

			return nil
		}, m,
	)

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"multipart/mixed",
		" multipart/related",
		"  multipart/alternative",
		"   text/plain",
		"   text/html",
		"  image/gif",
		" application/pdf",
		" message/rfc822",
		"  multipart/mixed",
		"   text/plain",
		"   text/plain",
	}, seen)
}

func TestAndProcess_Error(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)
	stop := errors.New("stop")

	count := 0
	err := walk.AndProcess(
		func(part *message.Part, container *header.Header, parents []*message.Part) error {
			count++
			if message.ContentType(part) == "application/pdf" {
				return stop
			}
			return nil
		}, m,
	)

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 7, count)
}
