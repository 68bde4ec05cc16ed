package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/header"
)

func partWith(pairs ...header.Pair) *message.Part {
	return message.New(header.OfList(header.Normalize, pairs...), []byte("x"))
}

func TestParseLastHeader(t *testing.T) {
	t.Parallel()

	p := partWith(
		header.Pair{Name: "Content-Type", Value: "text/plain"},
		header.Pair{Name: "content-type", Value: `text/html; charset="utf-8"`},
	)

	pv, ok := message.ParseLastHeader(p, "CONTENT-TYPE")
	assert.True(t, ok)
	assert.Equal(t, "text/html", pv.MediaType())
	assert.Equal(t, "utf-8", pv.Charset())

	_, ok = message.ParseLastHeader(p, header.ContentDisposition)
	assert.False(t, ok)

	_, ok = message.ParseLastHeader(partWith(header.Pair{Name: "X-Blank", Value: "  "}), "X-Blank")
	assert.False(t, ok)
}

func TestContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text/html", message.ContentType(partWith(header.Pair{Name: "Content-Type", Value: "Text/HTML; charset=utf-8"})))
	assert.Equal(t, "application/x-octet-stream", message.ContentType(partWith()))
}

func TestContentDisposition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		pairs []header.Pair
		want  message.Disposition
	}{
		{
			name: "no fields",
			want: message.Inline,
		},
		{
			name:  "inline",
			pairs: []header.Pair{{Name: "Content-Disposition", Value: "inline"}},
			want:  message.Inline,
		},
		{
			name:  "attachment with filename",
			pairs: []header.Pair{{Name: "Content-Disposition", Value: `attachment; filename="a b.pdf"`}},
			want:  message.AttachmentNamed("a b.pdf"),
		},
		{
			name:  "attachment without filename",
			pairs: []header.Pair{{Name: "Content-Disposition", Value: "attachment"}},
			want:  message.AttachmentNamed(message.UnnamedAttachment),
		},
		{
			name:  "attachment with empty filename",
			pairs: []header.Pair{{Name: "Content-Disposition", Value: `attachment; filename=""`}},
			want:  message.AttachmentNamed(message.UnnamedAttachment),
		},
		{
			name:  "upper case attachment",
			pairs: []header.Pair{{Name: "Content-Disposition", Value: "ATTACHMENT; FILENAME=x.txt"}},
			want:  message.AttachmentNamed("x.txt"),
		},
		{
			name:  "content type name",
			pairs: []header.Pair{{Name: "Content-Type", Value: `image/png; name="logo.png"`}},
			want:  message.AttachmentNamed("logo.png"),
		},
		{
			name: "inline beats content type name",
			pairs: []header.Pair{
				{Name: "Content-Type", Value: `image/png; name="logo.png"`},
				{Name: "Content-Disposition", Value: "inline"},
			},
			want: message.Inline,
		},
		{
			name: "unknown disposition falls back to name",
			pairs: []header.Pair{
				{Name: "Content-Type", Value: `image/png; name="logo.png"`},
				{Name: "Content-Disposition", Value: "form-data"},
			},
			want: message.AttachmentNamed("logo.png"),
		},
		{
			name: "last disposition wins",
			pairs: []header.Pair{
				{Name: "Content-Disposition", Value: "inline"},
				{Name: "Content-Disposition", Value: "attachment; filename=late.txt"},
			},
			want: message.AttachmentNamed("late.txt"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, message.ContentDisposition(partWith(tt.pairs...)))
		})
	}
}

func TestDisposition_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inline", message.Inline.String())
	assert.Equal(t, `attachment; filename="x \"y\".txt"`, message.AttachmentNamed(`x "y".txt`).String())
}

func TestAttachmentName(t *testing.T) {
	t.Parallel()

	name, ok := message.AttachmentName(partWith(header.Pair{Name: "Content-Disposition", Value: "attachment; filename=a.txt"}))
	assert.True(t, ok)
	assert.Equal(t, "a.txt", name)

	name, ok = message.AttachmentName(partWith(
		header.Pair{Name: "Content-Type", Value: "image/png; name=logo.png"},
		header.Pair{Name: "Content-Disposition", Value: "inline"},
	))
	assert.True(t, ok)
	assert.Equal(t, "logo.png", name)

	_, ok = message.AttachmentName(partWith(header.Pair{Name: "Content-Type", Value: "text/plain"}))
	assert.False(t, ok)
}

func TestRelatedPartCID(t *testing.T) {
	t.Parallel()

	cid, ok := message.RelatedPartCID(partWith(header.Pair{Name: "Content-ID", Value: " <logo@example.com> "}))
	assert.True(t, ok)
	assert.Equal(t, "logo@example.com", cid)

	cid, ok = message.RelatedPartCID(partWith(header.Pair{Name: "Content-Id", Value: "bare"}))
	assert.True(t, ok)
	assert.Equal(t, "bare", cid)

	_, ok = message.RelatedPartCID(partWith(header.Pair{Name: "Content-Id", Value: "<>"}))
	assert.False(t, ok)

	_, ok = message.RelatedPartCID(partWith())
	assert.False(t, ok)
}
