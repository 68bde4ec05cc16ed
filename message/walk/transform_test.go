package walk_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/attachment"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/mimetype"
	"github.com/zostay/go-mimetree/message/transfer"
	"github.com/zostay/go-mimetree/message/walk"
)

func placeholder(ctx context.Context, a *attachment.Attachment) (walk.Action, error) {
	sum, err := a.MD5()
	if err != nil {
		return walk.Keep(), err
	}

	return walk.Replace(message.CreateDataPart(transfer.QuotedPrintable, []header.Pair{
		{Name: header.ContentType, Value: mimetype.TextPlain},
		{Name: header.ContentDisposition, Value: "attachment; filename=removed-" + a.Filename()},
	}, []byte(fmt.Sprintf("removed %s (%s)", a.Filename(), sum)))), nil
}

func TestMapFileAttachments_Keep(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	var calls atomic.Int32
	got, err := walk.MapFileAttachments(context.Background(), m,
		func(ctx context.Context, a *attachment.Attachment) (walk.Action, error) {
			calls.Add(1)
			return walk.Keep(), nil
		})
	require.NoError(t, err)

	assert.Same(t, m, got)
	assert.Equal(t, complexMsg, got.String())
	assert.Equal(t, int32(2), calls.Load())
}

func TestMapFileAttachments_Replace(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)
	origParts, _ := walk.Parts(m)

	got, err := walk.MapFileAttachments(context.Background(), m, placeholder)
	require.NoError(t, err)
	assert.NotSame(t, m, got)

	atts := walk.AllAttachments(got)
	names := make([]string, len(atts))
	for i, a := range atts {
		names[i] = a.Filename()
	}
	assert.Equal(t, []string{"removed-micro.pdf", "forwarded.eml", "removed-notes.txt"}, names)

	raw, err := atts[2].RawData()
	assert.NoError(t, err)
	assert.Equal(t, "removed notes.txt (AF668A2D297F1AC17DBA5FDE691DAE7F)", string(raw))

	// untouched parts are shared and the layout is kept
	parts, ok := walk.Parts(got)
	require.True(t, ok)
	require.Len(t, parts, 3)
	assert.Equal(t, origParts[0].String(), parts[0].String())
	assert.Equal(t, m.Header().String(), got.Header().String())

	c, err := message.ParseContent(got, nil)
	require.NoError(t, err)
	mp := c.(*message.Multipart)
	assert.Equal(t, "__boundary-one__", mp.Boundary)
	assert.Equal(t, "This is a multi-part message in MIME format.\n\n", string(mp.Prologue))
	assert.Equal(t, "\n", string(mp.Epilogue))
}

func TestMapFileAttachments_Concurrent(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)

	seq, err := walk.MapFileAttachments(context.Background(), m, placeholder)
	require.NoError(t, err)

	con, err := walk.MapFileAttachments(context.Background(), m, placeholder, walk.WithConcurrency(4))
	require.NoError(t, err)

	assert.Equal(t, seq.String(), con.String())
}

func TestMapFileAttachments_Error(t *testing.T) {
	t.Parallel()

	m := parseComplex(t)
	boom := errors.New("boom")

	for _, n := range []int{1, 4} {
		got, err := walk.MapFileAttachments(context.Background(), m,
			func(ctx context.Context, a *attachment.Attachment) (walk.Action, error) {
				if a.Filename() == "notes.txt" {
					return walk.Keep(), boom
				}
				return placeholder(ctx, a)
			}, walk.WithConcurrency(n))

		assert.Nil(t, got)
		assert.ErrorIs(t, err, boom)

		var terr *walk.TransformError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "notes.txt", terr.Filename)
		assert.Equal(t, `transform attachment "notes.txt": boom`, err.Error())
	}
}

func TestMapFileAttachments_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := walk.MapFileAttachments(ctx, parseComplex(t), placeholder)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapFileAttachments_Container(t *testing.T) {
	t.Parallel()

	digest := header.OfList(header.Normalize,
		header.Pair{Name: header.ContentType, Value: `multipart/digest; boundary="d"`})

	// without a Content-Type this is a message inside a digest
	p := message.New(header.OfList(header.Normalize,
		header.Pair{Name: header.ContentDisposition, Value: "attachment; filename=one.eml"},
	), []byte("Content-Type: text/plain\nContent-Disposition: attachment; filename=inner.txt\n\nhi"))

	var seen []string
	_, err := walk.MapFileAttachments(context.Background(), p,
		func(ctx context.Context, a *attachment.Attachment) (walk.Action, error) {
			seen = append(seen, a.Filename())
			return walk.Keep(), nil
		}, walk.WithContainer(digest))
	require.NoError(t, err)
	assert.Equal(t, []string{"inner.txt"}, seen)
}

func TestMapFileAttachments_LogsUnparsable(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	ctx := zerolog.New(buf).Level(zerolog.DebugLevel).WithContext(context.Background())

	m, err := message.ParseBytes([]byte("Content-Type: multipart/mixed\n\nno boundary here"))
	require.NoError(t, err)

	got, err := walk.MapFileAttachments(ctx, m, placeholder)
	require.NoError(t, err)
	assert.Same(t, m, got)
	assert.Contains(t, buf.String(), "treating unparsable part as a leaf")
	assert.Contains(t, buf.String(), `"content-type":"multipart/mixed"`)
}
