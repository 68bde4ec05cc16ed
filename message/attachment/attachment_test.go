package attachment_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/attachment"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/mimetype"
	"github.com/zostay/go-mimetree/message/transfer"
)

const helloMD5 = "5D41402ABC4B2A76B9719D911017C592"

func attached(enc transfer.Encoding, name string, data []byte) *message.Part {
	return message.CreateDataPart(enc, []header.Pair{
		{Name: header.ContentType, Value: mimetype.TextPlain},
		{Name: header.ContentDisposition, Value: "attachment; filename=" + name},
	}, data)
}

func TestParse_Data(t *testing.T) {
	t.Parallel()

	for _, enc := range []transfer.Encoding{transfer.QuotedPrintable, transfer.Base64, transfer.Bit7} {
		p := attached(enc, "hello.txt", []byte("hello"))

		a := attachment.Parse(p, nil)
		require.NotNil(t, a, enc)

		assert.Equal(t, "hello.txt", a.Filename())
		assert.Same(t, p, a.Part())
		assert.Same(t, p.Header(), a.Header())
		assert.Nil(t, a.EmbeddedMessage())
		assert.Equal(t, mimetype.TextPlain, a.ContentType())

		raw, err := a.RawData()
		assert.NoError(t, err)
		assert.Equal(t, "hello", string(raw))

		sum, err := a.MD5()
		assert.NoError(t, err)
		assert.Equal(t, helloMD5, sum)

		size, err := a.Size()
		assert.NoError(t, err)
		assert.Equal(t, 5, size)
	}
}

func TestParse_Inline(t *testing.T) {
	t.Parallel()

	p := message.CreateDataPart(transfer.Bit7, []header.Pair{
		{Name: header.ContentType, Value: mimetype.TextPlain},
	}, []byte("hello"))
	assert.Nil(t, attachment.Parse(p, nil))

	p = p.ModifyHeader(func(h *header.Header) {
		h.SetAtBottom(header.ContentDisposition, "inline; filename=hello.txt")
	})
	assert.Nil(t, attachment.Parse(p, nil))
}

func TestParse_Multipart(t *testing.T) {
	t.Parallel()

	mp, err := message.CreateMultipart(mimetype.MultipartMixed,
		[]header.Pair{{Name: header.ContentDisposition, Value: "attachment; filename=bundle"}},
		[]*message.Part{
			attached(transfer.Bit7, "a.txt", []byte("a")),
			attached(transfer.Bit7, "b.txt", []byte("b")),
		})
	require.NoError(t, err)

	assert.Nil(t, attachment.Parse(mp, nil))

	broken := message.New(header.OfList(header.Normalize,
		header.Pair{Name: header.ContentType, Value: mimetype.MultipartMixed},
		header.Pair{Name: header.ContentDisposition, Value: "attachment"},
	), []byte("no boundary"))
	assert.Nil(t, attachment.Parse(broken, nil))
}

func TestParse_Nested(t *testing.T) {
	t.Parallel()

	inner := "From: a@example.com\nSubject: inner\n\nhi\n"
	for _, enc := range []transfer.Encoding{transfer.Bit7, transfer.Base64} {
		p := message.CreateDataPart(enc, []header.Pair{
			{Name: header.ContentType, Value: mimetype.MessageRFC822},
			{Name: header.ContentDisposition, Value: `attachment; filename="fwd.eml"`},
		}, []byte(inner))

		a := attachment.Parse(p, nil)
		require.NotNil(t, a)

		assert.Equal(t, "fwd.eml", a.Filename())
		require.NotNil(t, a.EmbeddedMessage())
		assert.Equal(t, inner, a.EmbeddedMessage().String())

		raw, err := a.RawData()
		assert.NoError(t, err)
		assert.Equal(t, transfer.Encode([]byte(inner), enc).Content, raw)
	}
}

func TestParse_Digest(t *testing.T) {
	t.Parallel()

	digest := header.OfList(header.Normalize,
		header.Pair{Name: header.ContentType, Value: `multipart/digest; boundary="d"`})

	p := message.New(header.OfList(header.Normalize,
		header.Pair{Name: header.ContentDisposition, Value: "attachment; filename=one.eml"},
	), []byte("Subject: one\n\nbody"))

	a := attachment.Parse(p, digest)
	require.NotNil(t, a)
	require.NotNil(t, a.EmbeddedMessage())

	subject, err := a.EmbeddedMessage().Header().GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "one", subject)
}

func TestAttachment_DecodeError(t *testing.T) {
	t.Parallel()

	p := message.New(header.OfList(header.Normalize,
		header.Pair{Name: header.ContentDisposition, Value: "attachment; filename=bad.bin"},
		header.Pair{Name: header.ContentTransferEncoding, Value: "x-uuencode"},
	), []byte("begin 644 bad.bin"))

	a := attachment.Parse(p, nil)
	require.NotNil(t, a)

	_, err := a.RawData()
	assert.ErrorIs(t, err, transfer.ErrUnknownEncoding)

	_, err = a.MD5()
	assert.ErrorIs(t, err, transfer.ErrUnknownEncoding)

	dir := t.TempDir()
	err = a.ToFile(filepath.Join(dir, "bad.bin"))
	assert.ErrorIs(t, err, transfer.ErrUnknownEncoding)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAttachment_NestedDecodeError(t *testing.T) {
	t.Parallel()

	p := message.New(header.OfList(header.Normalize,
		header.Pair{Name: header.ContentType, Value: mimetype.MessageRFC822},
		header.Pair{Name: header.ContentDisposition, Value: "attachment; filename=bad.eml"},
		header.Pair{Name: header.ContentTransferEncoding, Value: "base64"},
	), []byte("!!! not base64 !!!"))

	a := attachment.Parse(p, nil)
	require.NotNil(t, a)
	assert.Nil(t, a.EmbeddedMessage())

	_, err := a.RawData()
	assert.Error(t, err)

	_, err = a.MD5()
	assert.Error(t, err)
}

func TestAttachment_ToFile(t *testing.T) {
	t.Parallel()

	a := attachment.Parse(attached(transfer.Base64, "hello.txt", []byte("hello")), nil)
	require.NotNil(t, a)

	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o644))

	require.NoError(t, a.ToFile(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	err = a.ToFile(filepath.Join(dir, "missing", "hello.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAttachment_Concurrent(t *testing.T) {
	t.Parallel()

	a := attachment.Parse(attached(transfer.QuotedPrintable, "hello.txt", []byte("hello")), nil)
	require.NotNil(t, a)

	var wg sync.WaitGroup
	sums := make([]string, 16)
	for i := range sums {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sums[i], _ = a.MD5()
		}(i)
	}
	wg.Wait()

	for _, sum := range sums {
		assert.Equal(t, helloMD5, sum)
	}
}
