package param_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimetree/message/header/param"
)

func TestParse(t *testing.T) {
	t.Parallel()

	_, err := param.Parse("   ")
	assert.ErrorIs(t, err, param.ErrEmptyValue)

	mt, err := param.Parse("text")
	require.NoError(t, err)
	assert.Equal(t, "text", mt.MediaType())
	assert.Equal(t, "", mt.Type())
	assert.Equal(t, "", mt.Subtype())
	assert.Empty(t, mt.Params())

	mt, err = param.Parse("Image/JPEG")
	require.NoError(t, err)
	assert.Equal(t, "Image/JPEG", mt.MediaType())
	assert.Equal(t, "image", mt.Type())
	assert.Equal(t, "jpeg", mt.Subtype())

	mt, err = param.Parse(" application/json ;  charset = UTF-8; foo=bar=baz ; flag ")
	require.NoError(t, err)
	assert.Equal(t, "application/json", mt.Value())
	assert.Equal(t, []param.Param{
		{Key: "charset", Value: "UTF-8", HasValue: true},
		{Key: "foo", Value: "bar=baz", HasValue: true},
		{Key: "flag"},
	}, mt.Params())
	assert.Equal(t, "UTF-8", mt.Charset())
	assert.Equal(t, "application/json; charset=UTF-8; foo=bar=baz; flag", mt.String())
}

func TestLookup(t *testing.T) {
	t.Parallel()

	mt, err := param.Parse(`attachment; FileName="a.txt"; filename=b.txt; name`)
	require.NoError(t, err)

	v, ok := mt.Lookup("filename")
	assert.True(t, ok)
	assert.Equal(t, "a.txt", v)
	assert.Equal(t, "a.txt", mt.Filename())

	_, ok = mt.Lookup("name")
	assert.False(t, ok)

	_, ok = mt.Lookup("missing")
	assert.False(t, ok)
	assert.Equal(t, "", mt.Boundary())
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", param.Unquote(`"abc"`))
	assert.Equal(t, `"abc"`, param.Unquote(`""abc""`))
	assert.Equal(t, `"abc`, param.Unquote(`"abc`))
	assert.Equal(t, "", param.Unquote(`""`))
	assert.Equal(t, `"`, param.Unquote(`"`))
	assert.Equal(t, `a"b\c.txt`, param.Unquote(`"a\"b\\c.txt"`))
	assert.Equal(t, `a\"b`, param.Unquote(`a\"b`))
}

func TestQuote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"a.txt"`, param.Quote("a.txt"))
	assert.Equal(t, `"say \"hi\\\".txt"`, param.Quote(`say "hi\".txt`))

	for _, name := range []string{`a"b.txt`, `back\slash`, `"`, ``} {
		assert.Equal(t, name, param.Unquote(param.Quote(name)))
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `filename="a b.txt"`, param.Format("filename", "a b.txt"))
	assert.Equal(t, `filename="a\"b.txt"`, param.Format("filename", `a"b.txt`))
	assert.Equal(t, `filename*=utf-8''r%C3%A9sum%C3%A9.pdf`, param.Format("filename", "résumé.pdf"))
	assert.Equal(t, `filename*=utf-8''a%3Bb%20c.txt`, param.Format("filename", "a;b c.txt"))
}

func TestLookup_Extended(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, body, want string
	}{
		{"quoted pair", `attachment; filename="a\"b\\c.txt"`, `a"b\c.txt`},
		{"extended", `attachment; filename*=utf-8''r%C3%A9sum%C3%A9.pdf`, "résumé.pdf"},
		{"extended wins", `attachment; filename="resume.pdf"; FILENAME*=UTF-8'fr'r%C3%A9sum%C3%A9.pdf`, "résumé.pdf"},
		{"latin1", `attachment; filename*=iso-8859-1''caf%E9.txt`, "café.txt"},
		{"sections", `attachment; filename*0*=utf-8''r%C3%A9; filename*1="sum"; filename*2*=%C3%A9.pdf`, "résumé.pdf"},
		{"broken falls back", `attachment; filename*=nonsense; filename=plain.txt`, "plain.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pv, err := param.Parse(tt.body)
			require.NoError(t, err)

			fn, ok := pv.Lookup(param.Filename)
			assert.True(t, ok)
			assert.Equal(t, tt.want, fn)
		})
	}

	for _, name := range []string{"résumé.pdf", `a"b.txt`, "x;y", "plain"} {
		pv, err := param.Parse("attachment; " + param.Format(param.Filename, name))
		require.NoError(t, err)
		assert.Equal(t, name, pv.Filename())
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	mt := param.New("text/json", param.Param{Key: "charset", Value: "trash", HasValue: true})
	assert.Equal(t, "text", mt.Type())
	assert.Equal(t, "json", mt.Subtype())
	assert.Equal(t, "trash", mt.Charset())
	assert.Equal(t, "text/json; charset=trash", mt.String())
}
