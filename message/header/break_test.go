package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mimetree/message/header"
)

func TestBreak(t *testing.T) {
	t.Parallel()

	for lb, want := range map[header.Break][]byte{
		header.Meh:  {},
		header.CRLF: {'\r', '\n'},
		header.LF:   {'\n'},
		header.CR:   {'\r'},
		header.LFCR: {'\n', '\r'},
	} {
		assert.Equal(t, want, lb.Bytes())
		assert.Equal(t, string(want), lb.String())
	}
}

func TestDetectBreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want header.Break
	}{
		{"a: b\r\nc: d\r\n", header.CRLF},
		{"a: b\nc: d\n", header.LF},
		{"a: b\rc: d\r", header.CR},
		{"a: b\n\rc: d", header.LFCR},
		{"a: b", header.DefaultBreak},
		{"", header.DefaultBreak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, header.DetectBreak([]byte(tt.in)), "%q", tt.in)
	}
}
