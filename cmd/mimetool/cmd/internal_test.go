package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteLineDiff(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	writeLineDiff(buf, "a\nb\nc\n", "a\nb\nc\n")
	assert.Empty(t, buf.String())

	buf.Reset()
	writeLineDiff(buf, "a\nb\nc\n", "a\nB\nc")
	assert.Equal(t, `--- original
+++ round-trip
 a
-b
-c
+B
+c
\ No newline at end of file
`, buf.String())

	buf.Reset()
	writeLineDiff(buf, "a\nb\nc\n", "a\nB\nc\n")
	assert.Equal(t, `--- original
+++ round-trip
 a
-b
+B
 c
`, buf.String())
}

func TestUniqueName(t *testing.T) {
	t.Parallel()

	used := map[string]bool{}
	assert.Equal(t, "a.txt", uniqueName(used, "a.txt"))
	assert.Equal(t, "a-1.txt", uniqueName(used, "a.txt"))
	assert.Equal(t, "a-2.txt", uniqueName(used, "dir/a.txt"))
	assert.Equal(t, "passwd", uniqueName(used, "../../etc/passwd"))
	assert.Equal(t, "attachment", uniqueName(used, ""))
	assert.Equal(t, "attachment-1", uniqueName(used, "/"))
}
