package header

import (
	"bytes"
	"errors"

	"github.com/zostay/go-mimetree/message/header/field"
)

// Parse reads m, a header without its terminating blank line, using lb as
// the line ending. Passing Meh detects the line ending from m.
//
// Fields keep their original bytes, so writing an unmodified result gives m
// back. Lines before the first field are kept too, and the
// *field.BadStartError that describes them is returned with a usable header.
// Callers may treat that error as a warning.
func Parse(m []byte, lb Break) (*Header, error) {
	if lb == Meh {
		lb = DetectBreak(m)
	}
	br := lb.Bytes()

	lines, err := field.ParseLines(m, br)
	var bad *field.BadStartError
	if err != nil && !errors.As(err, &bad) {
		return nil, err
	}

	h := &Header{
		lbr:          lb,
		fields:       make([]*field.Field, 0, len(lines)),
		unterminated: len(m) > 0 && !bytes.HasSuffix(m, br),
	}
	for _, line := range lines {
		h.fields = append(h.fields, field.Parse(line, br))
	}

	if bad != nil {
		h.badStart = bad.BadStart
		return h, bad
	}
	return h, nil
}
