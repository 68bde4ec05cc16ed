package field

import (
	"bytes"
)

// BadStartError reports lines at the top of a header that could not belong to
// any field. The skipped bytes are kept so they can be written back.
type BadStartError struct {
	BadStart []byte
}

func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line is one field as found in a header, continuation lines and the trailing
// line break included.
type Line []byte

// Lines is the field lines of a header, in order.
type Lines []Line

// startsField reports whether line opens a new field: it must not begin with
// whitespace and must hold a colon somewhere.
func startsField(line []byte) bool {
	if line[0] == ' ' || line[0] == '\t' {
		return false
	}
	return bytes.IndexByte(line, ':') >= 0
}

// ParseLines groups the physical lines of m, split on lb, into field lines. m
// is the header alone, without the blank line after it.
//
// A line that does not start a field is a continuation of the field before
// it. Continuations seen before any field has started are collected into a
// *BadStartError, which is returned with the fields that follow.
func ParseLines(m, lb []byte) (Lines, error) {
	var (
		lines    = make(Lines, 0, bytes.Count(m, lb)+1)
		badStart []byte
	)

	for _, phys := range bytes.SplitAfter(m, lb) {
		switch {
		case len(phys) == 0:
			continue
		case startsField(phys):
			lines = append(lines, bytes.Clone(phys))
		case len(lines) > 0:
			last := len(lines) - 1
			lines[last] = append(lines[last], phys...)
		default:
			badStart = append(badStart, phys...)
		}
	}

	if badStart != nil {
		return lines, &BadStartError{BadStart: badStart}
	}
	return lines, nil
}

// Parse builds a Field from one field line. The trailing line break is not
// part of the raw bytes kept. A line with no colon becomes a field with an
// empty body whose name is the whole line.
//
// Encoded words in the body are decoded when possible. The raw bytes are kept
// as they were either way.
func Parse(f Line, lb []byte) *Field {
	raw := bytes.Clone(bytes.TrimSuffix(f, lb))

	name, body, _ := bytes.Cut(raw, []byte{':'})
	fld := &Field{
		name: string(bytes.TrimSpace(unfold(name))),
		body: string(bytes.TrimSpace(unfold(body))),
		raw:  raw,
	}

	if dec, err := Decode(fld.body); err == nil {
		fld.body = dec
	}
	return fld
}

// unfold drops CR and LF bytes, leaving the leading whitespace of each
// continuation in place.
func unfold(b []byte) []byte {
	return bytes.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, b)
}
