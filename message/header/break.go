package header

import "bytes"

// Break is the line ending used between header fields and after the header.
type Break string

// Line endings found in the wild. Parsed headers remember the one they were
// read with so they can be written back the same way.
const (
	Meh  Break = ""     // unknown; DefaultBreak is used on output
	CRLF Break = "\r\n" // RFC 5322
	LF   Break = "\n"   // Unix mailboxes
	CR   Break = "\r"   // classic Mac OS
	LFCR Break = "\n\r" // seen in broken exports
)

// DefaultBreak is the line ending of headers that were built rather than
// parsed.
const DefaultBreak = LF

// String returns the line ending.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the line ending as bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}

// DetectBreak returns the line ending used in b. Two byte endings are
// checked before single byte ones. DefaultBreak is returned if b holds no line
// ending.
func DetectBreak(b []byte) Break {
	for _, lb := range []Break{CRLF, LFCR, LF, CR} {
		if bytes.Contains(b, lb.Bytes()) {
			return lb
		}
	}
	return DefaultBreak
}
