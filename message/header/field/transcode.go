package field

import (
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// CharsetDecoder converts text in a named charset to UTF-8 while decoding
// encoded words. Replace it to support charsets the IANA index lacks.
var CharsetDecoder = DefaultCharsetDecoder

// DefaultCharsetDecoder converts b from charset to UTF-8 using the MIME names
// of golang.org/x/text's IANA index.
func DefaultCharsetDecoder(charset string, b []byte) (string, error) {
	enc, err := ianaindex.MIME.Encoding(charset)
	switch {
	case err != nil:
		return "", err
	case enc == nil:
		return "", fmt.Errorf("charset %q is known but not supported", charset)
	}

	out, err := enc.NewDecoder().Bytes(b)
	return string(out), err
}

// CharsetDecoderToCharsetReader wraps decoder as a mime.WordDecoder
// CharsetReader.
func CharsetDecoderToCharsetReader(
	decoder func(string, []byte) (string, error),
) func(string, io.Reader) (io.Reader, error) {
	return func(charset string, in io.Reader) (io.Reader, error) {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}

		s, err := decoder(charset, b)
		if err != nil {
			return nil, err
		}
		return strings.NewReader(s), nil
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Encode returns body as UTF-8 B encoded words if it holds any non-ASCII
// byte and unchanged otherwise. Folds are kept: each folded line is encoded
// on its own and the line breaks and leading whitespace stay as they are.
func Encode(body string) string {
	if isASCII(body) {
		return body
	}

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line, cr := strings.CutSuffix(line, "\r")
		text := strings.TrimLeft(line, " \t")
		if !isASCII(text) {
			line = line[:len(line)-len(text)] + mime.BEncoding.Encode("utf-8", text)
		}
		if cr {
			line += "\r"
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// EncodeFor returns body as it should be written in a field with the given
// name. Encoded words may only stand in for text and phrases, so:
//
//   - in address fields, such as From and To, only non-ASCII display names
//     are encoded;
//   - structured fields, such as Content-Type and Message-Id, are left as-is,
//     and parameters are expected to be in RFC 2231 form already;
//   - everything else, Subject and unknown fields included, is encoded with
//     Encode().
func EncodeFor(name, body string) string {
	if isASCII(body) {
		return body
	}

	switch kindOf(name) {
	case addressField:
		return encodeAddressList(body)
	case structuredField:
		return body
	default:
		return Encode(body)
	}
}

type fieldKind int

const (
	unstructuredField fieldKind = iota
	addressField
	structuredField
)

var fieldKinds = map[string]fieldKind{
	"from":                      addressField,
	"sender":                    addressField,
	"reply-to":                  addressField,
	"to":                        addressField,
	"cc":                        addressField,
	"bcc":                       addressField,
	"resent-from":               addressField,
	"resent-sender":             addressField,
	"resent-to":                 addressField,
	"resent-cc":                 addressField,
	"resent-bcc":                addressField,
	"content-type":              structuredField,
	"content-disposition":       structuredField,
	"content-transfer-encoding": structuredField,
	"content-id":                structuredField,
	"content-language":          structuredField,
	"content-location":          structuredField,
	"message-id":                structuredField,
	"resent-message-id":         structuredField,
	"in-reply-to":               structuredField,
	"references":                structuredField,
	"date":                      structuredField,
	"resent-date":               structuredField,
	"mime-version":              structuredField,
	"received":                  structuredField,
	"return-path":               structuredField,
	"auto-submitted":            structuredField,
	"precedence":                structuredField,
}

func kindOf(name string) fieldKind {
	return fieldKinds[strings.ToLower(strings.TrimSpace(name))]
}

// encodeAddressList encodes the non-ASCII display names of an address list.
// Separators, folds, comments, and the addresses themselves are kept. A
// quoted display name is unquoted before encoding.
func encodeAddressList(body string) string {
	var sb strings.Builder
	for _, entry := range splitAddressList(body) {
		sb.WriteString(encodeDisplayName(entry))
	}
	return sb.String()
}

// splitAddressList splits body after each comma that is outside quotes,
// comments, and angle brackets. The pieces joined give body back.
func splitAddressList(body string) []string {
	var (
		entries []string
		start   int
		quoted  bool
		escaped bool
		depth   int
		angle   bool
	)
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && (quoted || depth > 0):
			escaped = true
		case quoted:
			quoted = c != '"'
		case depth > 0:
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			}
		case c == '"':
			quoted = true
		case c == '(':
			depth++
		case c == '<':
			angle = true
		case c == '>':
			angle = false
		case c == ',' && !angle:
			entries = append(entries, body[start:i+1])
			start = i + 1
		}
	}
	return append(entries, body[start:])
}

// encodeDisplayName encodes the phrase before the angle address of entry if
// it holds non-ASCII text. Entries without an angle address are returned
// unchanged.
func encodeDisplayName(entry string) string {
	lt := angleStart(entry)
	if lt < 0 || isASCII(entry[:lt]) {
		return entry
	}

	phrase := entry[:lt]
	name := strings.TrimLeft(phrase, " \t\r\n")
	lead := phrase[:len(phrase)-len(name)]
	name = strings.TrimRight(name, " \t\r\n")
	trail := phrase[len(lead)+len(name):]

	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		name = unquotePhrase(name[1 : len(name)-1])
	}

	return lead + mime.BEncoding.Encode("utf-8", name) + trail + entry[lt:]
}

// angleStart returns the index of the first '<' outside quotes and comments,
// or -1.
func angleStart(entry string) int {
	quoted, escaped, depth := false, false, 0
	for i := 0; i < len(entry); i++ {
		c := entry[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && (quoted || depth > 0):
			escaped = true
		case quoted:
			quoted = c != '"'
		case c == '(':
			depth++
		case c == ')' && depth > 0:
			depth--
		case depth > 0:
		case c == '"':
			quoted = true
		case c == '<':
			return i
		}
	}
	return -1
}

// unquotePhrase removes the backslash from each quoted-pair of s.
func unquotePhrase(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Decode replaces the encoded words in body with the text they stand for.
func Decode(body string) (string, error) {
	if !strings.Contains(body, "=?") {
		return body, nil
	}

	dec := mime.WordDecoder{CharsetReader: CharsetDecoderToCharsetReader(CharsetDecoder)}
	return dec.DecodeHeader(body)
}
