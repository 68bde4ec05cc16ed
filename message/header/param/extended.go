package param

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// Format renders a key=value parameter. The value is quoted with Quote() when
// it is plain ASCII. Anything else, and values with characters this package
// cannot read back from a quoted string, are written in the RFC 2231 form
// key*=utf-8''percent-encoded.
func Format(key, value string) string {
	if needsExtended(value) {
		return key + "*=utf-8''" + percentEncode(value)
	}
	return key + "=" + Quote(value)
}

func needsExtended(v string) bool {
	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c >= utf8.RuneSelf, c < ' ', c == 0x7f, c == ';':
			return true
		}
	}
	return false
}

// isAttrChar reports whether c may appear unencoded in an RFC 2231 value.
func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

func percentEncode(v string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if isAttrChar(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0xf])
	}
	return sb.String()
}

// extended returns the decoded RFC 2231 value of parameter k, found either as
// k* or as the numbered sections k*0, k*1, and so on. Sections ending in "*"
// are percent-encoded. Only the first carries the charset'language' prefix.
func (pv *Value) extended(k string) (string, bool) {
	if v, ok := pv.raw(k + "*"); ok {
		charset, text, ok := splitCharset(Unquote(v))
		if !ok {
			return "", false
		}
		b, err := url.PathUnescape(text)
		if err != nil {
			return "", false
		}
		return decodeCharset(charset, []byte(b))
	}

	var (
		buf     []byte
		charset string
	)
	n := 0
	for ; ; n++ {
		sec := fmt.Sprintf("%s*%d", k, n)
		if v, ok := pv.raw(sec + "*"); ok {
			v = Unquote(v)
			if n == 0 {
				cs, text, ok := splitCharset(v)
				if !ok {
					return "", false
				}
				charset, v = cs, text
			}
			b, err := url.PathUnescape(v)
			if err != nil {
				return "", false
			}
			buf = append(buf, b...)
		} else if v, ok := pv.raw(sec); ok {
			buf = append(buf, Unquote(v)...)
		} else {
			break
		}
	}

	if n == 0 {
		return "", false
	}
	return decodeCharset(charset, buf)
}

// splitCharset splits charset'language'text and drops the language.
func splitCharset(v string) (string, string, bool) {
	charset, rest, ok := strings.Cut(v, "'")
	if !ok {
		return "", "", false
	}
	_, text, ok := strings.Cut(rest, "'")
	return charset, text, ok
}

func decodeCharset(charset string, b []byte) (string, bool) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "us-ascii":
		return string(b), true
	}

	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		return "", false
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(out), true
}
