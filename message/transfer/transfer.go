package transfer

import (
	"io"
	"strings"
)

// Encoding names a Content-Transfer-Encoding. The value is the canonical,
// lowercase form used in the header.
type Encoding string

// The encodings known to Transcodings. None stands for a missing header.
const (
	None            Encoding = ""
	Bit7            Encoding = "7bit"
	Bit8            Encoding = "8bit"
	Binary          Encoding = "binary"
	QuotedPrintable Encoding = "quoted-printable"
	Base64          Encoding = "base64"
)

// ParseEncoding turns a Content-Transfer-Encoding field body into an
// Encoding. Case and surrounding whitespace are ignored. The boolean is false
// when the result is not one of the encodings in Transcodings.
func ParseEncoding(s string) (Encoding, bool) {
	enc := Encoding(strings.ToLower(strings.TrimSpace(s)))
	_, known := Transcodings[enc]
	return enc, known
}

// String returns the canonical header value of the encoding.
func (e Encoding) String() string {
	return string(e)
}

// Transcoding holds the stream constructors for one encoding.
type Transcoding struct {
	// Encoder wraps w so that payload written to it reaches w in wire form.
	// The returned writer must be closed to flush any partial block.
	Encoder func(w io.Writer) io.WriteCloser

	// Decoder wraps r so that reading from it yields the payload of the
	// wire form read from r.
	Decoder func(r io.Reader) io.Reader
}

// AsIsTranscoder passes bytes through in both directions.
var AsIsTranscoder = Transcoding{NewAsIsEncoder, NewAsIsDecoder}

// Transcodings maps each supported encoding to its streams. Entries may be
// added or replaced to change how every OctetStream in the process behaves.
var Transcodings = map[Encoding]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {NewQuotedPrintableEncoder, NewQuotedPrintableDecoder},
	Base64:          {NewBase64Encoder, NewBase64Decoder},
}
