package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrUnknownEncoding is returned when decoding an octet stream whose encoding
// has no entry in Transcodings.
var ErrUnknownEncoding = errors.New("unknown transfer encoding")

// OctetStream is a transfer encoded payload along with the encoding that was
// applied to it.
type OctetStream struct {
	Encoding Encoding
	Content  []byte
}

// Encode applies the named encoding to data. An encoding that has no entry in
// Transcodings leaves the bytes as-is.
func Encode(data []byte, enc Encoding) *OctetStream {
	tc, known := Transcodings[enc]
	if !known {
		tc = AsIsTranscoder
	}

	buf := &bytes.Buffer{}
	w := tc.Encoder(buf)
	// writes to a bytes.Buffer do not fail
	_, _ = w.Write(data)
	_ = w.Close()

	return &OctetStream{Encoding: enc, Content: buf.Bytes()}
}

// Decode reverses the transfer encoding and returns the decoded bytes. It
// returns ErrUnknownEncoding if the encoding is not in Transcodings and a
// wrapped decoder error if the content is malformed.
func (s *OctetStream) Decode() ([]byte, error) {
	tc, known := Transcodings[s.Encoding]
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, s.Encoding)
	}

	data, err := io.ReadAll(tc.Decoder(bytes.NewReader(s.Content)))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Encoding, err)
	}

	return data, nil
}

// Len returns the length of the encoded content.
func (s *OctetStream) Len() int {
	return len(s.Content)
}
