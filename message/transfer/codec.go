package transfer

import (
	"encoding/base64"
	"io"
	"mime/quotedprintable"
)

// base64LineLength is the longest line of base64 allowed by RFC 2045.
const base64LineLength = 76

// asIsWriter passes writes through and has nothing to flush.
type asIsWriter struct {
	io.Writer
}

func (asIsWriter) Close() error { return nil }

// NewAsIsEncoder returns an io.WriteCloser that writes bytes unchanged.
func NewAsIsEncoder(w io.Writer) io.WriteCloser {
	return asIsWriter{w}
}

// NewAsIsDecoder returns r, which already reads the decoded bytes.
func NewAsIsDecoder(r io.Reader) io.Reader {
	return r
}

// lineWrapper writes a line break each time width bytes have been written on
// the current line and more are on the way.
type lineWrapper struct {
	w     io.Writer
	width int
	col   int
	brk   []byte
}

func (lw *lineWrapper) Write(b []byte) (int, error) {
	written := 0
	for len(b) > 0 {
		if lw.col == lw.width {
			if _, err := lw.w.Write(lw.brk); err != nil {
				return written, err
			}
			lw.col = 0
		}

		chunk := min(len(b), lw.width-lw.col)
		n, err := lw.w.Write(b[:chunk])
		written += n
		lw.col += n
		if err != nil {
			return written, err
		}
		b = b[chunk:]
	}
	return written, nil
}

// NewBase64Encoder returns an io.WriteCloser that writes the base64 form of
// its input to w, in lines of 76 characters separated by "\n". No break
// follows the last line. Close must be called to write the final characters.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	return base64.NewEncoder(base64.StdEncoding, &lineWrapper{
		w:     w,
		width: base64LineLength,
		brk:   []byte{'\n'},
	})
}

// NewBase64Decoder returns an io.Reader of the bytes encoded as base64 in r.
// Line breaks in r are skipped.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}

// NewQuotedPrintableEncoder returns an io.WriteCloser that writes the
// quoted-printable form of its input to w. Line breaks in the input are
// encoded like any other byte, so decoding gives back exactly the input.
// Close must be called to flush the last line.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	qpw.Binary = true
	return qpw
}

// NewQuotedPrintableDecoder returns an io.Reader of the bytes encoded as
// quoted-printable in r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
