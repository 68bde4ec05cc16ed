package message

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/zostay/go-mimetree/internal/scanner"
	"github.com/zostay/go-mimetree/message/header"
)

// Parser limits.
const (
	// DefaultChunkSize is how many bytes are read at a time while looking for
	// the end of the header.
	DefaultChunkSize = 16_384

	// DefaultMaxHeaderLength caps the bytes read while looking for the end of
	// the header.
	DefaultMaxHeaderLength = bufio.MaxScanTokenSize

	// DefaultMaxPartLength caps the size of any one part of a multipart body.
	DefaultMaxPartLength = 64 * 1024 * 1024
)

// headerEnds are the blank lines that may end a header, each made of two
// copies of a line ending.
var headerEnds = [][]byte{
	[]byte("\r\n\r\n"),
	[]byte("\n\r\n\r"),
	[]byte("\n\n"),
	[]byte("\r\r"),
}

type parser struct {
	maxHeaderLen int
	maxPartLen   int
	chunkSize    int
}

// ParseOption adjusts the limits used by Parse() and ParseContent().
type ParseOption func(pr *parser)

func newParser(opts []ParseOption) *parser {
	pr := &parser{
		maxHeaderLen: DefaultMaxHeaderLength,
		maxPartLen:   DefaultMaxPartLength,
		chunkSize:    DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(pr)
	}
	return pr
}

// WithMaxHeaderLength sets how many bytes may be read before the end of the
// header must have been found. Past that, parsing fails with ErrLargeHeader.
// A value of 0 or less removes the limit. The default is
// DefaultMaxHeaderLength.
func WithMaxHeaderLength(n int) ParseOption {
	return func(pr *parser) { pr.maxHeaderLen = n }
}

// WithMaxPartLength sets the largest part a multipart body may hold. A larger
// part makes ParseContent fail with ErrLargePart. The default is
// DefaultMaxPartLength.
func WithMaxPartLength(n int) ParseOption {
	return func(pr *parser) { pr.maxPartLen = n }
}

// WithChunkSize sets the read size used while looking for the end of the
// header. The default is DefaultChunkSize.
func WithChunkSize(chunkSize int) ParseOption {
	return func(pr *parser) { pr.chunkSize = chunkSize }
}

// findHeaderEnd returns the offset just past the blank line ending the header
// in buf and the line ending that blank line is made of. The earliest blank
// line of any kind wins. The offset is -1 when there is none yet.
//
// A part inside a multipart may have no header at all, in which case its
// first byte is the line ending.
func findHeaderEnd(buf []byte, subpart bool) (int, []byte) {
	if subpart {
		for _, end := range headerEnds {
			lb := end[:len(end)/2]
			if bytes.HasPrefix(buf, lb) {
				return len(lb), lb
			}
		}
	}

	at, pos := -1, -1
	var lb []byte
	for _, end := range headerEnds {
		ix := bytes.Index(buf, end)
		if ix < 0 || (at >= 0 && ix >= at) {
			continue
		}
		at, pos, lb = ix, ix+len(end), end[:len(end)/2]
	}
	return pos, lb
}

// readHeader reads r a chunk at a time until the end of the header turns up.
// It returns the header without its blank line, the line ending, and the
// rest of the input as the body. When the input holds no blank line, all of
// it is header and the body is nil.
func (pr *parser) readHeader(r io.Reader, subpart bool) ([]byte, header.Break, []byte, error) {
	chunk := make([]byte, pr.chunkSize)
	var buf bytes.Buffer
	for {
		n, readErr := r.Read(chunk)
		if pr.maxHeaderLen > 0 && buf.Len()+n > pr.maxHeaderLen {
			return nil, "", nil, ErrLargeHeader
		}
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, "", nil, readErr
		}
		buf.Write(chunk[:n])

		if pos, lb := findHeaderEnd(buf.Bytes(), subpart); pos >= 0 {
			seen := buf.Bytes()
			rest, err := io.ReadAll(r)
			if err != nil {
				return nil, "", nil, err
			}

			hdr := bytes.Clone(seen[:pos-len(lb)])
			body := make([]byte, 0, len(seen)-pos+len(rest))
			body = append(append(body, seen[pos:]...), rest...)
			return hdr, header.Break(lb), body, nil
		}

		if readErr != nil {
			hdr := buf.Bytes()
			return hdr, header.DetectBreak(hdr), nil, nil
		}
	}
}

// parsePart reads a header and body from r.
func (pr *parser) parsePart(r io.Reader, subpart bool) (*Part, error) {
	raw, lbr, body, err := pr.readHeader(r, subpart)
	if err != nil {
		return nil, err
	}

	// a BadStartError still yields a header; the junk is written back out
	h, err := header.Parse(raw, lbr)
	if h == nil {
		return nil, err
	}

	return &Part{header: h, body: body, headerOnly: body == nil}, nil
}

// Parse reads a message from r. The header is read in chunks of
// WithChunkSize() until a blank line of any line ending style is found. That
// line ending is the one the header is split with. Whatever follows is the
// body, left unparsed until ParseContent() is called on the Part.
//
// A header longer than WithMaxHeaderLength() fails with ErrLargeHeader, and
// r may have been partly read by then. Input without a blank line is all
// header, and the Part has no body.
//
// Writing the returned Part with WriteTo() gives back the input exactly.
func Parse(r io.Reader, opts ...ParseOption) (*Part, error) {
	return newParser(opts).parsePart(r, false)
}

// ParseBytes is Parse() for input already in memory.
func ParseBytes(b []byte, opts ...ParseOption) (*Part, error) {
	return Parse(bytes.NewReader(b), opts...)
}

// multipartSplitter is a bufio.SplitFunc state machine returning the parts of
// a multipart body as tokens. The prologue and epilogue are kept on the
// splitter.
//
// Line endings are assigned so that writing the pieces back reproduces the
// body: the one before the opening delimiter goes to the prologue and the one
// after the closing delimiter to the epilogue. Those around the delimiters in
// between belong to the delimiters.
type multipartSplitter struct {
	lb               []byte
	opening, between []byte
	closing          []byte

	state    int
	gotFirst bool
	prologue []byte
	epilogue []byte
}

const (
	atOpening = iota
	inParts
	atClosing
)

func newMultipartSplitter(boundary string, br header.Break) *multipartSplitter {
	return &multipartSplitter{
		lb:      br.Bytes(),
		opening: []byte(fmt.Sprintf("--%s%s", boundary, br)),
		between: []byte(fmt.Sprintf("%s--%s%s", br, boundary, br)),
		closing: []byte(fmt.Sprintf("%s--%s--", br, boundary)),
	}
}

func (s *multipartSplitter) split(data []byte, atEOF bool) (int, []byte, error) {
	switch s.state {
	case atOpening:
		// an opening delimiter with nothing before it has no leading line
		// ending, so it is checked for on its own
		if !atEOF && len(data) < len(s.opening) {
			return 0, nil, nil
		}
		s.state = inParts
		if bytes.HasPrefix(data, s.opening) {
			s.prologue = []byte{}
			s.gotFirst = true
			return len(s.opening), nil, scanner.ErrContinue
		}
		return 0, nil, scanner.ErrContinue

	case inParts:
		ix := bytes.Index(data, s.between)
		if ix < 0 {
			if atEOF {
				s.state = atClosing
				return 0, nil, scanner.ErrContinue
			}
			return 0, nil, nil
		}

		advance := ix + len(s.between)
		if !s.gotFirst {
			s.prologue = bytes.Clone(data[:ix+len(s.lb)])
			s.gotFirst = true
			return advance, nil, nil
		}
		return advance, data[:ix], nil

	case atClosing:
		// without a closing delimiter the remainder is the last part and the
		// epilogue stays nil so none is written back
		if ix := bytes.Index(data, s.closing); ix >= 0 {
			s.epilogue = bytes.Clone(data[ix+len(s.closing):])
			return len(data), data[:ix], bufio.ErrFinalToken
		}
		return len(data), data, bufio.ErrFinalToken
	}

	panic("multipart splitter in unknown state")
}

// splitMultipart breaks a multipart body into its prologue, parts, and
// epilogue. A body in which the boundary never appears is an
// ErrMalformedMultipart.
func (pr *parser) splitMultipart(body []byte, boundary string, br header.Break) (*Multipart, error) {
	sp := newMultipartSplitter(boundary, br)

	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, pr.chunkSize), pr.maxPartLen)
	sc.Split(scanner.MakeSplitFuncExitByAdvance(sp.split))

	var tokens [][]byte
	for sc.Scan() {
		tokens = append(tokens, bytes.Clone(sc.Bytes()))
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, ErrLargePart
		}
		return nil, err
	}

	if sp.prologue == nil && sp.epilogue == nil {
		return nil, ErrMalformedMultipart
	}

	parts := make([]*Part, len(tokens))
	for i, tok := range tokens {
		part, err := pr.parsePart(bytes.NewReader(tok), true)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		parts[i] = part
	}

	return &Multipart{
		Boundary: boundary,
		Prologue: sp.prologue,
		Epilogue: sp.epilogue,
		Parts:    parts,
	}, nil
}
