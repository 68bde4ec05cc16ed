// Package attachment provides a lazily decoded view of a part that is
// presented as a file attachment.
package attachment

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/transfer"
)

// Attachment is a part classified as an attachment along with its file name.
// The decoded payload and its hash are computed on first use and remembered.
// An Attachment is safe for concurrent use.
type Attachment struct {
	part     *message.Part
	filename string
	embedded *message.Part
	load     func() ([]byte, error)

	rawOnce sync.Once
	raw     []byte
	rawErr  error

	md5Once sync.Once
	md5     string
	md5Err  error
}

// Parse returns the attachment view of p or nil if p is presented inline or
// holds a multipart body. The container is the header of the multipart
// holding p, if any.
//
// Nothing is decoded here. If the body of p cannot be parsed, the error is
// reported by RawData(), MD5(), and ToFile().
func Parse(p *message.Part, container *header.Header) *Attachment {
	d := message.ContentDisposition(p)
	if !d.Attachment {
		return nil
	}

	a := &Attachment{part: p, filename: d.Filename}

	c, err := message.ParseContent(p, container)
	if err != nil {
		if mt, _ := p.Header().GetMediaType(); strings.HasPrefix(strings.ToLower(mt), "multipart/") {
			return nil
		}
		a.load = func() ([]byte, error) { return nil, err }
		return a
	}

	switch v := c.(type) {
	case *message.Multipart:
		return nil

	case *message.Nested:
		a.embedded = v.Message
		enc := transferEncoding(p)
		a.load = func() ([]byte, error) {
			return transfer.Encode(v.Message.Bytes(), enc).Content, nil
		}

	case *message.Data:
		a.load = v.Stream.Decode
	}

	return a
}

func transferEncoding(p *message.Part) transfer.Encoding {
	cte, err := p.Header().GetTransferEncoding()
	if err != nil || strings.TrimSpace(cte) == "" {
		return transfer.Bit7
	}
	enc, _ := transfer.ParseEncoding(cte)
	return enc
}

// Filename returns the file name of the attachment.
func (a *Attachment) Filename() string {
	return a.filename
}

// Header returns the header of the attachment part.
func (a *Attachment) Header() *header.Header {
	return a.part.Header()
}

// Part returns the attachment part.
func (a *Attachment) Part() *message.Part {
	return a.part
}

// EmbeddedMessage returns the attached message when the attachment is a
// message/rfc822 part and nil otherwise.
func (a *Attachment) EmbeddedMessage() *message.Part {
	return a.embedded
}

// ContentType returns the lowercased media type of the attachment.
func (a *Attachment) ContentType() string {
	return message.ContentType(a.part)
}

// RawData returns the payload of the attachment. For an attached message,
// this is the message encoded with the transfer encoding of the part. For
// anything else, it is the body with the transfer encoding removed.
func (a *Attachment) RawData() ([]byte, error) {
	a.rawOnce.Do(func() {
		a.raw, a.rawErr = a.load()
	})
	return a.raw, a.rawErr
}

// Size returns the length of RawData().
func (a *Attachment) Size() (int, error) {
	raw, err := a.RawData()
	return len(raw), err
}

// MD5 returns the MD5 digest of RawData() in uppercase hexadecimal. If
// RawData() fails, the same error is returned.
func (a *Attachment) MD5() (string, error) {
	a.md5Once.Do(func() {
		raw, err := a.RawData()
		if err != nil {
			a.md5Err = err
			return
		}

		sum := md5.Sum(raw)
		a.md5 = strings.ToUpper(hex.EncodeToString(sum[:]))
	})
	return a.md5, a.md5Err
}

// ToFile writes RawData() to the named file. If RawData() fails, the error is
// returned and the file system is not touched. The data is written to a
// temporary file in the same directory and renamed into place, so a failed
// write leaves no partial file behind.
func (a *Attachment) ToFile(path string) error {
	raw, err := a.RawData()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("attachment: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("attachment: write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("attachment: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("attachment: rename temp file: %w", err)
	}
	return nil
}
