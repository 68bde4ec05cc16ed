// Package mimetype maps file names to MIME types and picks the transfer
// encoding that suits each type.
package mimetype

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/zostay/go-mimetree/message/transfer"
)

// MIME types with special meaning to the builder and the traversals.
const (
	TextPlain            = "text/plain"
	TextHTML             = "text/html"
	ApplicationPDF       = "application/pdf"
	ImageJPEG            = "image/jpeg"
	ImagePNG             = "image/png"
	MultipartMixed       = "multipart/mixed"
	MultipartAlternative = "multipart/alternative"
	MultipartRelated     = "multipart/related"
	MultipartDigest      = "multipart/digest"
	MessageRFC822        = "message/rfc822"

	// OctetStream is the type assumed for content of unknown type.
	OctetStream = "application/x-octet-stream"
)

var byExtension = map[string]string{
	".txt":  TextPlain,
	".text": TextPlain,
	".htm":  TextHTML,
	".html": TextHTML,
	".pdf":  ApplicationPDF,
	".jpg":  ImageJPEG,
	".jpeg": ImageJPEG,
	".png":  ImagePNG,
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".css":  "text/css",
	".csv":  "text/csv",
	".json": "application/json",
	".xml":  "application/xml",
	".zip":  "application/zip",
	".eml":  MessageRFC822,
}

// FromFilename guesses the MIME type from the extension of the file name. The
// built-in table is consulted first and then the types known to the mime
// package. It returns OctetStream when nothing matches. Parameters such as
// charset are dropped.
func FromFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return OctetStream
	}

	if mt, ok := byExtension[ext]; ok {
		return mt
	}

	if mt := mime.TypeByExtension(ext); mt != "" {
		if ix := strings.IndexByte(mt, ';'); ix >= 0 {
			mt = mt[:ix]
		}
		return strings.TrimSpace(mt)
	}

	return OctetStream
}

// DefaultEncoding returns quoted-printable for plain text and HTML and base64
// for everything else.
func DefaultEncoding(mediaType string) transfer.Encoding {
	switch strings.ToLower(mediaType) {
	case TextPlain, TextHTML:
		return transfer.QuotedPrintable
	default:
		return transfer.Base64
	}
}

// IsMultipart reports whether the media type is one of the multipart types.
func IsMultipart(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(mediaType), "multipart/")
}
