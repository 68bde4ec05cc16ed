package message

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/mimetype"
)

// addressSeparator joins the addresses of To, Cc, and Reply-To, folding each
// address onto its own line with the given line break.
func addressSeparator(br header.Break) string {
	return "," + br.String() + "\t"
}

// Env is the process state used to fill in envelope defaults. Passing it in
// keeps envelope construction deterministic under test.
type Env struct {
	// User is the local user name used in the default From and Message-Id.
	User string

	// Program is the path of the running program. Its base name is used in
	// the default Message-Id.
	Program string

	// Hostname is used in the default From and Message-Id.
	Hostname string

	// Now returns the time used for the default Date.
	Now func() time.Time

	// NewID returns the unique token used in the default Message-Id.
	NewID func() string
}

// DefaultEnv returns an Env describing the running process.
func DefaultEnv() Env {
	env := Env{
		User:     os.Getenv("USER"),
		Hostname: "localhost",
		Now:      time.Now,
		NewID:    uuid.NewString,
	}

	if u, err := user.Current(); err == nil && u.Username != "" {
		env.User = u.Username
	}
	if env.User == "" {
		env.User = "nobody"
	}

	if len(os.Args) > 0 {
		env.Program = os.Args[0]
	}

	if hn, err := os.Hostname(); err == nil && hn != "" {
		env.Hostname = hn
	}

	return env
}

func (env Env) now() time.Time {
	if env.Now == nil {
		return time.Now()
	}
	return env.Now()
}

func (env Env) newID() string {
	if env.NewID == nil {
		return uuid.NewString()
	}
	return env.NewID()
}

// From returns the default From address, user@hostname.
func (env Env) From() string {
	return fmt.Sprintf("%s@%s", env.User, env.Hostname)
}

// MessageID returns a fresh Message-Id of the form
// <user/program+id@hostname>.
func (env Env) MessageID() string {
	return fmt.Sprintf("<%s/%s+%s@%s>", env.User, filepath.Base(env.Program), env.newID(), env.Hostname)
}

// Date returns the current time formatted for the Date field.
func (env Env) Date() string {
	return FormatDate(env.now())
}

// FormatDate renders t for the Date field, e.g.,
// "Mon, 02 Jan 2006 15:04:05 -0700". UTC is rendered as +0000.
func FormatDate(t time.Time) string {
	return t.Format(time.RFC1123Z)
}

// FileAttachment is a part to attach to an envelope under a file name.
type FileAttachment struct {
	Name string
	Part *Part
}

// Envelope describes a message to build with CreateEnvelope. Empty optional
// fields are filled in from the Env or left out.
type Envelope struct {
	From          string
	To            []string
	Cc            []string
	ReplyTo       []string
	Subject       string
	ID            string
	InReplyTo     string
	Date          string
	AutoGenerated bool

	// Extra fields are placed first in the header, in order.
	Extra []header.Pair

	Attachments []FileAttachment
	Body        *Part
}

// headerPairs returns the envelope fields in the order they are written,
// folded with br.
func (e Envelope) headerPairs(env Env, br header.Break) []header.Pair {
	pairs := make([]header.Pair, 0, len(e.Extra)+10)
	pairs = append(pairs, e.Extra...)

	from := e.From
	if from == "" {
		from = env.From()
	}
	pairs = append(pairs, header.Pair{Name: header.From, Value: from})

	for _, al := range []struct {
		name  string
		addrs []string
	}{
		{header.To, e.To},
		{header.Cc, e.Cc},
		{header.ReplyTo, e.ReplyTo},
	} {
		if len(al.addrs) > 0 {
			pairs = append(pairs, header.Pair{Name: al.name, Value: strings.Join(al.addrs, addressSeparator(br))})
		}
	}

	pairs = append(pairs, header.Pair{Name: header.Subject, Value: e.Subject})

	id := e.ID
	if id == "" {
		id = env.MessageID()
	}
	pairs = append(pairs, header.Pair{Name: header.MessageID, Value: id})

	if e.InReplyTo != "" {
		pairs = append(pairs, header.Pair{Name: header.InReplyTo, Value: e.InReplyTo})
	}

	if e.AutoGenerated {
		pairs = append(pairs,
			header.Pair{Name: header.AutoSubmitted, Value: "auto-generated"},
			header.Pair{Name: header.Precedence, Value: "bulk"},
		)
	}

	date := e.Date
	if date == "" {
		date = env.Date()
	}
	pairs = append(pairs, header.Pair{Name: header.Date, Value: date})

	return pairs
}

// CreateEnvelope builds a complete message. The header is made of, in order,
// the extra fields, From, To, Cc, Reply-To, Subject, Message-Id, In-Reply-To,
// Auto-Submitted and Precedence when auto generated, and Date. Address lists
// that are empty are left out. Caller supplied ID and Date values are used
// as-is.
//
// Without attachments, these fields are placed above the fields of the body.
// With attachments, the body, marked inline, and each attachment are joined
// into a multipart/mixed under these fields. Each attachment is marked with
// its file name and given a Content-Type of application/x-octet-stream if it
// has none.
//
// It returns ErrNoBody if e.Body is nil.
func CreateEnvelope(env Env, e Envelope) (*Part, error) {
	if e.Body == nil {
		return nil, ErrNoBody
	}

	if len(e.Attachments) == 0 {
		br := e.Body.Header().Break()
		h := header.OfList(header.Normalize, e.headerPairs(env, br)...)
		h.SetBreak(br)
		h.AddHeader(e.Body.Header())
		return New(h, e.Body.Body()), nil
	}

	parts := make([]*Part, 0, len(e.Attachments)+1)
	parts = append(parts, setPresentation(e.Body, PresentationInline))
	for _, a := range e.Attachments {
		disposition := AttachmentNamed(a.Name).String()
		parts = append(parts, a.Part.ModifyHeader(func(h *header.Header) {
			if _, err := h.Get(header.ContentType); err != nil {
				h.SetAtBottom(header.ContentType, mimetype.OctetStream)
			}
			h.SetAtBottom(header.ContentDisposition, disposition)
		}))
	}

	return CreateMultipart(mimetype.MultipartMixed, e.headerPairs(env, header.DefaultBreak), parts)
}
