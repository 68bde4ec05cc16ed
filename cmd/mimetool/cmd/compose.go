package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/mimetype"
	"github.com/zostay/go-mimetree/message/transfer"
)

type composeOptions struct {
	from      string
	to        []string
	cc        []string
	replyTo   []string
	subject   string
	inReplyTo string
	body      string
	html      string
	attach    []string
	auto      bool
}

func (a *app) composeCmd() *cobra.Command {
	opts := &composeOptions{}

	composeCmd := &cobra.Command{
		Use:   "compose",
		Short: "Builds a new message and prints it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.compose(cmd, opts)
			if err != nil {
				return err
			}

			_, err = m.WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	flags := composeCmd.Flags()
	flags.StringVar(&opts.from, "from", "", "sender address (defaults to user@hostname)")
	flags.StringSliceVar(&opts.to, "to", nil, "recipient address (repeatable)")
	flags.StringSliceVar(&opts.cc, "cc", nil, "carbon copy address (repeatable)")
	flags.StringSliceVar(&opts.replyTo, "reply-to", nil, "reply address (repeatable)")
	flags.StringVar(&opts.subject, "subject", "", "subject of the message")
	flags.StringVar(&opts.inReplyTo, "in-reply-to", "", "message ID being replied to")
	flags.StringVar(&opts.body, "body", "", "file holding the plain text body, or - for standard input")
	flags.StringVar(&opts.html, "html", "", "file holding an HTML version of the body")
	flags.StringSliceVar(&opts.attach, "attach", nil, "file to attach (repeatable)")
	flags.BoolVar(&opts.auto, "auto-generated", false, "mark the message as automatically generated")
	_ = composeCmd.MarkFlagRequired("to")
	_ = composeCmd.MarkFlagRequired("body")

	return composeCmd
}

// checkAddresses fails if any of the addresses cannot be parsed.
func checkAddresses(field string, addrs []string) error {
	for _, a := range addrs {
		if _, err := header.ParseAddressListStrict(a); err != nil {
			return fmt.Errorf("bad %s address %q: %w", field, a, err)
		}
	}
	return nil
}

func (a *app) compose(cmd *cobra.Command, opts *composeOptions) (*message.Part, error) {
	for field, addrs := range map[string][]string{
		header.To:      opts.to,
		header.Cc:      opts.cc,
		header.ReplyTo: opts.replyTo,
	} {
		if err := checkAddresses(field, addrs); err != nil {
			return nil, err
		}
	}
	if opts.from != "" {
		if err := checkAddresses(header.From, []string{opts.from}); err != nil {
			return nil, err
		}
	}

	text, err := readInput(cmd, opts.body)
	if err != nil {
		return nil, err
	}

	body := message.CreateDataPart(transfer.QuotedPrintable, []header.Pair{
		{Name: header.ContentType, Value: mimetype.TextPlain + "; charset=utf-8"},
	}, text)

	if opts.html != "" {
		html, err := readInput(cmd, opts.html)
		if err != nil {
			return nil, err
		}

		body, err = message.CreateAlternative(body, message.CreateDataPart(transfer.QuotedPrintable, []header.Pair{
			{Name: header.ContentType, Value: mimetype.TextHTML + "; charset=utf-8"},
		}, html))
		if err != nil {
			return nil, err
		}
	}

	atts := make([]message.FileAttachment, 0, len(opts.attach))
	for _, path := range opts.attach {
		p, err := message.DataPartFromFile(path)
		if err != nil {
			return nil, err
		}
		atts = append(atts, message.FileAttachment{Name: filepath.Base(path), Part: p})
	}

	return message.CreateEnvelope(a.cfg.Env(), message.Envelope{
		From:          opts.from,
		To:            opts.to,
		Cc:            opts.cc,
		ReplyTo:       opts.replyTo,
		Subject:       opts.subject,
		InReplyTo:     opts.inReplyTo,
		AutoGenerated: opts.auto,
		Attachments:   atts,
		Body:          body,
	})
}
