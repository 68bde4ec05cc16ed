package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/walk"
)

func (a *app) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree message",
		Short: "Prints the part tree of a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.readMessage(cmd, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			return walk.AndProcess(
				func(part *message.Part, container *header.Header, parents []*message.Part) error {
					_, err := fmt.Fprintln(w, strings.Repeat("  ", len(parents))+describePart(part))
					return err
				}, m,
			)
		},
	}
}

// describePart summarizes a part on one line.
func describePart(p *message.Part) string {
	desc := []string{message.ContentType(p)}

	if d := message.ContentDisposition(p); d.Attachment {
		desc = append(desc, d.String())
	}

	if cid, ok := message.RelatedPartCID(p); ok {
		desc = append(desc, "cid="+cid)
	}

	if subject, err := p.Header().GetSubject(); err == nil {
		desc = append(desc, fmt.Sprintf("subject=%q", subject))
	}

	if date, err := p.Header().GetDate(); err == nil {
		desc = append(desc, "date="+date.UTC().Format(time.RFC3339))
	}

	return strings.Join(desc, " ")
}
