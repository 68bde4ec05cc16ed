package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/mimetype"
	"github.com/zostay/go-mimetree/message/walk"
)

func (a *app) inlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inline message",
		Short: "Lists the parts of a message meant to be shown directly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.readMessage(cmd, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, p := range walk.InlineParts(m) {
				fmt.Fprintln(w, describePart(p))
				if message.ContentType(p) != mimetype.MultipartAlternative {
					continue
				}

				for _, alt := range walk.AlternativeParts(p) {
					fmt.Fprintln(w, "  alternative:", describePart(alt))
				}
			}

			return nil
		},
	}
}
