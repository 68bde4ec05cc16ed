package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/attachment"
	"github.com/zostay/go-mimetree/message/header"
	"github.com/zostay/go-mimetree/message/mimetype"
	"github.com/zostay/go-mimetree/message/transfer"
	"github.com/zostay/go-mimetree/message/walk"
)

func (a *app) stripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip message",
		Short: "Replaces every attachment with a short note and prints the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.readMessage(cmd, args[0])
			if err != nil {
				return err
			}

			stripped, err := walk.MapFileAttachments(a.contextFor(cmd), m, removedNote,
				walk.WithConcurrency(a.cfg.Transform.Concurrency))
			if err != nil {
				return err
			}

			_, err = stripped.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

// removedNote replaces an attachment with a text part naming it.
func removedNote(_ context.Context, a *attachment.Attachment) (walk.Action, error) {
	sum, err := a.MD5()
	if err != nil {
		return walk.Keep(), err
	}

	note := fmt.Sprintf("The attachment %q (%s, MD5 %s) was removed.\n", a.Filename(), a.ContentType(), sum)
	return walk.Replace(message.CreateDataPart(transfer.QuotedPrintable, []header.Pair{
		{Name: header.ContentType, Value: mimetype.TextPlain + "; charset=utf-8"},
		{Name: header.ContentDisposition, Value: message.AttachmentNamed(a.Filename() + ".removed.txt").String()},
	}, []byte(note))), nil
}
