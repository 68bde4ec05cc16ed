package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zostay/go-mimetree/message/walk"
)

// attachmentInfo is the listing of a single attachment.
type attachmentInfo struct {
	Filename    string `yaml:"filename"`
	ContentType string `yaml:"content_type"`
	Size        int    `yaml:"size"`
	MD5         string `yaml:"md5,omitempty"`
	Error       string `yaml:"error,omitempty"`
}

func (a *app) attachmentsCmd() *cobra.Command {
	attachmentsCmd := &cobra.Command{
		Use:   "attachments",
		Short: "Commands related to attachments",
	}

	attachmentsCmd.AddCommand(a.attachmentsListCmd(), a.attachmentsExtractCmd())
	return attachmentsCmd
}

func (a *app) attachmentsListCmd() *cobra.Command {
	var format string

	listCmd := &cobra.Command{
		Use:   "list message",
		Short: "Lists the attachments of a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.readMessage(cmd, args[0])
			if err != nil {
				return err
			}

			atts := walk.AllAttachments(m)
			infos := make([]attachmentInfo, len(atts))
			for i, att := range atts {
				infos[i] = attachmentInfo{
					Filename:    att.Filename(),
					ContentType: att.ContentType(),
				}

				sum, err := att.MD5()
				if err != nil {
					infos[i].Error = err.Error()
					continue
				}
				infos[i].MD5 = sum
				infos[i].Size, _ = att.Size()
			}

			switch format {
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(infos); err != nil {
					return err
				}
				return enc.Close()

			case "text":
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, info := range infos {
					sum := info.MD5
					if info.Error != "" {
						sum = "error: " + info.Error
					}
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", info.Filename, info.ContentType, info.Size, sum)
				}
				return tw.Flush()

			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	listCmd.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return listCmd
}

func (a *app) attachmentsExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract message dir",
		Short: "Writes each attachment of a message into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.readMessage(cmd, args[0])
			if err != nil {
				return err
			}

			dir := args[1]
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			log := a.log
			used := map[string]bool{}
			for _, att := range walk.AllAttachments(m) {
				name := uniqueName(used, att.Filename())
				path := filepath.Join(dir, name)
				if err := att.ToFile(path); err != nil {
					return fmt.Errorf("extract %s: %w", att.Filename(), err)
				}

				log.Info().Str("filename", att.Filename()).Str("path", path).Msg("extracted attachment")
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		},
	}
}

// uniqueName strips any directories from name and numbers repeats so that no
// two attachments are written to the same file.
func uniqueName(used map[string]bool, name string) string {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		base = "attachment"
	}

	candidate := base
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	for n := 1; used[candidate]; n++ {
		candidate = stem + "-" + strconv.Itoa(n) + ext
	}

	used[candidate] = true
	return candidate
}
