package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

func (a *app) roundtripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip message",
		Short: "Shows the diff of a single message round-trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			m, err := a.parseMessage(raw, args[0])
			if err != nil {
				return err
			}

			writeLineDiff(cmd.OutOrStdout(), string(raw), m.String())
			return nil
		},
	}
}

// writeLineDiff writes a line by line diff of a and b. Nothing is written when
// they are the same.
func writeLineDiff(w io.Writer, a, b string) {
	if a == b {
		return
	}

	dmp := diffmatchpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lines)

	fmt.Fprintln(w, "--- original")
	fmt.Fprintln(w, "+++ round-trip")
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, prefix, line)
			if !strings.HasSuffix(line, "\n") {
				fmt.Fprintln(w, "\n\\ No newline at end of file")
			}
		}
	}
}
