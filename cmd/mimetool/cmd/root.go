// Package cmd implements the mimetool command, which inspects and rewrites
// MIME messages.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mimetree/internal/config"
	"github.com/zostay/go-mimetree/internal/logger"
	"github.com/zostay/go-mimetree/message"
	"github.com/zostay/go-mimetree/message/walk"
)

// app is the state shared by the subcommands once the configuration is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	log        zerolog.Logger
}

// NewRootCommand builds the mimetool command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "mimetool",
		Short:         "Tools for inspecting and rewriting MIME messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			a.log = logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			walk.SetLogger(a.log)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", ".", "directory to search for mimetool.yaml")

	rootCmd.AddCommand(
		a.roundtripCmd(),
		a.treeCmd(),
		a.attachmentsCmd(),
		a.inlineCmd(),
		a.stripCmd(),
		a.composeCmd(),
	)

	return rootCmd
}

// Execute runs the mimetool command with the process arguments.
func Execute() error {
	rootCmd := NewRootCommand()
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// contextFor returns the context of cmd carrying the configured logger.
func (a *app) contextFor(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithLogger(ctx, a.log)
}

// readInput reads the named file, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// readMessage parses the named message using the configured limits.
func (a *app) readMessage(cmd *cobra.Command, path string) (*message.Part, error) {
	raw, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	return a.parseMessage(raw, path)
}

// parseMessage parses raw, read from path, using the configured limits.
func (a *app) parseMessage(raw []byte, path string) (*message.Part, error) {
	m, err := message.ParseBytes(raw, a.cfg.ParseOptions()...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	a.log.Debug().
		Str("path", path).
		Int("bytes", len(raw)).
		Msg("parsed message")

	return m, nil
}
