// Package root wires the classifier's cobra command tree, following the
// teacher's cmd/root layout: a root command that only sets up logging,
// delegating actual work to its subcommands.
package root

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aiquest/classifier/pkg/logging"
)

type rootFlags struct {
	logCloser io.Closer
}

// NewRootCmd builds the classifier CLI's root command.
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "classifier",
		Short: "classifier - AI Act questionnaire classification engine",
		Long:  "classifier serves the declarative, YAML-driven questionnaire that classifies an AI system against the AI Act.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, closer, err := logging.Setup()
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			flags.logCloser = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if flags.logCloser != nil {
				if err := flags.logCloser.Close(); err != nil {
					slog.Error("failed to close log file", "error", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute runs the CLI to completion.
func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return processErr(ctx, err, stderr)
	}
	return nil
}

func processErr(ctx context.Context, err error, stderr io.Writer) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	fmt.Fprintln(stderr, err)
	return err
}

// RuntimeError wraps errors produced while serving, distinguishing them
// from cobra usage errors the way the teacher's RuntimeError does.
type RuntimeError struct {
	Err error
}

func (e RuntimeError) Error() string { return e.Err.Error() }
func (e RuntimeError) Unwrap() error { return e.Err }
