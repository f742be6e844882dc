// Package cli implements mdsum command-line parsing and commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mdsum/internal/batch"
	"mdsum/internal/config"
	"mdsum/internal/digest"
	apperrors "mdsum/internal/errors"
	"mdsum/internal/logging"
	"mdsum/internal/source"
)

// RootCommand is the mdsum command tree.
type RootCommand struct {
	*cobra.Command
	out    io.Writer
	errOut io.Writer
	in     io.Reader

	runBatch func(ctx context.Context, paths []string, opts batch.Options) ([]batch.Result, error)
}

// NewRootCommand creates the mdsum root command.
func NewRootCommand(out io.Writer, errOut io.Writer, in io.Reader) *RootCommand {
	root := &RootCommand{out: out, errOut: errOut, in: in, runBatch: batch.Run}
	root.Command = &cobra.Command{
		Use:   "mdsum [file...]",
		Short: "Print SHA-1 or SHA-256 digests",
		Long: "mdsum prints the SHA-1 or SHA-256 digest of each file, or of standard\n" +
			"input when no file (or \"-\") is given.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runSum(cmd, args, 0)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetIn(in)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", err, apperrors.ErrUsage)
	})
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		NewVersionCommand(out),
		root.newAlgorithmCommand(digest.SHA1),
		root.newAlgorithmCommand(digest.SHA256),
	)
	return root
}

func (r *RootCommand) newAlgorithmCommand(alg digest.Algorithm) *cobra.Command {
	return &cobra.Command{
		Use:   alg.String() + " [file...]",
		Short: "Print " + alg.String() + " digests (ignores --algorithm)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runSum(cmd, args, alg)
		},
	}
}

// runSum hashes args with the configured algorithm, or with force when set.
func (r *RootCommand) runSum(cmd *cobra.Command, args []string, force digest.Algorithm) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString(config.KeyConfig)
	if err != nil {
		return fmt.Errorf("read --%s: %w", config.KeyConfig, err)
	}
	if err := config.ReadFile(v, configPath); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	if force.Valid() {
		cfg.Algorithm = force
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", err, apperrors.ErrConfig)
	}
	logger := logging.New(r.errOut, level)

	bare := len(args) == 0 || (len(args) == 1 && args[0] == source.Stdin)
	if len(args) == 0 {
		args = []string{source.Stdin}
	}

	opts := batch.Options{
		Algorithm: cfg.Algorithm,
		Format:    cfg.Format,
		ChunkSize: cfg.ChunkSize,
		Jobs:      cfg.Jobs,
		Stdin:     r.in,
		Logger:    logger,
	}
	if cfg.Progress {
		opts.Progress = r.errOut
	}

	results, batchErr := r.runBatch(cmd.Context(), args, opts)
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			if _, err := fmt.Fprintf(r.errOut, "mdsum: %v\n", res.Err); err != nil {
				return fmt.Errorf("write error output: %w", err)
			}
			continue
		}
		line := res.Digest + "  " + res.Path + "\n"
		if bare {
			line = res.Digest + "\n"
		}
		if _, err := io.WriteString(r.out, line); err != nil {
			return fmt.Errorf("write digest output: %w", err)
		}
	}

	if errors.Is(batchErr, context.Canceled) || errors.Is(batchErr, context.DeadlineExceeded) {
		return fmt.Errorf("hashing stopped after %d of %d inputs: %w", len(results)-failed, len(results), apperrors.ErrInterrupted)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed: %w", failed, len(results), apperrors.ErrInput)
	}
	return batchErr
}
