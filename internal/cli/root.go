// Package cli implements the codeshot command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/k1LoW/errors"
	"github.com/mattn/go-colorable"
	"github.com/rook-computer/codeshot/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	debug   bool
	logFile string
	// searchPaths overrides the font search order; nil keeps the default.
	searchPaths []string

	stderr io.Writer
	closer func() error
}

type errorData struct {
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
}

// logger builds the command logger. level is the console threshold when
// --debug is not set.
func (o *rootOptions) logger(level slog.Level, extra ...slog.Handler) (*slog.Logger, error) {
	if o.debug {
		level = slog.LevelDebug
	}
	l, closer, err := newLogger(o.stderr, level, o.logFile, extra...)
	if err != nil {
		return nil, err
	}
	o.closer = closer
	return l, nil
}

func newRootCmd(stderr io.Writer) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{stderr: stderr}
	cmd := &cobra.Command{
		Use:          "codeshot",
		Short:        "codeshot renders source code into PNG snapshots",
		Long:         `codeshot renders source code into PNG snapshots with a window frame, a backdrop and syntax colors.`,
		SilenceUsage: true,
		Version:      Version,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.closer != nil {
				return opts.closer()
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "", false, "debug logging and error.json dump on failure")
	cmd.PersistentFlags().StringVarP(&opts.logFile, "log-file", "", "", "also write JSON logs to this file")

	cmd.AddCommand(
		newRenderCmd(opts),
		newThemesCmd(),
		newLanguagesCmd(),
		newServeCmd(opts),
	)
	return cmd, opts
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stderr := colorable.NewColorableStderr()
	cmd, opts := newRootCmd(stderr)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if opts.debug {
			dumpError(stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// dumpError writes the stack traces of err to error.json in the config
// directory.
func dumpError(w io.Writer, err error) {
	b, merr := json.Marshal(&errorData{
		StackTraces: errors.StackTraces(err),
		CreatedAt:   time.Now(),
		Version:     Version,
	})
	if merr != nil {
		_, _ = fmt.Fprintf(w, "%v\n", merr)
		return
	}
	dir := config.DefaultDir()
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(w, "failed to create %s: %v\n", dir, err)
		return
	}
	dumpPath := filepath.Join(dir, "error.json")
	if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
		_, _ = fmt.Fprintf(w, "failed to write error.json to %s: %v\n", dumpPath, err)
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", bold("stack traces written to"), dumpPath)
}
