package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/browser"
	"github.com/rook-computer/codeshot/internal/app"
	"github.com/rook-computer/codeshot/internal/config"
	"github.com/rook-computer/codeshot/internal/preview"
	"github.com/rook-computer/codeshot/internal/render"
	"github.com/rook-computer/codeshot/internal/syntax"
	"github.com/rook-computer/codeshot/internal/system"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ErrTerminal is returned instead of writing PNG bytes to a terminal.
var ErrTerminal = errors.New("refusing to write PNG data to a terminal; use --out, --out-dir or --data-uri")

const (
	stdinName     = "-"
	watchDebounce = 150 * time.Millisecond
)

type renderOptions struct {
	language   string
	theme      string
	configPath string
	out        string
	outDir     string
	dataURI    bool
	seed       uint64
	watch      bool
	fbDevice   string
	jobs       int
	open       bool
}

type renderJob struct {
	name     string
	code     string
	language string
}

type renderRunner struct {
	opts   *renderOptions
	cfg    config.RenderConfig
	svc    *app.Service
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// progress is set when a progress handler prints marks to stderr.
	progress bool
	// interactive is set when stderr is a terminal that can show a spinner.
	interactive bool

	outMu sync.Mutex
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [FILE...]",
		Short: "render source files to PNG",
		Long: `render source files to PNG images. Without FILE the source is read from stdin.

The language defaults to the one matching each file name. Several files are
rendered concurrently and need --out-dir.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.validate(args); err != nil {
				return err
			}
			var extra []slog.Handler
			if len(args) > 1 && !root.debug {
				extra = append(extra, newProgressHandler(root.stderr))
			}
			logger, err := root.logger(slog.LevelWarn, extra...)
			if err != nil {
				return err
			}
			cfg, err := config.Load(o.configPath)
			if err != nil {
				return err
			}
			svc := app.New(nil, logger)
			svc.SearchPaths = root.searchPaths
			svc.GlyphCache = true
			if cmd.Flags().Changed("seed") {
				seed := o.seed
				svc.Rand = func() render.Rand { return render.NewSeededRand(seed) }
			}
			r := &renderRunner{
				opts:   o,
				cfg:    cfg,
				svc:    svc,
				logger: logger.With(slog.String("component", "cli")),
				stdin:  cmd.InOrStdin(),
				stdout: cmd.OutOrStdout(),
				stderr: root.stderr,

				progress:    len(extra) > 0,
				interactive: !root.debug && isTerminalWriter(root.stderr),
			}
			return r.run(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVarP(&o.language, "language", "l", "", "language of the source (default: from the file name)")
	cmd.Flags().StringVarP(&o.theme, "theme", "t", "dracula", "color theme")
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "YAML or JSON render config (default: config.yml in the codeshot config dir)")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "output file for a single input")
	cmd.Flags().StringVarP(&o.outDir, "out-dir", "", "", "directory for one PNG per input")
	cmd.Flags().BoolVarP(&o.dataURI, "data-uri", "", false, "write a data:image/png;base64 URI instead of PNG bytes")
	cmd.Flags().Uint64VarP(&o.seed, "seed", "", 0, "seed for the backdrop colors, for reproducible output")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "render again whenever an input file changes")
	cmd.Flags().StringVarP(&o.fbDevice, "fb", "", "", "show the result on a framebuffer device")
	cmd.Flags().Lookup("fb").NoOptDefVal = preview.DefaultDevice
	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", runtime.NumCPU(), "concurrent renders for several inputs")
	cmd.Flags().BoolVarP(&o.open, "open", "", false, "open the written image in the default viewer")
	return cmd
}

func (o *renderOptions) validate(args []string) error {
	switch {
	case o.out != "" && o.outDir != "":
		return errors.New("--out and --out-dir are mutually exclusive")
	case len(args) > 1 && o.out != "":
		return errors.New("--out takes a single input; use --out-dir")
	case len(args) > 1 && o.outDir == "" && !o.dataURI:
		return errors.New("several inputs need --out-dir")
	case o.watch && len(args) == 0:
		return errors.New("--watch needs input files")
	case o.watch && o.out == "" && o.outDir == "":
		return errors.New("--watch needs --out or --out-dir")
	case o.fbDevice != "" && (o.dataURI || o.watch || len(args) > 1):
		return errors.New("--fb previews a single PNG render")
	case o.jobs < 1:
		return errors.New("--jobs must be at least 1")
	case o.open && (len(args) > 1 || o.dataURI || (o.out == "" && o.outDir == "")):
		return errors.New("--open needs a single PNG written with --out or --out-dir")
	}
	if len(args) > 1 && o.outDir != "" {
		seen := map[string]string{}
		for _, a := range args {
			p := o.outputPath(a)
			if prev, ok := seen[p]; ok {
				return fmt.Errorf("%s and %s would both write %s", prev, a, p)
			}
			seen[p] = a
		}
	}
	return nil
}

// outputPath returns where the render of the named input goes, or "" for
// stdout.
func (o *renderOptions) outputPath(name string) string {
	if o.out != "" {
		return o.out
	}
	if o.outDir == "" {
		return ""
	}
	stem := "stdin"
	if name != stdinName {
		base := filepath.Base(name)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	ext := ".png"
	if o.dataURI {
		ext = ".txt"
	}
	return filepath.Join(o.outDir, stem+ext)
}

func (r *renderRunner) run(ctx context.Context, args []string) error {
	if r.opts.outDir != "" {
		if err := os.MkdirAll(r.opts.outDir, 0o755); err != nil {
			return err
		}
	}
	switch len(args) {
	case 0:
		code, err := io.ReadAll(r.stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return r.emit(ctx, renderJob{name: stdinName, code: string(code), language: r.opts.language})
	case 1:
		if err := r.renderFile(ctx, args[0]); err != nil {
			return err
		}
	default:
		if err := r.renderBatch(ctx, args); err != nil {
			return err
		}
	}
	if r.opts.watch {
		return r.watchFiles(ctx, args)
	}
	return nil
}

func (r *renderRunner) load(path string) (renderJob, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return renderJob{}, err
	}
	lang := r.opts.language
	if lang == "" {
		lang = syntax.LanguageForFile(path)
	}
	return renderJob{name: path, code: string(code), language: lang}, nil
}

func (r *renderRunner) renderFile(ctx context.Context, path string) error {
	j, err := r.load(path)
	if err != nil {
		return err
	}
	if err := r.emit(ctx, j); err != nil {
		r.logger.Error("render failed", slog.String("file", path), slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (r *renderRunner) renderBatch(ctx context.Context, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.jobs)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.renderFile(ctx, p)
		})
	}
	err := g.Wait()
	if r.progress {
		_, _ = fmt.Fprintln(r.stderr)
	}
	return err
}

func (r *renderRunner) emit(ctx context.Context, j renderJob) error {
	dest := r.opts.outputPath(j.name)
	if r.opts.dataURI {
		uri, err := r.svc.RenderDataURI(j.code, j.language, r.opts.theme, r.cfg)
		if err != nil {
			return err
		}
		return r.write(dest, []byte(uri+"\n"))
	}

	stop := r.spin(j.name)
	data, err := r.svc.Render(j.code, j.language, r.opts.theme, r.cfg)
	stop()
	if err != nil {
		return err
	}
	if dest != "" || r.opts.fbDevice == "" {
		if err := r.write(dest, data); err != nil {
			return err
		}
	}
	if r.opts.open && dest != "" {
		browser.Stdout, browser.Stderr = r.stderr, r.stderr
		if err := browser.OpenFile(dest); err != nil {
			r.logger.Warn("open failed", slog.String("path", dest), slog.String("error", err.Error()))
		}
	}
	if r.opts.fbDevice != "" {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}
		return preview.Show(ctx, img, preview.Options{
			Device:     r.opts.fbDevice,
			Background: r.cfg.Background().Pixel(),
			Logger:     r.logger,
		})
	}
	return nil
}

// spin shows a spinner on an interactive stderr until the returned func is
// called. Batch runs print progress marks instead.
func (r *renderRunner) spin(name string) func() {
	if !r.interactive || r.progress {
		return func() {}
	}
	if name == stdinName {
		name = "stdin"
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.stderr))
	_ = s.Color("yellow")
	s.Suffix = " rendering " + name
	s.Start()
	return s.Stop
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && system.IsTerminal(f)
}

func (r *renderRunner) write(dest string, data []byte) error {
	if dest != "" {
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return err
		}
		r.logger.Debug("wrote", slog.String("path", dest), slog.Int("bytes", len(data)))
		return nil
	}
	if !r.opts.dataURI && isTerminalWriter(r.stdout) {
		return ErrTerminal
	}
	r.outMu.Lock()
	defer r.outMu.Unlock()
	_, err := r.stdout.Write(data)
	return err
}

// watchFiles re-renders inputs when they change. Directories are watched
// rather than files so editors that save by renaming are still seen.
func (r *renderRunner) watchFiles(ctx context.Context, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	targets := map[string]string{}
	dirs := map[string]struct{}{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = p
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %d file(s), Ctrl-C to stop\n", bold("watching"), len(paths))

	pending := map[string]struct{}{}
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			p, watched := targets[filepath.Clean(ev.Name)]
			if !watched || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending[p] = struct{}{}
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watch error", slog.String("error", err.Error()))
		case <-timer.C:
			for p := range pending {
				if err := r.renderFile(ctx, p); err == nil {
					_, _ = fmt.Fprintf(r.stderr, "%s %s\n", green("rendered"), r.opts.outputPath(p))
				}
			}
			clear(pending)
		}
	}
}
