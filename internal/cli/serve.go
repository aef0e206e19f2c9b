package cli

import (
	"log/slog"
	"os"

	"github.com/rook-computer/codeshot/internal/app"
	"github.com/rook-computer/codeshot/internal/state"
	"github.com/rook-computer/codeshot/internal/web"
	"github.com/spf13/cobra"
)

const envStdioLog = "CODESHOT_STDIO_LOG"

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		listen   string
		dev      bool
		stdioLog string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the render API over HTTP",
		Long: `serve the render API over HTTP until interrupted.

Settings fall back to ` + web.EnvListenAddr + `, ` + web.EnvDevMode + ` and ` + web.EnvMaxConcurrency + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdioLog == "" {
				stdioLog = os.Getenv(envStdioLog)
			}
			if err := redirectStdIO(stdioLog); err != nil {
				return err
			}
			cfg, err := web.DefaultServerConfigFromEnv(web.DefaultListenAddr)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.ListenAddr = listen
			}
			if cmd.Flags().Changed("dev") {
				cfg.DevMode = dev
			}
			logger, err := root.logger(slog.LevelInfo)
			if err != nil {
				return err
			}

			store := state.NewStore()
			svc := app.New(store, logger)
			svc.SearchPaths = root.searchPaths
			var srv web.Server = web.NewHTTPServer(cfg, web.APIV1Deps{Renderer: svc, Stats: store, Logger: logger})

			ctx := cmd.Context()
			if err := srv.Start(ctx); err != nil {
				return err
			}
			<-ctx.Done()
			logger.Info("shutting down", slog.String("component", "cli"))
			return srv.Stop()
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "", web.DefaultListenAddr, "listen address")
	cmd.Flags().BoolVarP(&dev, "dev", "", false, "permissive CORS for local frontends")
	cmd.Flags().StringVarP(&stdioLog, "stdio-log", "", "", "redirect stdout and stderr, including panics, to this file (env "+envStdioLog+")")
	return cmd
}
