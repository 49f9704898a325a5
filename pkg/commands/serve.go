package commands

import (
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tableflip.dev/bizdesk/pkg/config"
	"tableflip.dev/bizdesk/pkg/logging"
	"tableflip.dev/bizdesk/pkg/runner/serve"
	"tableflip.dev/bizdesk/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	var (
		addr  string
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local auth server for login and registration.",
		Long: `Run an auth server keeping accounts under serve.path, apart from the
collections. It answers POST /App/user/login and POST /App/user/register, so
the login and register commands work without a remote service.`,
		Example: `
bizdesk serve
bizdesk serve --addr 0.0.0.0:3001
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(os.Stderr, cfg.LogLevel)
			kv, err := store.Open(store.Options{Backend: store.Backend(cfg.Backend), Path: cfg.ServePath, Logger: logger})
			if err != nil {
				return errors.Wrapf(err, "opening %s store at %s", cfg.Backend, cfg.ServePath)
			}
			defer kv.Close()
			if addr == "" {
				addr = cfg.ServeAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			s := serve.Serve{
				KV:             kv,
				Logger:         logger,
				Address:        addr,
				DisableReqLogs: quiet,
			}
			return s.Do(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, defaults to serve.addr from config.")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not log requests.")

	topLevel.AddCommand(cmd)
}
