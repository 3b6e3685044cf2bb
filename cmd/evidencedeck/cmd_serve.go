package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sachithra-228/evidencedeck/internal/media"
	"github.com/Sachithra-228/evidencedeck/internal/webapi"
	"github.com/Sachithra-228/evidencedeck/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		port      int
		cases     string
		mediaPath string
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evidence gallery in a browser",
		Long: `Serve the evidence gallery on a local port.

The gallery shows every captured case as a card with its screenshot, status
and metadata. Filter by status or media type, open a card to see the
recording, and page with the arrow keys.

Screenshots and videos are read from the configured media store and served
under the base URL (default /assets). The case file is re-read when the
gallery's reload button is pressed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			opts, err := projectionOptions(cfg)
			if err != nil {
				return err
			}

			store := webapi.NewFileStore(casesPath(cfg, cases), opts)
			mediaStore, err := media.Open(cfg.Media, mediaDir(cfg, mediaPath))
			if err != nil {
				return fmt.Errorf("failed to open media store: %w", err)
			}
			if cached, ok := mediaStore.(*media.CachedStore); ok {
				store.OnReload(cached.Purge)
			}

			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			if !cmd.Flags().Changed("no-browser") && cfg.Server.NoBrowser != nil {
				noBrowser = *cfg.Server.NoBrowser
			}

			srv, err := webserver.New(webserver.Config{
				Port:      port,
				NoBrowser: noBrowser,
				Logger:    slog.Default(),
				Store:     store,
				Media:     mediaStore,
				BaseURL:   cfg.Server.BaseURL,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config, 4173)")
	cmd.Flags().StringVar(&cases, "cases", "", "Case file to serve (overrides paths.cases)")
	cmd.Flags().StringVar(&mediaPath, "media", "", "Media directory for the file backend (overrides paths.media)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser")

	return cmd
}
