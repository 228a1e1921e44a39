// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/journal-finder/internal/search"
	"github.com/pdiddy/journal-finder/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front end",
	Long: `Serve loads the dataset and starts the HTTP server: the search form at /,
journal detail pages at /journal_detail.html?name=..., and a JSON API under
/api. The server shuts down gracefully on SIGINT or SIGTERM.

The listen port defaults to 5000 and can be set with --port,
JOURNAL_FINDER_SERVER_PORT, or PORT.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, store, err := openDataset(ctx)
	if err != nil {
		return err
	}

	srv, err := web.NewServer(cfg.Server, search.NewSearcher(store, cfg.Search), store, slog.Default())
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default 5000)")
	serveCmd.Flags().String("addr", "", "listen host (default 0.0.0.0)")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
