package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsphweid/notestore/server"
	"github.com/jsphweid/notestore/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveLoad  string
	serveDebug bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $NOTESTORE_ADDR, else :8080)")
	serveCmd.Flags().StringVar(&serveLoad, "load", "", "MIDI file to preload")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "log every request")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves a store over HTTP",
	Long:  `Serves a store over HTTP/JSON until interrupted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if serveDebug {
			level = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var s store.Store
		if serveLoad != "" {
			loaded, events, err := loadMidi(serveLoad, 0)
			if err != nil {
				return err
			}
			log.Info("preloaded", "file", serveLoad, "events", len(events))
			s = loaded
		} else {
			s = store.New(cfg.Backend)
		}

		addr := cfg.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := server.New(s,
			server.WithLogger(log.With("backend", string(cfg.Backend))),
			server.WithCORSOrigins(cfg.CORSOrigins),
			server.WithLogDebounce(cfg.LogDebounce),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, addr)
	},
}
