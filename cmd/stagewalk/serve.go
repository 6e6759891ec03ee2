package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/stagewalk/stagewalk"
	httpAdapter "github.com/stagewalk/stagewalk/pkg/adapters/http"
	"github.com/stagewalk/stagewalk/pkg/adapters/memory"
	redisStore "github.com/stagewalk/stagewalk/pkg/adapters/redis"
	"github.com/stagewalk/stagewalk/pkg/adapters/ws"

	"github.com/stagewalk/stagewalk/internal/config"
	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/observability"
	"github.com/stagewalk/stagewalk/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the playback HTTP server",
	Long:  `Starts the engine in server mode: a JSON API to control playback, an SSE feed of step events, and a WebSocket endpoint render surfaces attach to.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		levelName, _ := cmd.Flags().GetString("log-level")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = levelName
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		// Snapshot store: Redis when configured, in-memory otherwise.
		var store ports.SnapshotStore
		if cfg.Redis.Addr != "" {
			rs := redisStore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			defer rs.Close()
			store = rs
			logger.Info("using redis snapshot store", "addr", cfg.Redis.Addr)
		} else {
			store = memory.NewStore()
		}

		hub := ws.NewHub(logger)
		streams := httpAdapter.NewStreamManager()
		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		recorder := observability.NewRecorder(store, logger)

		engine := stagewalk.New(hub,
			stagewalk.WithLogger(logger),
			stagewalk.WithTiming(cfg.Timing),
			stagewalk.WithContainer(cfg.Container),
			stagewalk.WithHooks(httpAdapter.StreamHooks(streams)),
			stagewalk.WithHooks(metrics.Hooks()),
			stagewalk.WithHooks(recorder.Hooks()),
		)
		defer engine.Close()

		handler := httpAdapter.NewHandler(engine,
			httpAdapter.WithStore(store),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithSurfaceHandler(hub.Handler()),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Stagewalk Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Stagewalk Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "stagewalk.yaml", "Path to the configuration file")
}
