package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/mjmerge"
	"github.com/aretw0/mjmerge/internal/logging"
	httpAdapter "github.com/aretw0/mjmerge/pkg/adapters/http"
	"github.com/aretw0/mjmerge/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the merge HTTP server",
	Long: `Exposes POST /merge, GET /healthz and GET /metrics. Every request writes its
scene to a new file under --out-dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		outDir, _ := cmd.Flags().GetString("out-dir")
		root, _ := cmd.Flags().GetString("root")
		debug, _ := cmd.Flags().GetBool("debug")

		logger := logging.New(logging.Level(debug))

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		handler := httpAdapter.NewHandler(&httpAdapter.Server{
			OutputDir: outDir,
			Root:      root,
			Options:   []mjmerge.Option{mjmerge.WithLogger(logger), mjmerge.WithMetrics(metrics)},
			Logger:    logger,
		}, reg)

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting mjmerge server on %s\n", srv.Addr)
			fmt.Printf("Reading models under: %s\n", root)
			fmt.Printf("Writing scenes to: %s\n", outDir)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding merges a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Println("mjmerge server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("out-dir", os.TempDir(), "Directory receiving the merged scenes")
	serveCmd.Flags().String("root", ".", "Directory robot files must live under (relative files resolve against it)")
}
