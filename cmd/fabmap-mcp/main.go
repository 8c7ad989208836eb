package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "fabmap/internal/adapters/mcp"
	"fabmap/internal/bootstrap"
	"fabmap/internal/config"
	"fabmap/internal/logger"
	"fabmap/internal/metrics"
)

func main() {
	log := logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config_load_failed", "err", err)
		os.Exit(1)
	}

	backendFlag := flag.String("backend", cfg.Backend, "store backend: sqlite, postgres or memory")
	dbFlag := flag.String("db", cfg.DBPath, "sqlite database path")
	metricsFlag := flag.String("metrics-addr", cfg.MetricsAddr, "serve prometheus metrics on this address")
	flag.Parse()
	cfg.Backend, cfg.DBPath, cfg.MetricsAddr = *backendFlag, *dbFlag, *metricsFlag

	ctx := context.Background()
	repo, err := bootstrap.OpenRepository(ctx, cfg, log)
	if err != nil {
		log.Error("backend_open_failed", "backend", cfg.Backend, "err", err)
		os.Exit(1)
	}
	defer repo.Close()

	geocoder, closeGeocoder := bootstrap.Geocoder(cfg, log)
	defer closeGeocoder()

	sess := bootstrap.Session(cfg)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics_server_failed", "addr", cfg.MetricsAddr, "err", err)
			}
		}()
		defer srv.Close()
		log.Info("metrics_server_started", "addr", cfg.MetricsAddr)
	}

	mcpServer := server.NewMCPServer(
		"fabmap-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, geocoder)
	mcpadapter.RegisterWriteTools(mcpServer, repo, sess)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error("mcp_server_stopped", "err", err)
		os.Exit(1)
	}
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
