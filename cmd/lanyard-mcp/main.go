package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"lanyard-mcp-go/internal/server"
	"lanyard-mcp-go/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	transport := flag.String("transport", "", "transport override: stdio or sse")
	listenAddr := flag.String("addr", "", "listen address override for sse transport")
	flag.Parse()

	// Stdout is the MCP protocol channel in stdio mode; all logging
	// goes to stderr.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()

	cfg := server.DefaultConfig()
	if *configPath != "" {
		loaded, err := server.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
		}
		cfg = loaded
	}
	if *transport != "" {
		cfg.Transport = *transport
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}

	zerolog.SetGlobalLevel(cfg.ZerologLevel())

	logger.Info().
		Str("transport", cfg.Transport).
		Str("api_base_url", cfg.APIBaseURL).
		Msg("Starting Lanyard MCP server")

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create server")
	}

	switch cfg.Transport {
	case server.TransportStdio:
		if err := srv.ServeStdio(); err != nil {
			logger.Fatal().Err(err).Msg("Server error")
		}

	case server.TransportSSE:
		collector := telemetry.NewSystemMetricsCollector(
			telemetry.Default(), logger, cfg.MetricsInterval.Duration)
		go collector.Start(context.Background())
		defer collector.Stop()

		httpServer := &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: srv.Handler(),
		}

		logger.Info().Str("addr", cfg.ListenAddr).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}
}
