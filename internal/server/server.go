package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"lanyard-mcp-go/internal/lanyard"
	"lanyard-mcp-go/internal/telemetry"
	"lanyard-mcp-go/internal/tools"
	"lanyard-mcp-go/internal/tools/presence"
)

// Name and Version identify the MCP server to clients.
const (
	Name    = "lanyard"
	Version = "1.0.0"
)

// Server wires the Lanyard client, tool registry and MCP transports.
type Server struct {
	cfg       Config
	logger    zerolog.Logger
	client    *lanyard.Client
	registry  *tools.Registry
	metrics   *telemetry.Metrics
	mcpServer *server.MCPServer
}

// New creates a new server with the given configuration.
func New(cfg Config, logger zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	metrics := telemetry.Default()

	client := lanyard.NewClient(cfg.APIBaseURL, cfg.RequestTimeout.Duration, logger)
	client.SetTransport(telemetry.NewUpstreamTransport(nil, metrics))

	registry := tools.NewRegistry()
	for _, tool := range []tools.Tool{
		presence.NewPresenceTool(client, logger),
		presence.NewSpotifyTool(client, logger),
		presence.NewKVTool(client, logger),
	} {
		registry.Register(telemetry.WrapTool(tool, metrics))
		logger.Info().Str("tool", tool.Name()).Msg("Registered tool")
	}

	mcpServer := server.NewMCPServer(Name, Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, tool := range registry.List() {
		mcpServer.AddTool(tool.Definition(), tool.Handle)
	}

	return &Server{
		cfg:       cfg,
		logger:    logger.With().Str("component", "server").Logger(),
		client:    client,
		registry:  registry,
		metrics:   metrics,
		mcpServer: mcpServer,
	}, nil
}

// Registry exposes the tool registry.
func (s *Server) Registry() *tools.Registry {
	return s.registry
}

// ServeStdio runs the MCP server over stdin/stdout until EOF.
func (s *Server) ServeStdio() error {
	s.logger.Info().Msg("Serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

// Handler returns the HTTP handler for sse mode: the MCP SSE transport
// under /mcp plus health, metrics and a JSON debug endpoint.
func (s *Server) Handler() http.Handler {
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithStaticBasePath("/mcp"),
	)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.HTTPMetricsMiddleware(s.metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Type", "Cache-Control", "Connection"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/v1/users/{userID}", s.handleGetUser)

	r.Mount("/mcp", sseServer)

	return r
}

// handleGetUser is a JSON debug endpoint exposing the decoded presence
// payload directly, outside the MCP framing.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := lanyard.ValidateUserID(chi.URLParam(r, "userID"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	data, err := s.client.GetPresence(r.Context(), userID)
	if err != nil {
		render.Status(r, upstreamErrorStatus(err))
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	render.JSON(w, r, data)
}

// upstreamErrorStatus maps a fetch failure to the HTTP status the debug
// endpoint responds with.
func upstreamErrorStatus(err error) int {
	var apiErr *lanyard.APIError
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch apiErr.Code {
	case lanyard.ErrNotFound:
		return http.StatusNotFound
	case lanyard.ErrRateLimited:
		return http.StatusTooManyRequests
	case lanyard.ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
