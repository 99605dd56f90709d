package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/country-outline/pkg/config"
	applog "github.com/Sriram-PR/country-outline/pkg/log"
	"github.com/Sriram-PR/country-outline/pkg/models"
	"github.com/Sriram-PR/country-outline/pkg/orchestrate"
)

const (
	serverName    = "country-outline"
	serverVersion = "1.0.0"

	toolGetCountryOutline = "get_country_outline"
)

// Outliner produces the outline for a country
type Outliner interface {
	Outline(ctx context.Context, country string) (*models.OutlineResult, error)
}

// ServerConfig holds configuration for the MCP server
type ServerConfig struct {
	AppConfig *config.AppConfig
	Outliner  Outliner // optional, built from AppConfig when nil
	Transport string   // "stdio" or "sse"
	Port      int
	Logger    *logrus.Logger
}

// Server exposes the outline operation as an MCP tool
type Server struct {
	mcpServer *server.MCPServer
	cfg       *ServerConfig
	outliner  Outliner
	log       *logrus.Entry

	mu  sync.Mutex
	sse *server.SSEServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *ServerConfig) (*Server, error) {
	if cfg.AppConfig == nil {
		return nil, fmt.Errorf("AppConfig is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Transport == "" {
		cfg.Transport = cfg.AppConfig.MCP.Transport
	}
	if cfg.Port == 0 {
		cfg.Port = cfg.AppConfig.MCP.Port
	}

	log := cfg.Logger.WithField("component", "mcp")
	outliner := cfg.Outliner
	if outliner == nil {
		outliner = orchestrate.NewOrchestrator(cfg.AppConfig, logrus.NewEntry(cfg.Logger))
	}

	s := &Server{
		mcpServer: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithLogging(),
		),
		cfg:      cfg,
		outliner: outliner,
		log:      log,
	}
	s.registerTools()

	return s, nil
}

func (s *Server) registerTools() {
	tool := mcp.NewTool(toolGetCountryOutline,
		mcp.WithDescription("Fetch the English Wikipedia article for a country and return its heading outline as Markdown"),
		mcp.WithString("country",
			mcp.Required(),
			mcp.Description("Country name as it appears in the article title (e.g. 'Vanuatu', 'United States')"),
		),
	)
	s.mcpServer.AddTool(tool, s.handleGetCountryOutline)
	s.log.Debugf("Registered MCP tool %s", toolGetCountryOutline)
}

// Run starts the MCP server with the configured transport. It blocks until
// the transport stops. For SSE a stop caused by Shutdown returns nil.
func (s *Server) Run() error {
	switch s.cfg.Transport {
	case config.TransportStdio:
		s.log.Info("Starting MCP server with stdio transport")
		return server.ServeStdio(s.mcpServer, server.WithErrorLogger(applog.NewStdErrorLogger(s.log)))
	case config.TransportSSE:
		addr := fmt.Sprintf(":%d", s.cfg.Port)
		s.log.Infof("Starting MCP server with SSE transport on %s", addr)
		sse := server.NewSSEServer(s.mcpServer)
		s.mu.Lock()
		s.sse = sse
		s.mu.Unlock()
		if err := sse.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", s.cfg.Transport)
	}
}

// Shutdown stops the SSE transport if it is running. The stdio transport
// ends with its input stream.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down MCP server...")
	s.mu.Lock()
	sse := s.sse
	s.mu.Unlock()
	if sse == nil {
		return nil
	}
	return sse.Shutdown(ctx)
}
