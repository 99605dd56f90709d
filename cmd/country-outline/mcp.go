package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sriram-PR/country-outline/pkg/config"
	"github.com/Sriram-PR/country-outline/pkg/mcp"
)

// runMcpServer handles the mcp-server subcommand
func runMcpServer(args []string) {
	fs := flag.NewFlagSet("mcp-server", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file (optional)")
	transport := fs.String("transport", "", "Transport type (stdio, sse), overrides mcp.transport")
	port := fs.Int("port", 0, "HTTP port for sse transport, overrides mcp.port")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: country-outline mcp-server [options]

Start an MCP (Model Context Protocol) server for AI tool integration.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Start with stdio transport
  country-outline mcp-server

  # Start with SSE transport on port 8080
  country-outline mcp-server -transport sse -port 8080

Available MCP Tools:
  get_country_outline  Heading outline of a country's Wikipedia article
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := doMcpServer(ctx, *configFile, *transport, *port, *logLevel, os.Stderr)
	os.Exit(exitCode)
}

// doMcpServer is the testable implementation of the MCP server.
// The MCP protocol owns stdout, so logs and errors go to stderr.
func doMcpServer(ctx context.Context, configPath, transport string, port int, logLevel string, stderr io.Writer) int {
	appCfg, warnings, err := loadAndValidateConfig(configPath, logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if transport != "" && transport != config.TransportStdio && transport != config.TransportSSE {
		fmt.Fprintf(stderr, "Unknown transport: %s (supported: stdio, sse)\n", transport)
		return 1
	}
	log, err := setupLogger(appCfg, warnings, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return 1
	}

	server, err := mcp.NewServer(&mcp.ServerConfig{
		AppConfig: appCfg,
		Transport: transport,
		Port:      port,
		Logger:    log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error creating MCP server: %v\n", err)
		return 1
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warnf("MCP shutdown: %v", err)
		}
	}()

	if err := server.Run(); err != nil {
		fmt.Fprintf(stderr, "MCP server error: %v\n", err)
		return 1
	}

	return 0
}
