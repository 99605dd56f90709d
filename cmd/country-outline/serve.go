package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Sriram-PR/country-outline/pkg/api"
	"github.com/Sriram-PR/country-outline/pkg/config"
	"github.com/Sriram-PR/country-outline/pkg/orchestrate"
	"github.com/Sriram-PR/country-outline/pkg/utils"
)

// runServe handles the serve subcommand
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file (optional)")
	addr := fs.String("addr", "", "Listen address, overrides listen_addr (default :8000)")
	logLevel := fs.String("loglevel", "", "Log level (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: country-outline serve [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n  country-outline serve -addr :8000\n  curl 'http://localhost:8000/api/outline?country=Vanuatu'\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := doServe(ctx, *configFile, *addr, *logLevel, nil, os.Stderr)
	os.Exit(exitCode)
}

// doServe runs the HTTP API until ctx is cancelled, then shuts down
// gracefully. If ready is non-nil it receives the bound address once the
// listener is open.
func doServe(ctx context.Context, configPath, addr, logLevel string, ready chan<- string, stderr io.Writer) int {
	appCfg, warnings, err := loadAndValidateConfig(configPath, logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 1
	}
	if addr != "" {
		appCfg.ListenAddr = addr
	}
	log, err := setupLogger(appCfg, warnings, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return 1
	}
	logAppConfig(appCfg, log)

	entry := logrus.NewEntry(log)
	orchestrator := orchestrate.NewOrchestrator(appCfg, entry)
	apiServer := api.NewServer(orchestrator, *appCfg, entry)

	listener, err := net.Listen("tcp", appCfg.ListenAddr)
	if err != nil {
		log.Errorf("Failed to listen on %s: %v", appCfg.ListenAddr, err)
		return 1
	}
	httpServer := &http.Server{
		Handler:           apiServer,
		ReadHeaderTimeout: config.DefaultFetchTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Listening on %s", listener.Addr())
		if err := httpServer.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			return utils.WrapErrorf(err, "http server on %s", listener.Addr())
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if ready != nil {
		ready <- listener.Addr().String()
	}

	if err := g.Wait(); err != nil {
		log.Errorf("Server stopped with error: %v", err)
		return 1
	}
	log.Info("Server stopped.")
	return 0
}
