package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/country-outline/pkg/models"
	"github.com/Sriram-PR/country-outline/pkg/orchestrate"
	"github.com/Sriram-PR/country-outline/pkg/utils"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// runOutline handles the outline subcommand
func runOutline(args []string) {
	fs := flag.NewFlagSet("outline", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file (optional)")
	country := fs.String("country", "", "Country name (required)")
	format := fs.String("format", formatMarkdown, "Output format (markdown, json)")
	logLevel := fs.String("loglevel", "warn", "Log level (debug, info, warn, error)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: country-outline outline -country <name> [options]\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n  country-outline outline -country Vanuatu\n  country-outline outline -country \"New Zealand\" -format json\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := doOutline(ctx, *configFile, *country, *format, *logLevel, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doOutline fetches one outline and prints it. Logs go to stderr.
// Returns exit code (0 = success, 1 = error).
func doOutline(ctx context.Context, configPath, country, format, logLevel string, stdout, stderr io.Writer) int {
	if country == "" {
		fmt.Fprintln(stderr, "Error: -country flag is required")
		return 1
	}
	if format != formatMarkdown && format != formatJSON {
		fmt.Fprintf(stderr, "Error: unknown format %q (supported: markdown, json)\n", format)
		return 1
	}

	appCfg, warnings, err := loadAndValidateConfig(configPath, logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 1
	}
	log, err := setupLogger(appCfg, warnings, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return 1
	}

	orchestrator := orchestrate.NewOrchestrator(appCfg, logrus.NewEntry(log))
	result, err := orchestrator.Outline(ctx, country)

	if format == formatJSON {
		enc := json.NewEncoder(stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err != nil {
			enc.Encode(models.ErrorResponse{Error: utils.ErrorMessage(err)})
			return 1
		}
		enc.Encode(result)
		return 0
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", utils.ErrorMessage(err))
		return 1
	}
	fmt.Fprintln(stdout, result.Outline)
	return 0
}
