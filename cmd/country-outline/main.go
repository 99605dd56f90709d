package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Sriram-PR/country-outline/pkg/config"
	applog "github.com/Sriram-PR/country-outline/pkg/log"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		runServe(os.Args[2:])
	case "outline":
		runOutline(os.Args[2:])
	case "mcp-server":
		runMcpServer(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "version":
		fmt.Printf("country-outline %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `country-outline - Wikipedia country article outlines

Usage:
  country-outline <command> [options]

Commands:
  serve       Run the HTTP API
  outline     Print the outline for one country
  mcp-server  Start MCP server for AI tool integration
  validate    Validate configuration file
  version     Show version info

Run 'country-outline <command> -h' for command-specific help.`)
}

// loadConfig loads and parses the config file. With allowMissing a
// nonexistent file yields an empty config, which Validate fills with defaults.
func loadConfig(path string, allowMissing bool) (*config.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			return &config.AppConfig{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg config.AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// loadAndValidateConfig loads the config, applies the log level override and
// validates it. Warnings are returned for the caller to log once a logger exists.
func loadAndValidateConfig(path, logLevel string) (*config.AppConfig, []string, error) {
	appCfg, err := loadConfig(path, true)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		appCfg.LogLevel = logLevel
	}
	warnings, err := appCfg.Validate()
	if err != nil {
		return nil, warnings, err
	}
	return appCfg, warnings, nil
}

// setupLogger builds the logger described by appCfg and logs config warnings.
func setupLogger(appCfg *config.AppConfig, warnings []string, out io.Writer) (*logrus.Logger, error) {
	log, err := applog.New(appCfg.LogLevel, appCfg.LogFormat, out)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	return log, nil
}

// logAppConfig logs the effective configuration
func logAppConfig(appCfg *config.AppConfig, log *logrus.Logger) {
	log.Infof("Config: Listen:%s, WikiBase:%s, Parser:%s, MaxBody:%d bytes",
		appCfg.ListenAddr, appCfg.WikiBaseURL, appCfg.Parser, appCfg.MaxBodyBytes)
	log.Infof("Config CORS: Origins:%v, Methods:%v, Credentials:%t",
		appCfg.CORS.AllowedOrigins, appCfg.CORS.AllowedMethods, config.GetEffectiveAllowCredentials(appCfg.CORS))
	log.Infof("Config HTTP Client: Timeout:%v, MaxIdle:%d, MaxIdlePerHost:%d, IdleTimeout:%v, TLSTimeout:%v, DialerTimeout:%v",
		appCfg.HTTPClientSettings.Timeout, appCfg.HTTPClientSettings.MaxIdleConns, appCfg.HTTPClientSettings.MaxIdleConnsPerHost,
		appCfg.HTTPClientSettings.IdleConnTimeout, appCfg.HTTPClientSettings.TLSHandshakeTimeout, appCfg.HTTPClientSettings.DialerTimeout)
}

// runValidate handles the validate subcommand
func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", "config.yaml", "Path to config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: country-outline validate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	exitCode := doValidate(*configFile, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// doValidate performs validation and writes output to provided writers.
// Returns exit code (0 = success, 1 = error).
func doValidate(configPath string, stdout, stderr io.Writer) int {
	appCfg, err := loadConfig(configPath, false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	warnings, err := appCfg.Validate()
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "\nConfiguration valid.")
	return 0
}
