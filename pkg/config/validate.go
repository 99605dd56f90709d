package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/country-outline/pkg/utils"
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// ListenAddr
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}

	// WikiBaseURL
	if c.WikiBaseURL == "" {
		c.WikiBaseURL = DefaultWikiBaseURL
	}
	u, parseErr := url.Parse(c.WikiBaseURL)
	if parseErr != nil || u.Scheme == "" || u.Host == "" {
		return warnings, fmt.Errorf("%w: wiki_base_url %q must be an absolute URL", utils.ErrConfigValidation, c.WikiBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return warnings, fmt.Errorf("%w: wiki_base_url scheme %q not supported", utils.ErrConfigValidation, u.Scheme)
	}
	if !strings.HasSuffix(c.WikiBaseURL, "/") {
		warnings = append(warnings, "wiki_base_url has no trailing slash, appending one")
		c.WikiBaseURL += "/"
	}

	// UserAgent
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	// Parser
	switch c.Parser {
	case "":
		c.Parser = ParserGoquery
	case ParserGoquery, ParserHTML:
	default:
		return warnings, fmt.Errorf("%w: unknown parser %q (supported: %s, %s)", utils.ErrConfigValidation, c.Parser, ParserGoquery, ParserHTML)
	}

	// MaxBodyBytes
	if c.MaxBodyBytes < 0 {
		warnings = append(warnings, fmt.Sprintf("max_body_bytes cannot be negative, defaulting to %d", DefaultMaxBodyBytes))
		c.MaxBodyBytes = 0
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// Logging
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, lvlErr := logrus.ParseLevel(c.LogLevel); lvlErr != nil {
		return warnings, fmt.Errorf("%w: invalid log_level %q", utils.ErrConfigValidation, c.LogLevel)
	}
	switch c.LogFormat {
	case "":
		c.LogFormat = "text"
	case "text", "json":
	default:
		return warnings, fmt.Errorf("%w: unknown log_format %q (supported: text, json)", utils.ErrConfigValidation, c.LogFormat)
	}

	// ShutdownTimeout
	if c.ShutdownTimeout < 0 {
		warnings = append(warnings, "shutdown_timeout cannot be negative, using default")
		c.ShutdownTimeout = 0
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownPeriod
	}

	warnings = append(warnings, c.validateCORS()...)

	mcpWarnings, mcpErr := c.validateMCP()
	warnings = append(warnings, mcpWarnings...)
	if mcpErr != nil {
		return warnings, mcpErr
	}

	// HTTPClientSettings defaults
	if c.HTTPClientSettings.Timeout < 0 {
		warnings = append(warnings, fmt.Sprintf("http_client_settings.timeout cannot be negative, defaulting to %v", DefaultFetchTimeout))
		c.HTTPClientSettings.Timeout = 0
	}
	c.validateHTTPClientSettings()

	return warnings, nil
}

// validateCORS applies the allow-all GET policy unless overridden.
func (c *AppConfig) validateCORS() (warnings []string) {
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET"}
	}
	for i, m := range c.CORS.AllowedMethods {
		upper := strings.ToUpper(m)
		if upper != m {
			warnings = append(warnings, fmt.Sprintf("cors.allowed_methods entry %q normalized to %q", m, upper))
			c.CORS.AllowedMethods[i] = upper
		}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"*"}
	}
	return warnings
}

// validateMCP applies defaults to the MCP settings.
func (c *AppConfig) validateMCP() (warnings []string, err error) {
	switch c.MCP.Transport {
	case "":
		c.MCP.Transport = TransportStdio
	case TransportStdio, TransportSSE:
	default:
		return nil, fmt.Errorf("%w: unknown mcp.transport %q (supported: stdio, sse)", utils.ErrConfigValidation, c.MCP.Transport)
	}
	if c.MCP.Port < 0 || c.MCP.Port > 65535 {
		warnings = append(warnings, fmt.Sprintf("mcp.port %d out of range, defaulting to 8080", c.MCP.Port))
		c.MCP.Port = 0
	}
	if c.MCP.Port == 0 {
		c.MCP.Port = 8080
	}
	return warnings, nil
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *AppConfig) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.Timeout <= 0 {
		h.Timeout = DefaultFetchTimeout
	}
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 100
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = 2
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.ExpectContinueTimeout <= 0 {
		h.ExpectContinueTimeout = 1 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 5 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
}
