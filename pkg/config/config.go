package config

import "time"

const (
	DefaultListenAddr     = ":8000"
	DefaultWikiBaseURL    = "https://en.wikipedia.org/wiki/"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	DefaultFetchTimeout   = 10 * time.Second
	DefaultMaxBodyBytes   = 20 << 20
	DefaultShutdownPeriod = 10 * time.Second

	ParserGoquery = "goquery"
	ParserHTML    = "html"

	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// AppConfig holds the global application configuration
type AppConfig struct {
	ListenAddr         string           `yaml:"listen_addr"`
	WikiBaseURL        string           `yaml:"wiki_base_url"`
	UserAgent          string           `yaml:"user_agent,omitempty"`
	Parser             string           `yaml:"parser,omitempty"`         // "goquery" (default) or "html"
	MaxBodyBytes       int64            `yaml:"max_body_bytes,omitempty"` // Upper bound on the fetched article size
	LogLevel           string           `yaml:"log_level,omitempty"`
	LogFormat          string           `yaml:"log_format,omitempty"` // "text" or "json"
	ShutdownTimeout    time.Duration    `yaml:"shutdown_timeout,omitempty"`
	CORS               CORSConfig       `yaml:"cors,omitempty"`
	MCP                MCPConfig        `yaml:"mcp,omitempty"`
	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// CORSConfig controls cross-origin access to the API
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins,omitempty"`
	AllowedMethods   []string `yaml:"allowed_methods,omitempty"`
	AllowedHeaders   []string `yaml:"allowed_headers,omitempty"`
	AllowCredentials *bool    `yaml:"allow_credentials,omitempty"`
}

// MCPConfig holds settings for the MCP server subcommand
type MCPConfig struct {
	Transport string `yaml:"transport,omitempty"` // "stdio" or "sse"
	Port      int    `yaml:"port,omitempty"`      // Only used by the sse transport
}

// HTTPClientConfig holds settings for the upstream HTTP client
type HTTPClientConfig struct {
	Timeout               time.Duration `yaml:"timeout,omitempty"`                 // Overall request timeout
	MaxIdleConns          int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout,omitempty"` // Timeout for 100-continue
	ForceAttemptHTTP2     *bool         `yaml:"force_attempt_http2,omitempty"`     // nil=default, true=force, false=disable
	DialerTimeout         time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive       time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}

// GetEffectiveAllowCredentials reports whether CORS responses allow credentials.
// Credentials are allowed unless explicitly disabled.
func GetEffectiveAllowCredentials(c CORSConfig) bool {
	if c.AllowCredentials != nil {
		return *c.AllowCredentials
	}
	return true
}
