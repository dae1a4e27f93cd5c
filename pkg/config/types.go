package config

import "time"

// Defaults applied by ConfigDefaults
const (
	DefaultUserAgent  = "Go GraphQL client"
	DefaultAuthHeader = "Authorization"
	DefaultAuthScheme = "bearer"
	DefaultTimeout    = 30 * time.Second
)

// DefaultAuthSchemes maps scheme names to the prefix put in front of the credential
var DefaultAuthSchemes = map[string]string{
	"bearer": "Bearer ",
	"basic":  "Basic ",
	"custom": "",
}

// Config represents the client configuration for one GraphQL API
type Config struct {
	Endpoint          string            `yaml:"endpoint,omitempty"`           // Default endpoint URL
	UserAgent         string            `yaml:"user_agent,omitempty"`         // User-Agent header value
	Timeout           time.Duration     `yaml:"timeout,omitempty"`            // HTTP client timeout, e.g. "10s"
	Headers           map[string]string `yaml:"headers,omitempty"`            // Extra headers on every request
	ValidateDocuments bool              `yaml:"validate_documents,omitempty"` // Parse documents before sending
	Auth              Auth              `yaml:",inline"`
}

// Auth holds the credential settings read by the request builder.
// Keys are flat in YAML (auth_scheme, auth_schemes, ...).
type Auth struct {
	Scheme      string            `yaml:"auth_scheme,omitempty"`      // Selected scheme name
	Schemes     map[string]string `yaml:"auth_schemes,omitempty"`     // Scheme name -> header value prefix
	Credentials string            `yaml:"auth_credentials,omitempty"` // Default token, optional
	Header      string            `yaml:"auth_header,omitempty"`      // Header to set, e.g. Authorization
}

// Default returns a Config with every default applied
func Default() *Config {
	cfg := &Config{}
	(&ConfigDefaults{}).SetDefaults(cfg)
	return cfg
}

// DefaultAuth returns auth settings with the default scheme table and no credentials
func DefaultAuth() Auth {
	return Default().Auth
}
