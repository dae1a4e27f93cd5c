package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/saturnines/graphql-client/pkg/errors"
)

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks a parsed Config
type Validator interface {
	Validate(cfg *Config) []ValidationError
}

// DefaultValueSetter handles the interface for setting default values
type DefaultValueSetter interface {
	SetDefaults(cfg *Config)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) ([]byte, error)
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) ([]byte, error) {
	return []byte(os.Expand(string(data), os.Getenv)), nil
}

// DotEnvExpander expands variables from .env files first, then the environment.
// The process environment is not modified.
type DotEnvExpander struct {
	Files []string // defaults to ".env" when empty
}

// Expand reads the env files and expands variables in data
func (e *DotEnvExpander) Expand(data []byte) ([]byte, error) {
	vars, err := godotenv.Read(e.Files...)
	if err != nil {
		return nil, fmt.Errorf("failed to read env files: %w", err)
	}

	expanded := os.Expand(string(data), func(key string) string {
		if v, ok := vars[key]; ok {
			return v
		}
		return os.Getenv(key)
	})
	return []byte(expanded), nil
}

// Loader loads client configs from YAML
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// NewDefaultLoader returns a Loader with env expansion, defaults and the auth validator
func NewDefaultLoader() *Loader {
	return NewLoader(&EnvExpander{}, &ConfigDefaults{}, &AuthValidator{}, &TimeoutValidator{})
}

// Load a config from a YAML file
func (l *Loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "read config file")
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Config, error) {
	if l.expander != nil {
		var err error
		data, err = l.expander.Expand(data)
		if err != nil {
			return nil, errors.WrapError(err, errors.ErrConfiguration, "expand variables")
		}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "parse YAML")
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&cfg)
	}

	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(&cfg)...)
	}

	if len(allErrors) > 0 {
		return nil, errors.WrapError(
			fmt.Errorf("%v", allErrors),
			errors.ErrValidation,
			"invalid config",
		)
	}

	return &cfg, nil
}

// ConfigDefaults implements DefaultValueSetter for Config
type ConfigDefaults struct{}

// SetDefaults fills every empty field with its default
func (d *ConfigDefaults) SetDefaults(cfg *Config) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Auth.Header == "" {
		cfg.Auth.Header = DefaultAuthHeader
	}
	if cfg.Auth.Scheme == "" {
		cfg.Auth.Scheme = DefaultAuthScheme
	}
	if cfg.Auth.Schemes == nil {
		cfg.Auth.Schemes = make(map[string]string, len(DefaultAuthSchemes))
		for name, prefix := range DefaultAuthSchemes {
			cfg.Auth.Schemes[name] = prefix
		}
	}
}

// RequiredFieldValidator requires an endpoint in the config
type RequiredFieldValidator struct{}

// Validate checks that the endpoint is present
func (v *RequiredFieldValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	if cfg.Endpoint == "" {
		errs = append(errs, ValidationError{Field: "endpoint", Message: "is required"})
	}
	return errs
}

// AuthValidator handles authentication validation
type AuthValidator struct{}

// Validate checks that the selected scheme exists in the scheme table
func (v *AuthValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Auth.Scheme != "" {
		if _, ok := cfg.Auth.Schemes[cfg.Auth.Scheme]; !ok {
			errs = append(errs, ValidationError{
				Field:   "auth_scheme",
				Message: fmt.Sprintf("unknown auth scheme: %s", cfg.Auth.Scheme),
			})
		}
	}

	if cfg.Auth.Credentials != "" && cfg.Auth.Header == "" {
		errs = append(errs, ValidationError{Field: "auth_header", Message: "is required when auth_credentials is set"})
	}

	return errs
}

// TimeoutValidator rejects negative timeouts
type TimeoutValidator struct{}

// Validate checks the timeout
func (v *TimeoutValidator) Validate(cfg *Config) []ValidationError {
	if cfg.Timeout < 0 {
		return []ValidationError{{Field: "timeout", Message: "must not be negative"}}
	}
	return nil
}
