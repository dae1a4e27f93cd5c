package auth

import (
	"github.com/saturnines/graphql-client/pkg/config"
)

// FromConfig resolves the auth header for one request.
// token overrides cfg.Credentials when set. It returns nil, nil when
// neither is present, and ErrConfiguration when cfg.Scheme is unknown.
func FromConfig(cfg config.Auth, token string) (*HeaderAuth, error) {
	return FromRegistry(NewRegistry(cfg.Schemes), cfg, token)
}

// FromRegistry is FromConfig with a caller supplied scheme table
func FromRegistry(registry *Registry, cfg config.Auth, token string) (*HeaderAuth, error) {
	if token == "" && cfg.Credentials == "" {
		return nil, nil
	}

	prefix, err := registry.Prefix(cfg.Scheme)
	if err != nil {
		return nil, err
	}

	if token == "" {
		token = cfg.Credentials
	}

	return NewHeaderAuth(cfg.Header, prefix, token), nil
}
