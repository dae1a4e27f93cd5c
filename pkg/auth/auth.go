package auth

import (
	"fmt"
)

// HeaderAuth is one credential header: Prefix+Token under Header
type HeaderAuth struct {
	Header string // Header name, e.g. "Authorization"
	Prefix string // Scheme prefix, e.g. "Bearer "
	Token  string // The credential
}

// NewHeaderAuth creates a new header authentication value
func NewHeaderAuth(header, prefix, token string) *HeaderAuth {
	return &HeaderAuth{
		Header: header,
		Prefix: prefix,
		Token:  token,
	}
}

// Value returns the header value, prefix followed by the token
func (a *HeaderAuth) Value() string {
	return a.Prefix + a.Token
}

// String returns a string representation of this auth method
func (a *HeaderAuth) String() string {
	// never print the token
	return fmt.Sprintf("HeaderAuth(header: %s, prefix: %q, token: [REDACTED])", a.Header, a.Prefix)
}
