package graphql

import (
	"net/http"
	"time"

	"github.com/saturnines/graphql-client/pkg/auth"
)

// BuilderOption configures the Builder.
type BuilderOption func(*Builder)

// WithHeader adds a header to the request.
func WithHeader(key, value string) BuilderOption {
	return func(b *Builder) {
		b.Header(key, value)
	}
}

// WithHeaders adds multiple headers to the request.
func WithHeaders(headers map[string]string) BuilderOption {
	return func(b *Builder) {
		b.WithHeaders(headers)
	}
}

// WithUserAgent replaces the default User-Agent header.
func WithUserAgent(userAgent string) BuilderOption {
	return func(b *Builder) {
		b.Header("User-Agent", userAgent)
	}
}

// WithVariables sets multiple variables.
func WithVariables(variables map[string]interface{}) BuilderOption {
	return func(b *Builder) {
		b.With(variables)
	}
}

// WithHTTPDoer swaps the underlying HTTPDoer.
func WithHTTPDoer(doer HTTPDoer) BuilderOption {
	return func(b *Builder) {
		if doer != nil {
			b.doer = doer
		}
	}
}

// WithTimeout sets a timeout on the HTTP client (if it's an *http.Client).
// Zero leaves the current timeout alone.
func WithTimeout(timeout time.Duration) BuilderOption {
	return func(b *Builder) {
		if timeout <= 0 {
			return
		}
		if httpClient, ok := b.doer.(*http.Client); ok {
			httpClient.Timeout = timeout
		}
	}
}

// WithRegistry makes the builder resolve auth schemes through a shared registry
// instead of the scheme table in its config.
func WithRegistry(registry *auth.Registry) BuilderOption {
	return func(b *Builder) {
		b.registry = registry
	}
}

// WithDocumentValidation parses the document before every Execute.
func WithDocumentValidation(enabled bool) BuilderOption {
	return func(b *Builder) {
		b.validate = enabled
	}
}

// WithLogger receives one line per request and response, for debugging.
func WithLogger(log func(string)) BuilderOption {
	return func(b *Builder) {
		b.log = log
	}
}

// ApplyOptions applies BuilderOption functions in order.
func (b *Builder) ApplyOptions(opts ...BuilderOption) {
	for _, opt := range opts {
		opt(b)
	}
}
