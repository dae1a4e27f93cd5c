package graphql

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/saturnines/graphql-client/pkg/auth"
	"github.com/saturnines/graphql-client/pkg/config"
	"github.com/saturnines/graphql-client/pkg/errors"
)

// QueryType selects how the query text is wrapped into a document
type QueryType string

const (
	QueryTypeQuery    QueryType = "query"
	QueryTypeMutation QueryType = "mutation"
	QueryTypeRaw      QueryType = "raw"
)

// Builder accumulates one GraphQL request.
// Every chain method mutates the receiver and returns it. A Builder is
// not safe for concurrent use.
type Builder struct {
	endpoint  string
	queryType QueryType
	query     string
	variables map[string]interface{}
	headers   *headerSet
	token     string
	context   StreamContext

	auth     config.Auth
	registry *auth.Registry
	doer     HTTPDoer
	validate bool
	log      func(string)
}

// NewBuilder sets up a Builder for endpoint.
// authCfg is read when headers are computed; use config.DefaultAuth() when
// the API needs no credentials.
func NewBuilder(endpoint string, authCfg config.Auth, opts ...BuilderOption) *Builder {
	b := &Builder{
		endpoint:  endpoint,
		variables: make(map[string]interface{}),
		headers:   newHeaderSet(),
		context:   StreamContext{},
		auth:      authCfg,
		doer:      &http.Client{Timeout: config.DefaultTimeout},
	}
	b.headers.set("Content-Type", "application/json")
	b.headers.set("User-Agent", config.DefaultUserAgent)

	b.ApplyOptions(opts...)
	return b
}

// NewFromConfig sets up a Builder from a loaded config.
// Options run after the config has been applied.
func NewFromConfig(cfg *config.Config, opts ...BuilderOption) *Builder {
	base := []BuilderOption{
		WithTimeout(cfg.Timeout),
		WithDocumentValidation(cfg.ValidateDocuments),
		WithHeaders(cfg.Headers),
	}
	if cfg.UserAgent != "" {
		base = append(base, WithUserAgent(cfg.UserAgent))
	}

	return NewBuilder(cfg.Endpoint, cfg.Auth, append(base, opts...)...)
}

func (b *Builder) generate(t QueryType, query string) *Builder {
	b.queryType = t
	b.query = query
	return b
}

// Query sets a query operation body, e.g. `user(id:1){name}`
func (b *Builder) Query(query string) *Builder {
	return b.generate(QueryTypeQuery, query)
}

// Mutation sets a mutation operation body
func (b *Builder) Mutation(query string) *Builder {
	return b.generate(QueryTypeMutation, query)
}

// Raw sets a complete document that is sent verbatim
func (b *Builder) Raw(query string) *Builder {
	return b.generate(QueryTypeRaw, query)
}

// With merges variables, overwriting existing keys
func (b *Builder) With(variables map[string]interface{}) *Builder {
	for k, v := range variables {
		b.variables[k] = v
	}
	return b
}

// SetVariable sets a single variable
func (b *Builder) SetVariable(name string, value interface{}) *Builder {
	b.variables[name] = value
	return b
}

// Variable returns a variable and whether it is set
func (b *Builder) Variable(name string) (interface{}, bool) {
	v, ok := b.variables[name]
	return v, ok
}

// Variables returns a copy of the variables
func (b *Builder) Variables() map[string]interface{} {
	out := make(map[string]interface{}, len(b.variables))
	for k, v := range b.variables {
		out[k] = v
	}
	return out
}

// Header sets one header
func (b *Builder) Header(key, value string) *Builder {
	b.headers.set(key, value)
	return b
}

// WithHeaders merges headers. New names are appended in sorted order.
func (b *Builder) WithHeaders(headers map[string]string) *Builder {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.headers.set(k, headers[k])
	}
	return b
}

// Context replaces the transport context
func (b *Builder) Context(ctx StreamContext) *Builder {
	if ctx == nil {
		ctx = StreamContext{}
	}
	b.context = ctx
	return b
}

// Endpoint overrides the request endpoint
func (b *Builder) Endpoint(url string) *Builder {
	b.endpoint = url
	return b
}

// WithToken sets a per request credential that overrides the configured one
func (b *Builder) WithToken(token string) *Builder {
	b.token = token
	return b
}

// URL returns the endpoint
func (b *Builder) URL() string {
	return b.endpoint
}

// Type returns the query type, empty until Query, Mutation or Raw is called
func (b *Builder) Type() QueryType {
	return b.queryType
}

// Document returns the serialized GraphQL document.
// Raw documents are returned unchanged; others become "<type> {<query>}".
func (b *Builder) Document() string {
	if b.queryType == QueryTypeRaw {
		return b.query
	}
	return string(b.queryType) + " {" + b.query + "}"
}

// AuthHeaders returns the headers with authentication applied.
// The auth header is added when a token or default credential exists and
// no header of that name was set explicitly.
func (b *Builder) AuthHeaders() ([]HeaderField, error) {
	headers := b.headers.clone()

	var h *auth.HeaderAuth
	var err error
	if b.registry != nil {
		h, err = auth.FromRegistry(b.registry, b.auth, b.token)
	} else {
		h, err = auth.FromConfig(b.auth, b.token)
	}
	if err != nil {
		return nil, err
	}
	if h != nil {
		if h.Header == "" {
			return nil, errors.WrapError(fmt.Errorf("auth header name is empty"), errors.ErrConfiguration, "compute auth headers")
		}
		if _, exists := headers.get(h.Header); !exists {
			headers.set(h.Header, h.Value())
		}
	}

	return headers.fields(), nil
}

// HeaderLines returns the authenticated headers as "Key: Value" lines
func (b *Builder) HeaderLines() ([]string, error) {
	fields, err := b.AuthHeaders()
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f.String())
	}
	return lines, nil
}

func (b *Builder) logf(format string, args ...interface{}) {
	if b.log == nil {
		return
	}
	b.log(fmt.Sprintf(format, args...))
}
