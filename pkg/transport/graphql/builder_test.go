package graphql

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/saturnines/graphql-client/pkg/auth"
	"github.com/saturnines/graphql-client/pkg/config"
	"github.com/saturnines/graphql-client/pkg/errors"
)

const testEndpoint = "https://api.example.com/graphql"

func authWithCredentials(token string) config.Auth {
	a := config.DefaultAuth()
	a.Credentials = token
	return a
}

func TestBuilder_Document(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder) *Builder
		want  string
	}{
		{"Query", func(b *Builder) *Builder { return b.Query("user(id:1){name}") }, "query {user(id:1){name}}"},
		{"Mutation", func(b *Builder) *Builder { return b.Mutation("addUser(name:\"Ada\"){id}") }, "mutation {addUser(name:\"Ada\"){id}}"},
		{"Raw", func(b *Builder) *Builder { return b.Raw("query Q($id: ID!) { user(id: $id) { name } }") }, "query Q($id: ID!) { user(id: $id) { name } }"},
		{"RawUntouched", func(b *Builder) *Builder { return b.Raw("  {\n  me { id }\n}\n") }, "  {\n  me { id }\n}\n"},
		{"LastCallWins", func(b *Builder) *Builder { return b.Raw("{ a }").Mutation("b") }, "mutation {b}"},
		{"NothingSet", func(b *Builder) *Builder { return b }, " {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.build(NewBuilder(testEndpoint, config.DefaultAuth()))
			if got := b.Document(); got != tt.want {
				t.Errorf("Expected document %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBuilder_ChainReturnsSameBuilder(t *testing.T) {
	b := NewBuilder(testEndpoint, config.DefaultAuth())

	chained := b.Query("a").
		With(map[string]interface{}{"a": 1}).
		Header("X-A", "1").
		WithHeaders(map[string]string{"X-B": "2"}).
		Context(StreamContext{}).
		Endpoint("https://other.example.com").
		WithToken("t").
		SetVariable("b", 2)

	if chained != b {
		t.Error("Chained calls should return the same builder")
	}
	if b.URL() != "https://other.example.com" {
		t.Errorf("Expected endpoint to be overwritten, got %s", b.URL())
	}
	if b.Type() != QueryTypeQuery {
		t.Errorf("Expected query type 'query', got %q", b.Type())
	}
}

func TestBuilder_WithMergesVariables(t *testing.T) {
	t.Run("DistinctKeys", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			With(map[string]interface{}{"a": 1}).
			With(map[string]interface{}{"b": 2})

		want := map[string]interface{}{"a": 1, "b": 2}
		if diff := cmp.Diff(want, b.Variables()); diff != "" {
			t.Errorf("variables mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			With(map[string]interface{}{"a": 1}).
			With(map[string]interface{}{"a": 2})

		want := map[string]interface{}{"a": 2}
		if diff := cmp.Diff(want, b.Variables()); diff != "" {
			t.Errorf("variables mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ShallowOverwrite", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			With(map[string]interface{}{"in": map[string]interface{}{"x": 1, "y": 2}}).
			With(map[string]interface{}{"in": map[string]interface{}{"x": 3}})

		want := map[string]interface{}{"in": map[string]interface{}{"x": 3}}
		if diff := cmp.Diff(want, b.Variables()); diff != "" {
			t.Errorf("variables mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("SetAndGetVariable", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).SetVariable("id", "42")

		v, ok := b.Variable("id")
		if !ok || v != "42" {
			t.Errorf("Expected variable id=42, got %v (%v)", v, ok)
		}
		if _, ok := b.Variable("missing"); ok {
			t.Error("Expected missing variable to be absent")
		}
	})
}

func TestBuilder_HeaderLines(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		lines, err := NewBuilder(testEndpoint, config.DefaultAuth()).HeaderLines()
		if err != nil {
			t.Fatalf("HeaderLines failed: %v", err)
		}

		want := []string{"Content-Type: application/json", "User-Agent: Go GraphQL client"}
		if diff := cmp.Diff(want, lines); diff != "" {
			t.Errorf("headers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("MergeKeepsOrder", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			Header("X-Trace", "abc").
			WithHeaders(map[string]string{"X-B": "2", "X-A": "1"}).
			Header("Content-Type", "application/graphql+json")

		lines, err := b.HeaderLines()
		if err != nil {
			t.Fatalf("HeaderLines failed: %v", err)
		}

		want := []string{
			"Content-Type: application/graphql+json",
			"User-Agent: Go GraphQL client",
			"X-Trace: abc",
			"X-A: 1",
			"X-B: 2",
		}
		if diff := cmp.Diff(want, lines); diff != "" {
			t.Errorf("headers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("DefaultCredentials", func(t *testing.T) {
		lines, err := NewBuilder(testEndpoint, authWithCredentials("default-token")).HeaderLines()
		if err != nil {
			t.Fatalf("HeaderLines failed: %v", err)
		}

		want := []string{
			"Content-Type: application/json",
			"User-Agent: Go GraphQL client",
			"Authorization: Bearer default-token",
		}
		if diff := cmp.Diff(want, lines); diff != "" {
			t.Errorf("headers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("TokenOverridesDefault", func(t *testing.T) {
		fields, err := NewBuilder(testEndpoint, authWithCredentials("default-token")).
			WithToken("request-token").
			AuthHeaders()
		if err != nil {
			t.Fatalf("AuthHeaders failed: %v", err)
		}

		last := fields[len(fields)-1]
		if last.Name != "Authorization" || last.Value != "Bearer request-token" {
			t.Errorf("Expected per-request token, got %v", last)
		}
	})

	t.Run("TokenWithoutDefault", func(t *testing.T) {
		fields, err := NewBuilder(testEndpoint, config.DefaultAuth()).WithToken("t").AuthHeaders()
		if err != nil {
			t.Fatalf("AuthHeaders failed: %v", err)
		}
		if got := fields[len(fields)-1].String(); got != "Authorization: Bearer t" {
			t.Errorf("Expected 'Authorization: Bearer t', got %q", got)
		}
	})

	t.Run("CustomSchemeAndHeader", func(t *testing.T) {
		a := config.Auth{
			Scheme:      "token",
			Schemes:     map[string]string{"token": "Token "},
			Credentials: "abc",
			Header:      "X-Auth",
		}

		fields, err := NewBuilder(testEndpoint, a).AuthHeaders()
		if err != nil {
			t.Fatalf("AuthHeaders failed: %v", err)
		}
		if got := fields[len(fields)-1].String(); got != "X-Auth: Token abc" {
			t.Errorf("Expected 'X-Auth: Token abc', got %q", got)
		}
	})

	t.Run("UnknownScheme", func(t *testing.T) {
		a := authWithCredentials("abc")
		a.Scheme = "digest"

		_, err := NewBuilder(testEndpoint, a).HeaderLines()
		if !errors.Is(err, errors.ErrConfiguration) {
			t.Errorf("Expected ErrConfiguration, got: %v", err)
		}
	})

	t.Run("EmptyAuthHeader", func(t *testing.T) {
		a := authWithCredentials("abc")
		a.Header = ""

		_, err := NewBuilder(testEndpoint, a).HeaderLines()
		if !errors.Is(err, errors.ErrConfiguration) {
			t.Errorf("Expected ErrConfiguration, got: %v", err)
		}
	})

	t.Run("ExplicitHeaderWins", func(t *testing.T) {
		lines, err := NewBuilder(testEndpoint, authWithCredentials("default-token")).
			Header("Authorization", "Basic xyz").
			HeaderLines()
		if err != nil {
			t.Fatalf("HeaderLines failed: %v", err)
		}
		if lines[2] != "Authorization: Basic xyz" || len(lines) != 3 {
			t.Errorf("Expected explicit Authorization header to be kept, got %v", lines)
		}
	})

	t.Run("DoesNotMutateBuilder", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).WithToken("first")
		if _, err := b.HeaderLines(); err != nil {
			t.Fatalf("HeaderLines failed: %v", err)
		}

		lines, _ := b.WithToken("second").HeaderLines()
		if lines[len(lines)-1] != "Authorization: Bearer second" {
			t.Errorf("Expected the new token to be used, got %v", lines)
		}
	})

	t.Run("SharedRegistry", func(t *testing.T) {
		registry := auth.NewRegistry(map[string]string{"bearer": "JWT "})
		lines, err := NewBuilder(testEndpoint, config.DefaultAuth(), WithRegistry(registry)).
			WithToken("t").
			HeaderLines()
		if err != nil {
			t.Fatalf("HeaderLines failed: %v", err)
		}
		if lines[len(lines)-1] != "Authorization: JWT t" {
			t.Errorf("Expected registry prefix, got %v", lines)
		}
	})
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Endpoint = testEndpoint
	cfg.UserAgent = "my-app/1.0"
	cfg.Headers = map[string]string{"X-Tenant": "acme"}
	cfg.Auth.Credentials = "secret"

	b := NewFromConfig(cfg, WithHeader("X-Extra", "1"))

	if b.URL() != testEndpoint {
		t.Errorf("Expected endpoint from config, got %s", b.URL())
	}

	lines, err := b.HeaderLines()
	if err != nil {
		t.Fatalf("HeaderLines failed: %v", err)
	}

	want := []string{
		"Content-Type: application/json",
		"User-Agent: my-app/1.0",
		"X-Tenant: acme",
		"X-Extra: 1",
		"Authorization: Bearer secret",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
}
