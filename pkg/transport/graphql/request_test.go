package graphql

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/saturnines/graphql-client/pkg/config"
)

func TestBuilder_Body(t *testing.T) {
	t.Run("EmptyVariables", func(t *testing.T) {
		body, err := NewBuilder(testEndpoint, config.DefaultAuth()).Query("user(id:1){name}").Body()
		if err != nil {
			t.Fatalf("Body failed: %v", err)
		}

		want := `{"query":"query {user(id:1){name}}","variables":{}}`
		if string(body) != want {
			t.Errorf("Expected body %s, got %s", want, body)
		}
	})

	t.Run("NumericStrings", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			Query("x").
			With(map[string]interface{}{
				"id":     "42",
				"name":   "Ada",
				"price":  "4.50",
				"nested": map[string]interface{}{"n": "7"},
				"list":   []interface{}{"1", "x"},
			})

		body, err := b.Body()
		if err != nil {
			t.Fatalf("Body failed: %v", err)
		}

		want := `{"query":"query {x}","variables":{"id":42,"list":[1,"x"],"name":"Ada","nested":{"n":7},"price":4.5}}`
		if string(body) != want {
			t.Errorf("Expected body %s, got %s", want, body)
		}
	})

	t.Run("NestedTypedContainers", func(t *testing.T) {
		type userID string
		type input struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}

		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			Query("x").
			With(map[string]interface{}{
				"items":  []map[string]interface{}{{"id": "42"}},
				"input":  map[string][]string{"ids": {"7"}},
				"flat":   []string{"5"},
				"user":   &input{ID: "3", Name: "Ada"},
				"owner":  userID("11"),
				"counts": [2]string{"1", "two"},
			})

		body, err := b.Body()
		if err != nil {
			t.Fatalf("Body failed: %v", err)
		}

		want := `{"query":"query {x}","variables":{"counts":[1,"two"],"flat":[5],"input":{"ids":[7]},"items":[{"id":42}],"owner":11,"user":{"id":3,"name":"Ada"}}}`
		if string(body) != want {
			t.Errorf("Expected body %s, got %s", want, body)
		}
	})

	t.Run("NoHTMLEscaping", func(t *testing.T) {
		body, err := NewBuilder(testEndpoint, config.DefaultAuth()).
			Raw(`{ search(q: "a<b && c>d") { id } }`).
			Body()
		if err != nil {
			t.Fatalf("Body failed: %v", err)
		}

		want := `{"query":"{ search(q: \"a<b && c>d\") { id } }","variables":{}}`
		if string(body) != want {
			t.Errorf("Expected body %s, got %s", want, body)
		}
	})

	t.Run("VariablesUnchanged", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).Query("x").SetVariable("id", "42")
		if _, err := b.Body(); err != nil {
			t.Fatalf("Body failed: %v", err)
		}

		if v, _ := b.Variable("id"); v != "42" {
			t.Errorf("Body must not rewrite stored variables, got %#v", v)
		}
	})
}

func TestNumericString(t *testing.T) {
	tests := []struct {
		in   string
		want json.Number
		ok   bool
	}{
		{"42", "42", true},
		{" 42 ", "42", true},
		{"-17", "-17", true},
		{"+5", "5", true},
		{"007", "7", true},
		{"-0", "0", true},
		{"4.50", "4.5", true},
		{"1.0", "1.0", true},
		{"5.", "5.0", true},
		{".5", "0.5", true},
		{"1e3", "1000.0", true},
		{"2.5E-3", "0.0025", true},
		{"99999999999999999999", "1e+20", true},
		{"", "", false},
		{"abc", "", false},
		{"12abc", "", false},
		{"0x1A", "", false},
		{"1_000", "", false},
		{"1e999", "", false},
		{"NaN", "", false},
		{"Inf", "", false},
		{"--1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := numericString(tt.in)
			if ok != tt.ok {
				t.Fatalf("numericString(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("numericString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuilder_Request(t *testing.T) {
	t.Run("Descriptor", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).Query("me{id}").WithToken("t")

		desc, err := b.Request()
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}

		want := StreamContext{
			"http": {
				"method":  "POST",
				"content": `{"query":"query {me{id}}","variables":{}}`,
				"header": []string{
					"Content-Type: application/json",
					"User-Agent: Go GraphQL client",
					"Authorization: Bearer t",
				},
			},
		}
		if diff := cmp.Diff(want, desc); diff != "" {
			t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ContextAddsWrapper", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			Query("me{id}").
			Context(StreamContext{"ssl": {"verify_peer": false}})

		desc, err := b.Request()
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}

		if desc["http"]["method"] != "POST" {
			t.Errorf("Expected generated http wrapper to survive, got %v", desc["http"])
		}
		if desc["ssl"]["verify_peer"] != false {
			t.Errorf("Expected ssl wrapper from context, got %v", desc["ssl"])
		}
	})

	t.Run("ContextReplacesHTTPWrapper", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			Query("me{id}").
			Context(StreamContext{"http": {"timeout": 5}})

		desc, err := b.Request()
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}

		want := map[string]interface{}{"timeout": 5}
		if diff := cmp.Diff(want, desc["http"]); diff != "" {
			t.Errorf("http wrapper mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ContextIsReplacedNotMerged", func(t *testing.T) {
		b := NewBuilder(testEndpoint, config.DefaultAuth()).
			Query("me{id}").
			Context(StreamContext{"ssl": {"verify_peer": false}}).
			Context(StreamContext{"http": {"proxy": "tcp://proxy:3128"}})

		desc, err := b.Request()
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if _, ok := desc["ssl"]; ok {
			t.Error("Expected earlier context to be replaced")
		}
	})

	t.Run("AuthErrorPropagates", func(t *testing.T) {
		a := authWithCredentials("x")
		a.Scheme = "nope"

		if _, err := NewBuilder(testEndpoint, a).Query("x").Request(); err == nil {
			t.Error("Expected configuration error")
		}
	})
}
