package main

import (
	"fmt"
	"strings"

	"github.com/saturnines/graphql-client/pkg/auth"
	"github.com/saturnines/graphql-client/pkg/config"
	"github.com/saturnines/graphql-client/pkg/transport/graphql"
)

// parseVars turns key=value pairs into variables.
// Values stay strings; numeric ones are sent as numbers by the builder.
func parseVars(pairs []string) (map[string]interface{}, error) {
	vars := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q, expected key=value", pair)
		}
		vars[key] = value
	}
	return vars, nil
}

// parseHeaders turns "Name: value" lines into a header map
func parseHeaders(lines []string) (map[string]string, error) {
	headers := make(map[string]string, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --header %q, expected 'Name: value'", line)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// setDocument applies whichever of query, mutation and raw is set
func setDocument(b *graphql.Builder, query, mutation, raw string) error {
	set := 0
	for _, s := range []string{query, mutation, raw} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of --query, --mutation or --raw is required, got %d", set)
	}

	switch {
	case query != "":
		b.Query(query)
	case mutation != "":
		b.Mutation(mutation)
	default:
		b.Raw(raw)
	}
	return nil
}

// basicToken switches authCfg to the basic scheme and returns the encoded
// credential for a "user:password" pair
func basicToken(authCfg *config.Auth, userPass string) (string, error) {
	user, pass, ok := strings.Cut(userPass, ":")
	if !ok || user == "" {
		return "", fmt.Errorf("invalid --basic-auth, expected user:password")
	}

	authCfg.Scheme = "basic"
	if authCfg.Schemes == nil {
		authCfg.Schemes = map[string]string{}
	}
	if _, ok := authCfg.Schemes["basic"]; !ok {
		authCfg.Schemes["basic"] = config.DefaultAuthSchemes["basic"]
	}
	return auth.BasicCredentials(user, pass), nil
}
