package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/saturnines/graphql-client/pkg/config"
	"github.com/saturnines/graphql-client/pkg/transport/graphql"
)

const description = `Usage:

    gqlreq [options...]

Description:

Builds a GraphQL request from flags, sends it and prints the response as JSON.
Exactly one of --query, --mutation or --raw must be given.

Example:

    # Query a public API
    $ gqlreq --endpoint https://countries.trevorblades.com/ --query 'country(code:"BR"){name}'

    # Pass variables to a full document
    $ gqlreq --endpoint https://countries.trevorblades.com/ --var code=BR \
        --raw 'query ($code: ID!) { country(code: $code) { name } }'

    # Use a config file with credentials taken from .env
    $ gqlreq --config client.yaml --env-file .env --raw-response --raw '{ viewer { login } }'`

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "gqlreq"
	app.Usage = "Send a GraphQL request"
	app.Description = description
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			Usage:  "Path to a YAML client config",
			EnvVar: "GQLREQ_CONFIG",
		},
		cli.StringSliceFlag{
			Name:   "env-file",
			Usage:  "A .env file used to expand ${VARS} in the config (repeatable)",
			EnvVar: "GQLREQ_ENV_FILE",
		},
		cli.StringFlag{
			Name:   "endpoint",
			Usage:  "GraphQL endpoint, overrides the config",
			EnvVar: "GQLREQ_ENDPOINT",
		},
		cli.StringFlag{
			Name:  "query",
			Usage: "Selection set of a query, wrapped as 'query {...}'",
		},
		cli.StringFlag{
			Name:  "mutation",
			Usage: "Selection set of a mutation, wrapped as 'mutation {...}'",
		},
		cli.StringFlag{
			Name:  "raw",
			Usage: "A complete GraphQL document, sent as is",
		},
		cli.StringSliceFlag{
			Name:  "var",
			Usage: "A variable as key=value (repeatable)",
		},
		cli.StringSliceFlag{
			Name:  "header",
			Usage: "A header as 'Name: value' (repeatable)",
		},
		cli.StringFlag{
			Name:   "token",
			Usage:  "Credential for this request, overrides auth_credentials",
			EnvVar: "GQLREQ_TOKEN",
		},
		cli.StringFlag{
			Name:   "basic-auth",
			Usage:  "Send 'user:password' with the basic scheme, instead of --token",
			EnvVar: "GQLREQ_BASIC_AUTH",
		},
		cli.StringFlag{
			Name:  "format",
			Value: "array",
			Usage: "Decode as 'array' or 'json'",
		},
		cli.BoolFlag{
			Name:  "raw-response",
			Usage: "Print the whole response instead of its data member",
		},
		cli.BoolFlag{
			Name:  "validate",
			Usage: "Parse the document before sending it",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Usage: "HTTP timeout, overrides the config",
		},
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "Log the request and response status",
			EnvVar: "GQLREQ_DEBUG",
		},
	}
	app.Action = func(c *cli.Context) error {
		return run(context.Background(), c, out)
	}

	return app
}

func run(ctx context.Context, c *cli.Context, out io.Writer) error {
	cfg, err := loadConfig(c.String("config"), c.StringSlice("env-file"))
	if err != nil {
		return err
	}

	if endpoint := c.String("endpoint"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("an endpoint is required, set --endpoint or endpoint in the config")
	}
	if timeout := c.Duration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	if c.Bool("validate") {
		cfg.ValidateDocuments = true
	}

	format, err := graphql.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	vars, err := parseVars(c.StringSlice("var"))
	if err != nil {
		return err
	}
	headers, err := parseHeaders(c.StringSlice("header"))
	if err != nil {
		return err
	}

	token := c.String("token")
	if userPass := c.String("basic-auth"); userPass != "" {
		if token != "" {
			return fmt.Errorf("--token and --basic-auth cannot be used together")
		}
		if token, err = basicToken(&cfg.Auth, userPass); err != nil {
			return err
		}
	}

	var opts []graphql.BuilderOption
	if c.Bool("debug") {
		opts = append(opts, graphql.WithLogger(func(s string) { log.Print(s) }))
	}

	b := graphql.NewFromConfig(cfg, opts...).
		With(vars).
		WithHeaders(headers).
		WithToken(token)

	if err := setDocument(b, c.String("query"), c.String("mutation"), c.String("raw")); err != nil {
		return err
	}

	result, err := b.Execute(ctx, format, c.Bool("raw-response"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// loadConfig reads path when given, otherwise starts from the defaults
func loadConfig(path string, envFiles []string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	var expander config.VariableExpander = &config.EnvExpander{}
	if len(envFiles) > 0 {
		expander = &config.DotEnvExpander{Files: envFiles}
	}

	loader := config.NewLoader(expander, &config.ConfigDefaults{}, &config.AuthValidator{}, &config.TimeoutValidator{})
	return loader.Load(path)
}
