package graphql

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/saturnines/graphql-client/pkg/errors"
)

// computed attributes, keyed by StudlyCase name
var attributes = map[string]func(*Builder) (interface{}, error){
	"RawQuery": func(b *Builder) (interface{}, error) { return b.Document(), nil },
	"Document": func(b *Builder) (interface{}, error) { return b.Document(), nil },
	"Headers":  func(b *Builder) (interface{}, error) { return b.HeaderLines() },
	"Request":  func(b *Builder) (interface{}, error) { return b.Request() },
	"Body": func(b *Builder) (interface{}, error) {
		body, err := b.Body()
		return string(body), err
	},
}

// Attribute reads a computed attribute ("raw_query", "headers", "request",
// ...) or, failing that, a variable. A name that is neither returns ok false
// and no error.
func (b *Builder) Attribute(name string) (value interface{}, ok bool, err error) {
	if fn, exists := attributes[studly(name)]; exists {
		value, err = fn(b)
		if err != nil {
			return nil, false, err
		}
		return value, true, nil
	}

	value, ok = b.variables[name]
	return value, ok, nil
}

// Call dispatches a chain method by name, for callers that build requests
// from untyped input. Builder methods are matched first. Any other name
// starting with "with" assigns args[0] to the builder property it names
// (withEndpoint, withToken, ...) or sets a variable (withUserId sets
// "userId"). Everything else fails with ErrNoSuchMethod.
func (b *Builder) Call(method string, args ...interface{}) (*Builder, error) {
	var arg interface{}
	if len(args) > 0 {
		arg = args[0]
	}

	switch method {
	case "query", "mutation", "raw", "endpoint":
		s, err := argString(method, arg)
		if err != nil {
			return b, err
		}
		switch method {
		case "query":
			return b.Query(s), nil
		case "mutation":
			return b.Mutation(s), nil
		case "raw":
			return b.Raw(s), nil
		default:
			return b.Endpoint(s), nil
		}
	case "with":
		vars, err := argVariables(method, arg)
		if err != nil {
			return b, err
		}
		return b.With(vars), nil
	case "header":
		if len(args) < 2 {
			return b, errors.WrapError(fmt.Errorf("want 2 arguments, got %d", len(args)), errors.ErrValidation, "call header")
		}
		key, err := argString(method, args[0])
		if err != nil {
			return b, err
		}
		value, err := argString(method, args[1])
		if err != nil {
			return b, err
		}
		return b.Header(key, value), nil
	case "withHeaders":
		headers, err := argHeaders(method, arg)
		if err != nil {
			return b, err
		}
		return b.WithHeaders(headers), nil
	case "context":
		ctx, err := toStreamContext(arg)
		if err != nil {
			return b, err
		}
		return b.Context(ctx), nil
	}

	if !strings.HasPrefix(method, "with") {
		return b, &errors.NoSuchMethodError{Method: method}
	}

	name := camel(method[len("with"):])
	if err := b.setProperty(name, arg); err != nil {
		if errors.Is(err, errNotProperty) {
			b.variables[name] = arg
			return b, nil
		}
		return b, err
	}
	return b, nil
}

var errNotProperty = fmt.Errorf("not a property")

// setProperty assigns one of the builder's own fields
func (b *Builder) setProperty(name string, v interface{}) error {
	switch name {
	case "endpoint", "token", "query":
		s, err := argString("with"+studly(name), v)
		if err != nil {
			return err
		}
		switch name {
		case "endpoint":
			b.endpoint = s
		case "token":
			b.token = s
		default:
			b.query = s
		}
	case "queryType":
		s, err := argString("withQueryType", v)
		if err != nil {
			return err
		}
		switch t := QueryType(s); t {
		case QueryTypeQuery, QueryTypeMutation, QueryTypeRaw:
			b.queryType = t
		default:
			return errors.WrapError(fmt.Errorf("unknown query type %q", s), errors.ErrValidation, "call withQueryType")
		}
	case "variables":
		vars, err := argVariables("withVariables", v)
		if err != nil {
			return err
		}
		b.variables = vars
	case "rawHeaders":
		headers, err := argHeaders("withRawHeaders", v)
		if err != nil {
			return err
		}
		b.headers = newHeaderSet()
		b.WithHeaders(headers)
	case "context":
		ctx, err := toStreamContext(v)
		if err != nil {
			return err
		}
		b.Context(ctx)
	default:
		return errNotProperty
	}
	return nil
}

func argString(method string, v interface{}) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", errors.WrapError(fmt.Errorf("want string, got %T", v), errors.ErrValidation, "call "+method)
	}
}

func argVariables(method string, v interface{}) (map[string]interface{}, error) {
	switch m := v.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, item := range m {
			out[k] = item
		}
		return out, nil
	case map[string]string:
		out := make(map[string]interface{}, len(m))
		for k, item := range m {
			out[k] = item
		}
		return out, nil
	default:
		return nil, errors.WrapError(fmt.Errorf("want map, got %T", v), errors.ErrValidation, "call "+method)
	}
}

func argHeaders(method string, v interface{}) (map[string]string, error) {
	switch m := v.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return m, nil
	case map[string]interface{}:
		out := make(map[string]string, len(m))
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s, err := argString(method, m[k])
			if err != nil {
				return nil, err
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, errors.WrapError(fmt.Errorf("want map, got %T", v), errors.ErrValidation, "call "+method)
	}
}

// studly converts "raw_query", "raw-query" or "rawQuery" to "RawQuery"
func studly(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})

	var sb strings.Builder
	for _, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(w[size:])
	}
	return sb.String()
}

// camel converts "UserId" or "_user_id" to "userId"
func camel(s string) string {
	st := studly(s)
	if st == "" {
		return st
	}
	r, size := utf8.DecodeRuneInString(st)
	return string(unicode.ToLower(r)) + st[size:]
}
