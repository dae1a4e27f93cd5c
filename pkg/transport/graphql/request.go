package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/saturnines/graphql-client/pkg/errors"
)

// StreamContext groups transport options by wrapper, e.g.
//
//	StreamContext{
//		"http": {"timeout": 5, "proxy": "tcp://proxy:3128"},
//		"ssl":  {"verify_peer": false},
//	}
//
// Wrappers set with Builder.Context replace the generated ones in Request,
// so a caller supplied "http" wrapper drops the generated method, body and
// headers.
type StreamContext map[string]map[string]interface{}

type requestBody struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Body returns the JSON request body.
// Variable values that are numeric strings are encoded as JSON numbers.
func (b *Builder) Body() ([]byte, error) {
	body := requestBody{
		Query:     b.Document(),
		Variables: numericCheck(b.variables).(map[string]interface{}),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, errors.WrapError(err, errors.ErrValidation, "encode request body")
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Request builds the transport descriptor: an "http" wrapper with method
// POST, the JSON body and the header lines, merged with the builder's
// transport context.
func (b *Builder) Request() (StreamContext, error) {
	body, err := b.Body()
	if err != nil {
		return nil, err
	}

	lines, err := b.HeaderLines()
	if err != nil {
		return nil, err
	}

	desc := StreamContext{
		"http": {
			"method":  http.MethodPost,
			"content": string(body),
			"header":  lines,
		},
	}

	for wrapper, options := range b.context {
		merged := make(map[string]interface{}, len(options))
		for k, v := range options {
			merged[k] = v
		}
		desc[wrapper] = merged
	}

	return desc, nil
}

// toStreamContext accepts the shapes a caller may pass through Call
func toStreamContext(v interface{}) (StreamContext, error) {
	switch ctx := v.(type) {
	case nil:
		return StreamContext{}, nil
	case StreamContext:
		return ctx, nil
	case map[string]map[string]interface{}:
		return StreamContext(ctx), nil
	case map[string]interface{}:
		out := make(StreamContext, len(ctx))
		for wrapper, options := range ctx {
			m, ok := options.(map[string]interface{})
			if !ok {
				return nil, errors.WrapError(
					fmt.Errorf("wrapper %q has options of type %T", wrapper, options),
					errors.ErrValidation,
					"invalid transport context",
				)
			}
			out[wrapper] = m
		}
		return out, nil
	default:
		return nil, errors.WrapError(
			fmt.Errorf("unsupported type %T", v),
			errors.ErrValidation,
			"invalid transport context",
		)
	}
}
