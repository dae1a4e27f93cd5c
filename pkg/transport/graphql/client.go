package graphql

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/saturnines/graphql-client/pkg/errors"
)

// HTTPDoer is the minimal interface the builder needs to send requests
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Execute sends the request and decodes the response.
// With raw false only the "data" member is returned (nil when absent).
// format picks the shape: map trees for FormatArray, *Object for FormatJSON.
func (b *Builder) Execute(ctx context.Context, format Format, raw bool) (interface{}, error) {
	body, err := b.send(ctx)
	if err != nil {
		return nil, err
	}
	return decodeResponse(body, format, raw)
}

// Get executes the request and returns the "data" member
func (b *Builder) Get(ctx context.Context, format Format) (interface{}, error) {
	return b.Execute(ctx, format, false)
}

// GetRaw executes the request and returns the whole response
func (b *Builder) GetRaw(ctx context.Context, format Format) (interface{}, error) {
	return b.Execute(ctx, format, true)
}

// Decode executes the request and decodes "data" into out
func (b *Builder) Decode(ctx context.Context, out interface{}) error {
	result, err := b.Get(ctx, FormatJSON)
	if err != nil {
		return err
	}

	obj, ok := result.(*Object)
	if !ok {
		return errors.WrapError(fmt.Errorf("response has no data"), errors.ErrDecode, "decode data")
	}
	return obj.Decode(out)
}

// send performs the HTTP exchange and returns the response body
func (b *Builder) send(ctx context.Context) ([]byte, error) {
	if b.validate {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}

	desc, err := b.Request()
	if err != nil {
		return nil, err
	}

	t, err := newTransport(desc)
	if err != nil {
		return nil, err
	}

	req, cancel, err := t.request(ctx, b.endpoint)
	if err != nil {
		return nil, err
	}
	defer cancel()

	doer, ok := t.client(b.doer)
	if !ok {
		b.logf("transport options need an *http.Client, got %T; ignoring them", b.doer)
	}

	b.logf(">> %s %s", req.Method, b.endpoint)
	b.logf(">> body: %s", t.body)

	resp, err := doer.Do(req)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrTransport, "send request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrTransport, "read response body")
	}

	b.logf("<< %s", resp.Status)

	if (resp.StatusCode < 200 || resp.StatusCode > 299) && !t.ignoreErrors {
		return nil, &errors.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       data,
		}
	}

	return data, nil
}
