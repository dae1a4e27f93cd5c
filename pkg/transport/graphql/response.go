package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saturnines/graphql-client/pkg/errors"
)

// Format selects the shape of decoded responses
type Format int

const (
	// FormatArray decodes into map[string]interface{} / []interface{} trees
	FormatArray Format = iota
	// FormatJSON wraps the decoded value in an *Object
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "array"
}

// ParseFormat accepts "array" or "json"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "array":
		return FormatArray, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatArray, errors.WrapError(fmt.Errorf("unknown format %q", s), errors.ErrValidation, "parse format")
	}
}

func decodeResponse(body []byte, format Format, raw bool) (interface{}, error) {
	v, err := decodeValue(body)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrDecode, "decode response")
	}

	if format != FormatJSON {
		if raw {
			return v, nil
		}
		if m, ok := v.(map[string]interface{}); ok {
			return m["data"], nil
		}
		return nil, nil
	}

	if raw {
		return &Object{raw: body, value: v}, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		// valid JSON but not an object, so there is no data member
		return nil, nil
	}
	data, ok := top["data"]
	if !ok || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}

	return newObject(data)
}

// Object gives attribute style access to a decoded JSON value
type Object struct {
	raw   json.RawMessage
	value interface{}
}

func newObject(raw json.RawMessage) (*Object, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrDecode, "decode object")
	}
	return &Object{raw: raw, value: v}, nil
}

// Value returns the decoded value
func (o *Object) Value() interface{} {
	return o.value
}

// Get returns the value at a dotted path such as "user.name" or "users.0.id"
func (o *Object) Get(path string) (interface{}, bool) {
	return extractField(o.value, path)
}

// Object returns the value at path wrapped in an Object, or nil if it is missing
func (o *Object) Object(path string) *Object {
	v, ok := o.Get(path)
	if !ok || v == nil {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return &Object{raw: raw, value: v}
}

// Decode decodes the object into out
func (o *Object) Decode(out interface{}) error {
	if err := json.Unmarshal(o.raw, out); err != nil {
		return errors.WrapError(err, errors.ErrDecode, "decode object")
	}
	return nil
}

// MarshalJSON returns the original JSON
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.raw, nil
}

// decodeValue decodes one JSON value. Integers that fit in int64 become
// int64, every other number becomes float64.
func decodeValue(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid character after top-level value")
	}

	return convertNumbers(v), nil
}

func convertNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]interface{}:
		for k, item := range val {
			val[k] = convertNumbers(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = convertNumbers(item)
		}
		return val
	default:
		return v
	}
}

// extractField digs into nested maps and slices via a dotted path
func extractField(data interface{}, path string) (interface{}, bool) {
	if path == "" {
		return data, true
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			v, ok := node[part]
			if !ok {
				return nil, false
			}
			current = v
		case []interface{}:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			current = node[i]
		default:
			return nil, false
		}
	}

	return current, true
}
