package graphql

import (
	"bytes"
	"encoding"
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// numericCheck returns a copy of v where every numeric string becomes a
// json.Number, at any depth. Containers other than the plain JSON shapes
// (typed slices and maps, structs, pointers) are normalized through their
// JSON encoding first.
func numericCheck(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		return val
	case string:
		if n, ok := numericString(val); ok {
			return n
		}
		return val
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = numericCheck(item)
		}
		return out
	case map[string]string:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = numericCheck(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = numericCheck(item)
		}
		return out
	case []string:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = numericCheck(item)
		}
		return out
	case nil:
		return nil
	default:
		if s, ok := namedString(v); ok {
			return numericCheck(s)
		}
		if !isContainer(v) {
			return v
		}
		normalized, ok := normalizeJSON(v)
		if !ok {
			// left for the body encoder to report
			return v
		}
		return numericCheck(normalized)
	}
}

func isContainer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		// []byte encodes as a base64 string
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Map, reflect.Array, reflect.Struct, reflect.Pointer:
		return true
	default:
		return false
	}
}

// namedString unwraps string kinds such as `type ID string` that have no
// JSON encoding of their own
func namedString(v interface{}) (string, bool) {
	switch v.(type) {
	case json.Marshaler, encoding.TextMarshaler:
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// normalizeJSON round trips v through encoding/json. The result only holds
// map[string]interface{}, []interface{}, string, json.Number, bool and nil.
func normalizeJSON(v interface{}) (interface{}, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, false
	}
	return out, true
}

// numericString reports whether s looks like a number and returns it as a
// valid JSON number literal. Surrounding whitespace is allowed. Integers
// that fit in int64 stay integers; everything else is a float. Values that
// overflow a float64 are left as strings.
func numericString(s string) (json.Number, bool) {
	trimmed := strings.Trim(s, " \t\n\r\v\f")
	if !numericPattern.MatchString(trimmed) {
		return "", false
	}

	if !strings.ContainsAny(trimmed, ".eE") {
		if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return json.Number(strconv.FormatInt(i, 10)), true
		}
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) {
		return "", false
	}

	out := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(out, ".e") {
		out += ".0"
	}
	return json.Number(out), true
}
