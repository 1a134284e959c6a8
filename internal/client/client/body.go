package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// body is a response body read in full. JSON bodies are parsed into data;
// anything else that is not blank is kept verbatim in raw.
type body struct {
	bytes []byte
	data  any
	raw   string
}

func parseBody(b []byte) body {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return body{bytes: b}
	}
	var data any
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return body{bytes: b, raw: string(b)}
	}
	return body{bytes: b, data: data}
}

// isJSON reports whether the body held a JSON document.
func (b body) isJSON() bool { return b.data != nil }

// field returns a top-level member of a JSON object body.
func (b body) field(name string) (any, bool) {
	obj, ok := b.data.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[name]
	return v, ok
}

// stringField returns a top-level string member, or "" if absent or not a
// string.
func (b body) stringField(name string) string {
	v, _ := b.field(name)
	s, _ := v.(string)
	return s
}

// decode unmarshals a JSON body into v. Non-JSON or empty bodies leave v
// untouched and are not an error.
func (b body) decode(v any) error {
	if !b.isJSON() {
		return nil
	}
	return json.Unmarshal(bytes.TrimSpace(b.bytes), v)
}

// message extracts a human-readable error text. Candidates are checked in
// order: "detail", "message", "error", the raw non-JSON text, and finally a
// generic "Error {status}".
func (b body) message(status int) string {
	for _, key := range []string{"detail", "message", "error"} {
		if v, ok := b.field(key); ok {
			if s := describe(v); s != "" {
				return s
			}
		}
	}
	if strings.TrimSpace(b.raw) != "" {
		return b.raw
	}
	return fmt.Sprintf("Error %d", status)
}

// describe flattens a detail-like value. Validation errors usually arrive as
// a list of {"msg": ...} objects, which are joined with " | ".
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := describeItem(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	case map[string]any:
		return describeItem(t)
	case bool:
		if !t {
			return ""
		}
		return "true"
	default:
		return fmt.Sprint(t)
	}
}

func describeItem(item any) string {
	if obj, ok := item.(map[string]any); ok {
		for _, key := range []string{"msg", "detail"} {
			if s, ok := obj[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if s, ok := item.(string); ok {
		return s
	}
	b, err := json.Marshal(item)
	if err != nil {
		return fmt.Sprint(item)
	}
	return string(b)
}
