// Package eventfile reads provider event fixtures written as JSON or YAML.
package eventfile

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads path and returns the event as a JSON payload
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file %s: %w", path, err)
	}

	payload, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode event file %s: %w", path, err)
	}
	return payload, nil
}

// Decode converts a JSON or YAML document into a JSON payload. JSON input is
// returned unchanged.
func Decode(data []byte) ([]byte, error) {
	if json.Valid(data) {
		return data, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("empty event document")
	}

	normalized, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// normalize rewrites YAML mappings with non-string keys so they can be
// encoded as JSON objects.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return v, nil
	}
}
