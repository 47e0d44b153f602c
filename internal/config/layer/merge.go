package layer

import "strings"

// DeepMerge merges src into dst recursively. Nested maps are merged
// key by key; any other value in src replaces the value in dst. The
// returned map is a new map; neither input is mutated.
func DeepMerge(dst, src map[string]any) map[string]any {
	result := make(map[string]any, len(dst)+len(src))

	for k, v := range dst {
		result[k] = cloneValue(v)
	}

	for k, v := range src {
		existing, ok := result[k]
		if !ok {
			result[k] = cloneValue(v)
			continue
		}

		dstMap, dstIsMap := existing.(map[string]any)
		srcMap, srcIsMap := v.(map[string]any)
		if dstIsMap && srcIsMap {
			result[k] = DeepMerge(dstMap, srcMap)
		} else {
			result[k] = cloneValue(v)
		}
	}

	return result
}

// cloneValue deep-copies maps and slices so merged trees never alias
// layer data.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		clone := make(map[string]any, len(val))
		for k, item := range val {
			clone[k] = cloneValue(item)
		}
		return clone
	case []any:
		clone := make([]any, len(val))
		for i, item := range val {
			clone[i] = cloneValue(item)
		}
		return clone
	default:
		return v
	}
}

// GetByPath retrieves a value from a nested map using a dot-separated
// path such as "popup.max_height".
func GetByPath(data map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		value, ok := current[part]
		if !ok {
			return nil, false
		}

		if i == len(parts)-1 {
			return value, true
		}

		next, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}

	return nil, false
}

// SetByPath stores a value in a nested map using a dot-separated path,
// creating intermediate maps as needed. A non-map value along the path
// is replaced by a map.
func SetByPath(data map[string]any, path string, value any) {
	if path == "" {
		return
	}

	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
