package models

// Loose-payload navigation helpers. The assistant service's payloads come in
// several shapes; every consumer walks them through these instead of
// hard-coding one layout.

// MapAt walks nested maps along path and returns the map found at the end.
func MapAt(m map[string]any, path ...string) map[string]any {
	current := m
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

// SliceAt walks nested maps along path and returns the slice found at the
// final key.
func SliceAt(m map[string]any, path ...string) []any {
	if len(path) == 0 {
		return nil
	}
	parent := MapAt(m, path[:len(path)-1]...)
	if parent == nil {
		return nil
	}
	value, _ := parent[path[len(path)-1]].([]any)
	return value
}

// StringAt walks nested maps along path and returns the string found at the
// final key.
func StringAt(m map[string]any, path ...string) string {
	if len(path) == 0 {
		return ""
	}
	parent := MapAt(m, path[:len(path)-1]...)
	if parent == nil {
		return ""
	}
	value, _ := parent[path[len(path)-1]].(string)
	return value
}

// FirstStringOf returns the first non-empty string among the given keys.
func FirstStringOf(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := m[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
