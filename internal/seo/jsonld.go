package seo

// ldObject is a decoded JSON-LD node. Plugin output varies between versions,
// so nodes are walked loosely instead of decoded into fixed structs.
type ldObject map[string]any

// hasType reports whether @type equals t, accepting both "T" and ["T", ...].
func (o ldObject) hasType(t string) bool {
	switch v := o["@type"].(type) {
	case string:
		return v == t
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == t {
				return true
			}
		}
	}
	return false
}

// objects returns the objects stored under key. A single object is treated
// as a one-element list; non-object items are dropped.
func (o ldObject) objects(key string) []ldObject {
	switch v := o[key].(type) {
	case map[string]any:
		return []ldObject{v}
	case []any:
		out := make([]ldObject, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func (o ldObject) str(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}
