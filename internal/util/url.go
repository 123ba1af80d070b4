package util

import "strings"

// JoinURL appends path to origin with exactly one slash between them.
// The path is kept as-is otherwise, trailing slash included.
func JoinURL(origin, path string) string {
	origin = strings.TrimRight(origin, "/")
	if path == "" {
		return origin + "/"
	}
	return origin + "/" + strings.TrimLeft(path, "/")
}

// Canonical builds the public canonical URL for a site path. The trailing
// slash is removed; the root keeps its slash.
func Canonical(siteURL, path string) string {
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		path = trimmed
	}
	return JoinURL(siteURL, path)
}
