package util

import "testing"

func TestJoinURL(t *testing.T) {
	tests := []struct {
		origin, path, want string
	}{
		{"https://cms.onlinelabs.nl", "/blog/lokale-seo/", "https://cms.onlinelabs.nl/blog/lokale-seo/"},
		{"https://cms.onlinelabs.nl/", "blog/lokale-seo", "https://cms.onlinelabs.nl/blog/lokale-seo"},
		{"https://cms.onlinelabs.nl", "", "https://cms.onlinelabs.nl/"},
	}

	for _, tt := range tests {
		if got := JoinURL(tt.origin, tt.path); got != tt.want {
			t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.origin, tt.path, got, tt.want)
		}
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "root keeps slash", path: "/", want: "https://www.onlinelabs.nl/"},
		{name: "trailing slash removed", path: "/blog/lokale-seo/", want: "https://www.onlinelabs.nl/blog/lokale-seo"},
		{name: "empty is root", path: "", want: "https://www.onlinelabs.nl/"},
		{name: "section path", path: "/diensten/seo", want: "https://www.onlinelabs.nl/diensten/seo"},
		{name: "repeated slashes", path: "/auteur/imre-bernath//", want: "https://www.onlinelabs.nl/auteur/imre-bernath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical("https://www.onlinelabs.nl", tt.path); got != tt.want {
				t.Errorf("Canonical() = %q, want %q", got, tt.want)
			}
		})
	}
}
