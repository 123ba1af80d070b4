// Package authors maps free-text CMS author names to staff profiles.
package authors

import (
	"fmt"
	"strings"

	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
)

// Directory is the closed set of current staff plus the looser avatar table.
// The two tables are kept apart on purpose: former employees keep an avatar
// but never resolve to a profile.
type Directory struct {
	profiles []models.AuthorProfile
	bySlug   map[string]*models.AuthorProfile
	byName   map[string]string
	former   map[string]bool
	avatars  map[string]string
}

func newDirectory(f directoryFile) (*Directory, error) {
	d := &Directory{
		profiles: f.Profiles,
		bySlug:   make(map[string]*models.AuthorProfile, len(f.Profiles)),
		byName:   make(map[string]string),
		former:   make(map[string]bool, len(f.Former)),
		avatars:  make(map[string]string, len(f.Avatars)),
	}

	for i := range d.profiles {
		p := &d.profiles[i]
		if p.Slug == "" || p.DisplayName == "" {
			return nil, fmt.Errorf("profile %q: slug and display_name are required", p.DisplayName)
		}
		if _, dup := d.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate profile slug %q", p.Slug)
		}
		d.bySlug[p.Slug] = p
		d.byName[normalizeName(p.DisplayName)] = p.Slug
	}

	for name, slug := range f.Aliases {
		if _, ok := d.bySlug[slug]; !ok {
			return nil, fmt.Errorf("alias %q points to unknown profile %q", name, slug)
		}
		d.byName[normalizeName(name)] = slug
	}

	for _, name := range f.Former {
		key := normalizeName(name)
		if _, clash := d.byName[key]; clash {
			return nil, fmt.Errorf("former employee %q also maps to a current profile", name)
		}
		d.former[key] = true
	}

	for name, photo := range f.Avatars {
		d.avatars[normalizeName(name)] = photo
	}
	return d, nil
}

// Resolve returns the staff profile for a CMS display name, or nil when the
// name is unknown or belongs to a former employee.
func (d *Directory) Resolve(displayName string) *models.AuthorProfile {
	key := normalizeName(displayName)
	if key == "" || d.former[key] {
		return nil
	}
	slug, ok := d.byName[key]
	if !ok {
		return nil
	}
	p := *d.bySlug[slug]
	return &p
}

// Avatar returns a byline photo for the name. Unlike Resolve it also knows
// former employees.
func (d *Directory) Avatar(displayName string) string {
	key := normalizeName(displayName)
	if photo, ok := d.avatars[key]; ok {
		return photo
	}
	if p := d.Resolve(displayName); p != nil {
		return p.PhotoURL
	}
	return ""
}

// BySlug returns the profile for an author page.
func (d *Directory) BySlug(slug string) *models.AuthorProfile {
	p, ok := d.bySlug[slug]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (d *Directory) Profiles() []models.AuthorProfile {
	out := make([]models.AuthorProfile, len(d.profiles))
	copy(out, d.profiles)
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(content.Fold(strings.Join(strings.Fields(name), " ")))
}
