// Package sitemap renders sitemap.xml, robots.txt and the blog RSS feed.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/onlinelabs/website/internal/models"
	"github.com/onlinelabs/website/internal/util"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Route is a page that exists independently of CMS content.
type Route struct {
	Path       string
	Priority   string
	ChangeFreq string
}

// StaticRoutes are the fixed marketing pages.
var StaticRoutes = []Route{
	{Path: "/", Priority: "1.0", ChangeFreq: "weekly"},
	{Path: "/blog", Priority: "0.8", ChangeFreq: "daily"},
	{Path: "/diensten", Priority: "0.7", ChangeFreq: "monthly"},
	{Path: "/cases", Priority: "0.7", ChangeFreq: "monthly"},
	{Path: "/trainingen", Priority: "0.7", ChangeFreq: "monthly"},
	{Path: "/over-ons", Priority: "0.7", ChangeFreq: "monthly"},
	{Path: "/contact", Priority: "0.7", ChangeFreq: "monthly"},
}

// Entry is a single URL in the sitemap.
type Entry struct {
	Loc        string
	Lastmod    string
	ChangeFreq string
	Priority   string
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	Lastmod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Build lists static routes first, then posts, nodes and author profiles,
// skipping entries without a slug.
func Build(siteURL string, static []Route, posts []models.Post, nodes []models.ContentNode, authors []models.AuthorProfile) []Entry {
	entries := make([]Entry, 0, len(static)+len(posts)+len(nodes)+len(authors))
	for _, r := range static {
		entries = append(entries, Entry{
			Loc:        util.Canonical(siteURL, r.Path),
			Priority:   r.Priority,
			ChangeFreq: r.ChangeFreq,
		})
	}
	for _, p := range posts {
		if p.Slug == "" {
			continue
		}
		lastmod := p.ModifiedAt
		if lastmod.IsZero() {
			lastmod = p.PublishedAt
		}
		entries = append(entries, Entry{
			Loc:        util.Canonical(siteURL, "/blog/"+p.Slug),
			Lastmod:    formatDate(lastmod),
			Priority:   "0.6",
			ChangeFreq: "monthly",
		})
	}
	for _, n := range nodes {
		if n.Slug == "" || n.Kind.Section() == "" {
			continue
		}
		entries = append(entries, Entry{
			Loc:        util.Canonical(siteURL, n.Kind.Section()+"/"+n.Slug),
			Lastmod:    formatDate(n.Modified),
			Priority:   "0.7",
			ChangeFreq: "monthly",
		})
	}
	for _, a := range authors {
		if a.Slug == "" {
			continue
		}
		entries = append(entries, Entry{
			Loc:        util.Canonical(siteURL, "/auteur/"+a.Slug),
			Priority:   "0.5",
			ChangeFreq: "monthly",
		})
	}
	return entries
}

// Render serializes entries as a sitemap protocol 0.9 document.
func Render(entries []Entry) (string, error) {
	us := urlSet{XMLNS: sitemapNS}
	for _, e := range entries {
		us.URLs = append(us.URLs, urlEntry(e))
	}

	data, err := xml.MarshalIndent(us, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return xml.Header + string(data) + "\n", nil
}

// RobotsTxt allows every crawler and points at the sitemap.
func RobotsTxt(siteURL string) string {
	lines := []string{
		"User-agent: *",
		"Allow: /",
		"Disallow: /api/",
		"",
		"Sitemap: " + util.JoinURL(siteURL, "/sitemap.xml"),
	}
	return strings.Join(lines, "\n") + "\n"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
