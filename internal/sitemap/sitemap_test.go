package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/onlinelabs/website/internal/models"
)

const siteURL = "https://www.onlinelabs.nl"

func TestBuild(t *testing.T) {
	posts := []models.Post{
		{Slug: "lokale-seo", ModifiedAt: time.Date(2025, 3, 2, 23, 0, 0, 0, time.UTC)},
		{Slug: "alleen-gepubliceerd", PublishedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: ""},
	}
	nodes := []models.ContentNode{
		{Kind: models.KindService, Slug: "seo"},
		{Kind: models.KindTraining, Slug: "ga4"},
	}

	profiles := []models.AuthorProfile{
		{Slug: "imre-bernath", DisplayName: "Imre Bernáth"},
		{DisplayName: "Zonder slug"},
	}

	entries := Build(siteURL, StaticRoutes, posts, nodes, profiles)
	if len(entries) != len(StaticRoutes)+2+2+1 {
		t.Fatalf("Expected %d entries, got %d", len(StaticRoutes)+5, len(entries))
	}

	byLoc := make(map[string]Entry)
	for _, e := range entries {
		byLoc[e.Loc] = e
	}

	tests := []struct {
		loc, priority, changefreq, lastmod string
	}{
		{siteURL + "/", "1.0", "weekly", ""},
		{siteURL + "/blog", "0.8", "daily", ""},
		{siteURL + "/contact", "0.7", "monthly", ""},
		{siteURL + "/blog/lokale-seo", "0.6", "monthly", "2025-03-02"},
		{siteURL + "/blog/alleen-gepubliceerd", "0.6", "monthly", "2024-12-01"},
		{siteURL + "/diensten/seo", "0.7", "monthly", ""},
		{siteURL + "/trainingen/ga4", "0.7", "monthly", ""},
		{siteURL + "/auteur/imre-bernath", "0.5", "monthly", ""},
	}
	for _, tt := range tests {
		e, ok := byLoc[tt.loc]
		if !ok {
			t.Errorf("Missing entry %s", tt.loc)
			continue
		}
		if e.Priority != tt.priority || e.ChangeFreq != tt.changefreq || e.Lastmod != tt.lastmod {
			t.Errorf("%s = %+v", tt.loc, e)
		}
	}
}

func TestRender(t *testing.T) {
	out, err := Render(Build(siteURL, StaticRoutes[:1], []models.Post{{Slug: "a&b"}}, nil, nil))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(out, xml.Header) {
		t.Error("Missing XML header")
	}

	var doc urlSet
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Rendered sitemap is not valid XML: %v", err)
	}
	if doc.XMLNS != sitemapNS {
		t.Errorf("xmlns = %q", doc.XMLNS)
	}
	if len(doc.URLs) != 2 || doc.URLs[1].Loc != siteURL+"/blog/a&b" {
		t.Errorf("URLs = %+v", doc.URLs)
	}
	if strings.Contains(out, "<lastmod></lastmod>") {
		t.Error("Empty lastmod should be omitted")
	}
}

func TestRobotsTxt(t *testing.T) {
	got := RobotsTxt(siteURL + "/")
	if !strings.Contains(got, "User-agent: *\nAllow: /") {
		t.Errorf("robots.txt should allow all crawlers:\n%s", got)
	}
	if !strings.Contains(got, "Sitemap: https://www.onlinelabs.nl/sitemap.xml\n") {
		t.Errorf("robots.txt missing sitemap:\n%s", got)
	}
}

func TestRenderFeed(t *testing.T) {
	posts := []models.Post{{
		Slug:        "lokale-seo",
		Title:       "Lokale SEO",
		ExcerptHTML: "<p>Korte <b>intro</b></p>",
		PublishedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Categories:  []string{"SEO"},
	}}
	out, err := RenderFeed(Feed{Title: "OnlineLabs blog", SiteURL: siteURL}, posts, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	var doc rssDoc
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Feed is not valid XML: %v", err)
	}
	if len(doc.Channel.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(doc.Channel.Items))
	}
	item := doc.Channel.Items[0]
	if item.Link != siteURL+"/blog/lokale-seo" || item.Description != "Korte intro" {
		t.Errorf("item = %+v", item)
	}
	if item.PubDate != "Sat, 01 Mar 2025 09:00:00 +0000" {
		t.Errorf("PubDate = %q", item.PubDate)
	}
}
