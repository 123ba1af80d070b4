// Package seo mines the <head> fragment produced by the CMS SEO plugin for
// page metadata and FAQ structured data.
package seo

import (
	"html"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/onlinelabs/website/internal/models"
)

// ExtractSeoMeta reads the title, description and Open Graph image from head.
// Missing fields are left empty for the caller to fill from CMS defaults.
func ExtractSeoMeta(head string) models.SeoMeta {
	var meta models.SeoMeta
	if strings.TrimSpace(head) == "" {
		return meta
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(head))
	if err != nil {
		slog.Warn("Failed to parse SEO head fragment", "error", err)
		return meta
	}

	meta.Title = metaContent(doc, `meta[property="og:title"]`)
	if meta.Title == "" {
		meta.Title = decodeEntities(strings.TrimSpace(doc.Find("title").First().Text()))
	}
	meta.Description = metaContent(doc, `meta[name="description"]`)
	meta.OGImage = metaContent(doc, `meta[property="og:image"]`)
	return meta
}

func metaContent(doc *goquery.Document, selector string) string {
	v, ok := doc.Find(selector).First().Attr("content")
	if !ok {
		return ""
	}
	return decodeEntities(strings.TrimSpace(v))
}

// decodeEntities runs one more decoding pass over parser output. WordPress
// double-encodes typographic entities, e.g. "&amp;#8211;".
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}
