// Package composer assembles mined SEO data, annotated content and author
// attribution into renderable pages with schema.org JSON-LD.
package composer

import (
	"strings"
	"time"

	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
	"github.com/onlinelabs/website/internal/util"
)

const descriptionLength = 160

// Site identifies the publisher in metadata and structured data.
type Site struct {
	Name        string
	URL         string
	LogoURL     string
	Description string
	Email       string
	SameAs      []string
}

func DefaultSite(siteURL, email string) Site {
	return Site{
		Name:        "OnlineLabs",
		URL:         siteURL,
		LogoURL:     util.JoinURL(siteURL, "/images/onlinelabs-logo.png"),
		Description: "Online marketingbureau voor SEO, SEA, content en data.",
		Email:       email,
	}
}

func (s Site) orgID() string     { return util.JoinURL(s.URL, "/#organization") }
func (s Site) websiteID() string { return util.JoinURL(s.URL, "/#website") }

// ComposePage merges SEO plugin values over CMS defaults and builds the page
// graph. author may be nil; the article is then attributed to the organization.
func ComposePage(site Site, post *models.Post, seo models.SeoMeta, body string, toc []models.HeadingEntry, faqs []models.FaqEntry, author *models.AuthorProfile) models.RenderedPage {
	canonical := util.Canonical(site.URL, "/blog/"+post.Slug)

	fallback := models.Metadata{
		Title:       post.Title,
		Description: content.Truncate(content.PlainText(post.ExcerptHTML), descriptionLength),
		Canonical:   canonical,
		OGType:      "article",
	}
	if post.FeaturedImage != nil {
		fallback.OGImage = post.FeaturedImage.SourceURL
	}
	meta := MergeMetadata(seo, fallback)

	graph := []map[string]any{
		organizationNode(site),
		websiteNode(site),
		webPageNode(site, meta),
		blogPostingNode(site, post, meta, author),
	}
	if len(faqs) > 0 {
		graph = append(graph, faqPageNode(canonical, faqs))
	}

	return models.RenderedPage{
		Metadata: meta,
		BodyHTML: body,
		TOC:      toc,
		FAQs:     faqs,
		JSONLD:   graph,
		Post:     post,
		Author:   author,
	}
}

// ComposeNode builds a service, case or training page.
func ComposeNode(site Site, node *models.ContentNode, seo models.SeoMeta, body string, toc []models.HeadingEntry) models.RenderedNode {
	path := node.Kind.Section() + "/" + node.Slug
	fallback := models.Metadata{
		Title:       node.Title,
		Description: content.Truncate(content.PlainText(node.ExcerptHTML), descriptionLength),
		Canonical:   util.Canonical(site.URL, path),
		OGType:      "website",
	}
	if node.FeaturedImage != nil {
		fallback.OGImage = node.FeaturedImage.SourceURL
	}
	meta := MergeMetadata(seo, fallback)

	graph := []map[string]any{
		organizationNode(site),
		websiteNode(site),
		webPageNode(site, meta),
	}
	if node.Kind == models.KindService || node.Kind == models.KindTraining {
		graph = append(graph, serviceNode(site, node, meta))
	}

	return models.RenderedNode{
		Metadata: meta,
		BodyHTML: body,
		TOC:      toc,
		JSONLD:   graph,
		Node:     node,
	}
}

// ComposeStatic builds metadata and a minimal graph for pages that have no
// CMS entry of their own, such as the home page and list pages.
func ComposeStatic(site Site, path, title, description string) (models.Metadata, []map[string]any) {
	meta := models.Metadata{
		Title:         title,
		Description:   description,
		Canonical:     util.Canonical(site.URL, path),
		OGTitle:       title,
		OGDescription: description,
		OGType:        "website",
	}
	return meta, []map[string]any{organizationNode(site), websiteNode(site), webPageNode(site, meta)}
}

// MergeMetadata takes each SEO value when it is non-blank and the fallback otherwise.
func MergeMetadata(seo models.SeoMeta, fallback models.Metadata) models.Metadata {
	meta := fallback
	if v := strings.TrimSpace(seo.Title); v != "" {
		meta.Title = v
	}
	if v := strings.TrimSpace(seo.Description); v != "" {
		meta.Description = v
	}
	if v := strings.TrimSpace(seo.OGImage); v != "" {
		meta.OGImage = v
	}
	meta.OGTitle = meta.Title
	meta.OGDescription = meta.Description
	return meta
}

func organizationNode(site Site) map[string]any {
	org := map[string]any{
		"@type": "Organization",
		"@id":   site.orgID(),
		"name":  site.Name,
		"url":   site.URL,
		"logo": map[string]any{
			"@type": "ImageObject",
			"url":   site.LogoURL,
		},
	}
	if site.Email != "" {
		org["email"] = site.Email
	}
	if len(site.SameAs) > 0 {
		org["sameAs"] = site.SameAs
	}
	return org
}

func websiteNode(site Site) map[string]any {
	return map[string]any{
		"@type":       "WebSite",
		"@id":         site.websiteID(),
		"url":         site.URL,
		"name":        site.Name,
		"description": site.Description,
		"inLanguage":  "nl-NL",
		"publisher":   map[string]any{"@id": site.orgID()},
	}
}

func webPageNode(site Site, meta models.Metadata) map[string]any {
	return map[string]any{
		"@type":      "WebPage",
		"@id":        meta.Canonical,
		"url":        meta.Canonical,
		"name":       meta.Title,
		"isPartOf":   map[string]any{"@id": site.websiteID()},
		"inLanguage": "nl-NL",
	}
}

func blogPostingNode(site Site, post *models.Post, meta models.Metadata, author *models.AuthorProfile) map[string]any {
	node := map[string]any{
		"@type":            "BlogPosting",
		"@id":              meta.Canonical + "#article",
		"headline":         post.Title,
		"description":      meta.Description,
		"mainEntityOfPage": map[string]any{"@id": meta.Canonical},
		"publisher":        map[string]any{"@id": site.orgID()},
		"author":           authorNode(site, author),
		"inLanguage":       "nl-NL",
	}
	if !post.PublishedAt.IsZero() {
		node["datePublished"] = post.PublishedAt.Format(time.RFC3339)
	}
	if !post.ModifiedAt.IsZero() {
		node["dateModified"] = post.ModifiedAt.Format(time.RFC3339)
	}
	if meta.OGImage != "" {
		node["image"] = meta.OGImage
	}
	if len(post.Categories) > 0 {
		node["articleSection"] = post.Categories
	}
	return node
}

func authorNode(site Site, author *models.AuthorProfile) map[string]any {
	if author == nil {
		return map[string]any{"@id": site.orgID()}
	}
	person := map[string]any{
		"@type":    "Person",
		"name":     author.DisplayName,
		"url":      util.JoinURL(site.URL, "/auteur/"+author.Slug),
		"worksFor": map[string]any{"@id": site.orgID()},
	}
	if author.Title != "" {
		person["jobTitle"] = author.Title
	}
	if author.PhotoURL != "" {
		person["image"] = util.JoinURL(site.URL, author.PhotoURL)
	}
	if author.LinkedInURL != "" {
		person["sameAs"] = []string{author.LinkedInURL}
	}
	return person
}

func faqPageNode(canonical string, faqs []models.FaqEntry) map[string]any {
	questions := make([]map[string]any, 0, len(faqs))
	for _, f := range faqs {
		questions = append(questions, map[string]any{
			"@type": "Question",
			"name":  f.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  content.PlainText(f.AnswerHTML),
			},
		})
	}
	return map[string]any{
		"@type":      "FAQPage",
		"@id":        canonical + "#faq",
		"mainEntity": questions,
	}
}

func serviceNode(site Site, node *models.ContentNode, meta models.Metadata) map[string]any {
	svc := map[string]any{
		"@type":       "Service",
		"name":        node.Title,
		"description": meta.Description,
		"url":         meta.Canonical,
		"provider":    map[string]any{"@id": site.orgID()},
		"areaServed":  "NL",
	}
	if node.Kind == models.KindTraining {
		svc["@type"] = "Course"
		delete(svc, "areaServed")
	}
	return svc
}

// ComposeAuthor builds the metadata and ProfilePage graph for a staff page.
func ComposeAuthor(site Site, author *models.AuthorProfile) (models.Metadata, []map[string]any) {
	description := content.Truncate(content.PlainText(author.Bio), descriptionLength)
	meta := models.Metadata{
		Title:         author.DisplayName,
		Description:   description,
		Canonical:     util.Canonical(site.URL, "/auteur/"+author.Slug),
		OGTitle:       author.DisplayName,
		OGDescription: description,
		OGType:        "profile",
	}
	if author.PhotoURL != "" {
		meta.OGImage = util.JoinURL(site.URL, author.PhotoURL)
	}

	profile := map[string]any{
		"@type":      "ProfilePage",
		"@id":        meta.Canonical,
		"url":        meta.Canonical,
		"isPartOf":   map[string]any{"@id": site.websiteID()},
		"mainEntity": authorNode(site, author),
	}
	return meta, []map[string]any{organizationNode(site), websiteNode(site), profile}
}
