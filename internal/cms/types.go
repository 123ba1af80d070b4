package cms

import (
	"strings"
	"time"

	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
)

type seoHeadResponse struct {
	Success bool   `json:"success"`
	Head    string `json:"head"`
}

type wpImage struct {
	Node *struct {
		SourceURL    string `json:"sourceUrl"`
		AltText      string `json:"altText"`
		MediaDetails struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"mediaDetails"`
	} `json:"node"`
}

func (i *wpImage) toModel() *models.FeaturedImage {
	if i == nil || i.Node == nil || i.Node.SourceURL == "" {
		return nil
	}
	return &models.FeaturedImage{
		SourceURL: i.Node.SourceURL,
		AltText:   i.Node.AltText,
		Width:     i.Node.MediaDetails.Width,
		Height:    i.Node.MediaDetails.Height,
	}
}

type wpPost struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	DateGMT       string   `json:"dateGmt"`
	ModifiedGMT   string   `json:"modifiedGmt"`
	URI           string   `json:"uri"`
	FeaturedImage *wpImage `json:"featuredImage"`
	Author        *struct {
		Node struct {
			Name string `json:"name"`
		} `json:"node"`
	} `json:"author"`
	Categories *struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"categories"`
}

func (p *wpPost) toModel() *models.Post {
	post := &models.Post{
		Slug:          p.Slug,
		Title:         content.PlainText(p.Title),
		ContentHTML:   p.Content,
		ExcerptHTML:   p.Excerpt,
		PublishedAt:   parseWPTime(p.DateGMT),
		ModifiedAt:    parseWPTime(p.ModifiedGMT),
		URI:           p.URI,
		FeaturedImage: p.FeaturedImage.toModel(),
	}
	if p.Author != nil {
		post.AuthorDisplayName = strings.TrimSpace(p.Author.Node.Name)
	}
	if p.Categories != nil {
		for _, c := range p.Categories.Nodes {
			post.Categories = append(post.Categories, c.Name)
		}
	}
	if post.ModifiedAt.IsZero() {
		post.ModifiedAt = post.PublishedAt
	}
	return post
}

type wpNode struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	ModifiedGMT   string   `json:"modifiedGmt"`
	URI           string   `json:"uri"`
	FeaturedImage *wpImage `json:"featuredImage"`
}

func (n *wpNode) toModel(kind models.NodeKind) *models.ContentNode {
	return &models.ContentNode{
		Kind:          kind,
		Slug:          n.Slug,
		Title:         content.PlainText(n.Title),
		ContentHTML:   n.Content,
		ExcerptHTML:   n.Excerpt,
		URI:           n.URI,
		Modified:      parseWPTime(n.ModifiedGMT),
		FeaturedImage: n.FeaturedImage.toModel(),
	}
}

type wpTestimonial struct {
	Title             string `json:"title"`
	Content           string `json:"content"`
	TestimonialFields *struct {
		Company string `json:"company"`
	} `json:"testimonialFields"`
}

// WPGraphQL returns GMT timestamps without a zone designator.
var wpTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

func parseWPTime(s string) time.Time {
	for _, layout := range wpTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
