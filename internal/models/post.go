package models

import "time"

// Post represents one published blog article as delivered by the CMS.
type Post struct {
	Slug              string
	Title             string
	ContentHTML       string
	ExcerptHTML       string
	PublishedAt       time.Time
	ModifiedAt        time.Time
	URI               string // canonical path on the CMS origin
	FeaturedImage     *FeaturedImage
	AuthorDisplayName string
	Categories        []string

	// SEOHead is the raw <head> fragment produced by the SEO plugin.
	// Empty when the plugin endpoint was unavailable.
	SEOHead string
}

type FeaturedImage struct {
	SourceURL string
	AltText   string
	Width     int
	Height    int
}

// HeadingEntry is one table-of-contents item.
type HeadingEntry struct {
	Level int
	Text  string
	ID    string
}

// FaqEntry is a question/answer pair mined from FAQPage structured data.
type FaqEntry struct {
	Question   string
	AnswerHTML string
	Answer     string // AnswerHTML with tags stripped and entities decoded
}

// AuthorProfile is a current staff member with a public profile page.
type AuthorProfile struct {
	Slug        string `yaml:"slug"`
	DisplayName string `yaml:"display_name"`
	Title       string `yaml:"title"`
	Bio         string `yaml:"bio"`
	PhotoURL    string `yaml:"photo_url"`
	LinkedInURL string `yaml:"linkedin_url"`
}

// SeoMeta holds the fields mined from an SEO head fragment. Empty means absent.
type SeoMeta struct {
	Title       string
	Description string
	OGImage     string
}
