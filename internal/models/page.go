package models

import "time"

// Metadata is the set of head tags emitted for a page.
type Metadata struct {
	Title         string
	Description   string
	Canonical     string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGType        string
}

// RenderedPage is the composed blog post ready for the view layer.
type RenderedPage struct {
	Metadata  Metadata
	BodyHTML  string
	TOC       []HeadingEntry
	FAQs      []FaqEntry
	JSONLD    []map[string]any
	Post      *Post
	Author    *AuthorProfile // nil suppresses the author link and bio
	AvatarURL string
}

type NodeKind string

const (
	KindService  NodeKind = "service"
	KindCase     NodeKind = "case"
	KindTraining NodeKind = "training"
)

// NodeKinds lists every kind in menu order.
var NodeKinds = []NodeKind{KindService, KindCase, KindTraining}

// Section is the public path prefix that lists nodes of this kind.
func (k NodeKind) Section() string {
	switch k {
	case KindService:
		return "/diensten"
	case KindCase:
		return "/cases"
	case KindTraining:
		return "/trainingen"
	}
	return ""
}

// Label is the Dutch heading used on list pages.
func (k NodeKind) Label() string {
	switch k {
	case KindService:
		return "Diensten"
	case KindCase:
		return "Cases"
	case KindTraining:
		return "Trainingen"
	}
	return string(k)
}

// ContentNode is a non-blog CMS entry: a service, case study or training offering.
type ContentNode struct {
	Kind          NodeKind
	Slug          string
	Title         string
	ContentHTML   string
	ExcerptHTML   string
	URI           string
	Modified      time.Time
	FeaturedImage *FeaturedImage
	SEOHead       string
}

// RenderedNode is a composed service, case or training detail page.
type RenderedNode struct {
	Metadata Metadata
	BodyHTML string
	TOC      []HeadingEntry
	JSONLD   []map[string]any
	Node     *ContentNode
}

type Testimonial struct {
	Name    string
	Company string
	Quote   string
}

type HomeSettings struct {
	HeroTitle    string
	HeroSubtitle string
	HeroCTA      string
}

// HomePage aggregates the independently fetched home page sections.
type HomePage struct {
	Settings     HomeSettings
	Services     []ContentNode
	Testimonials []Testimonial
	LatestPosts  []Post
}
