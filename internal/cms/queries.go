package cms

import (
	"fmt"

	"github.com/onlinelabs/website/internal/models"
)

const postFields = `
	slug
	title
	excerpt
	dateGmt
	modifiedGmt
	uri
	featuredImage { node { sourceUrl altText mediaDetails { width height } } }
	author { node { name } }
	categories { nodes { name } }`

var postBySlugQuery = `query PostBySlug($slug: ID!) {
  post(id: $slug, idType: SLUG) {` + postFields + `
    content
  }
}`

var listPostsQuery = `query ListPosts($first: Int!) {
  posts(first: $first, where: { status: PUBLISH, orderby: { field: DATE, order: DESC } }) {
    nodes {` + postFields + `
    }
  }
}`

const nodeFields = `
	slug
	title
	excerpt
	modifiedGmt
	uri
	featuredImage { node { sourceUrl altText mediaDetails { width height } } }`

const testimonialsQuery = `query Testimonials {
  testimonials(first: 20) {
    nodes { title content testimonialFields { company } }
  }
}`

const homeSettingsQuery = `query HomeSettings {
  siteSettings { homeHero { title subtitle cta } }
}`

// graphQLNames maps a node kind to its WPGraphQL single and plural fields.
var graphQLNames = map[models.NodeKind][2]string{
	models.KindService:  {"service", "services"},
	models.KindCase:     {"case", "cases"},
	models.KindTraining: {"training", "trainings"},
}

func nodeBySlugQuery(kind models.NodeKind) (string, error) {
	names, ok := graphQLNames[kind]
	if !ok {
		return "", fmt.Errorf("unknown node kind %q", kind)
	}
	return fmt.Sprintf(`query NodeBySlug($slug: ID!) {
  node: %s(id: $slug, idType: SLUG) {%s
    content
  }
}`, names[0], nodeFields), nil
}

func listNodesQuery(kind models.NodeKind) (string, error) {
	names, ok := graphQLNames[kind]
	if !ok {
		return "", fmt.Errorf("unknown node kind %q", kind)
	}
	return fmt.Sprintf(`query ListNodes($first: Int!) {
  nodes: %s(first: $first, where: { status: PUBLISH, orderby: { field: MENU_ORDER, order: ASC } }) {
    nodes {%s
    }
  }
}`, names[1], nodeFields), nil
}
