// Package cms talks to the headless WordPress instance over WPGraphQL and to
// the SEO plugin's REST endpoint.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/machinebox/graphql"

	"github.com/onlinelabs/website/internal/config"
	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
	"github.com/onlinelabs/website/internal/util"
)

// ErrNotFound is returned when a post or node is absent or could not be fetched.
var ErrNotFound = errors.New("cms: not found")

const maxResponseBytes = 8 << 20

const requestTimeout = 15 * time.Second

type Client struct {
	graphQL    *graphql.Client
	httpClient *http.Client
	origin     string
	seoPlugin  string
}

func New(cfg *config.Config) *Client {
	gqlHTTP := &http.Client{
		Timeout:   requestTimeout,
		Transport: statusTransport{next: http.DefaultTransport},
	}
	return &Client{
		graphQL:    graphql.NewClient(cfg.GraphQLEndpoint(), graphql.WithHTTPClient(gqlHTTP)),
		httpClient: &http.Client{Timeout: requestTimeout},
		origin:     cfg.CMSOrigin,
		seoPlugin:  cfg.SEOPlugin,
	}
}

// FetchPostBySlug loads one post and, best effort, its SEO head fragment.
// Every failure of the post query is reported as ErrNotFound.
func (c *Client) FetchPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var data struct {
		Post *wpPost `json:"post"`
	}
	if err := c.query(ctx, postBySlugQuery, map[string]any{"slug": slug}, &data); err != nil {
		slog.Warn("Post query failed", "slug", slug, "error", err)
		return nil, fmt.Errorf("%w: post %q: %v", ErrNotFound, slug, err)
	}
	if data.Post == nil {
		return nil, fmt.Errorf("%w: post %q", ErrNotFound, slug)
	}

	post := data.Post.toModel()
	post.SEOHead = c.fetchSEOHead(ctx, post.URI)
	return post, nil
}

// FetchNodeBySlug loads a service, case or training entry with its SEO head.
func (c *Client) FetchNodeBySlug(ctx context.Context, kind models.NodeKind, slug string) (*models.ContentNode, error) {
	q, err := nodeBySlugQuery(kind)
	if err != nil {
		return nil, err
	}
	var data struct {
		Node *wpNode `json:"node"`
	}
	if err := c.query(ctx, q, map[string]any{"slug": slug}, &data); err != nil {
		slog.Warn("Node query failed", "kind", kind, "slug", slug, "error", err)
		return nil, fmt.Errorf("%w: %s %q: %v", ErrNotFound, kind, slug, err)
	}
	if data.Node == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, slug)
	}

	node := data.Node.toModel(kind)
	node.SEOHead = c.fetchSEOHead(ctx, node.URI)
	return node, nil
}

// ListPosts returns up to first published posts, newest first.
func (c *Client) ListPosts(ctx context.Context, first int) ([]models.Post, error) {
	var data struct {
		Posts struct {
			Nodes []wpPost `json:"nodes"`
		} `json:"posts"`
	}
	if err := c.query(ctx, listPostsQuery, map[string]any{"first": first}, &data); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	posts := make([]models.Post, 0, len(data.Posts.Nodes))
	for i := range data.Posts.Nodes {
		posts = append(posts, *data.Posts.Nodes[i].toModel())
	}
	return posts, nil
}

// ListNodes returns the published entries of one kind in menu order.
func (c *Client) ListNodes(ctx context.Context, kind models.NodeKind) ([]models.ContentNode, error) {
	q, err := listNodesQuery(kind)
	if err != nil {
		return nil, err
	}
	var data struct {
		Nodes struct {
			Nodes []wpNode `json:"nodes"`
		} `json:"nodes"`
	}
	if err := c.query(ctx, q, map[string]any{"first": 100}, &data); err != nil {
		return nil, fmt.Errorf("failed to list %s nodes: %w", kind, err)
	}
	nodes := make([]models.ContentNode, 0, len(data.Nodes.Nodes))
	for i := range data.Nodes.Nodes {
		nodes = append(nodes, *data.Nodes.Nodes[i].toModel(kind))
	}
	return nodes, nil
}

func (c *Client) FetchTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	var data struct {
		Testimonials struct {
			Nodes []wpTestimonial `json:"nodes"`
		} `json:"testimonials"`
	}
	if err := c.query(ctx, testimonialsQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}
	out := make([]models.Testimonial, 0, len(data.Testimonials.Nodes))
	for _, n := range data.Testimonials.Nodes {
		t := models.Testimonial{
			Name:  content.PlainText(n.Title),
			Quote: content.PlainText(n.Content),
		}
		if n.TestimonialFields != nil {
			t.Company = n.TestimonialFields.Company
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *Client) FetchHomeSettings(ctx context.Context) (models.HomeSettings, error) {
	var data struct {
		SiteSettings *struct {
			HomeHero *struct {
				Title    string `json:"title"`
				Subtitle string `json:"subtitle"`
				CTA      string `json:"cta"`
			} `json:"homeHero"`
		} `json:"siteSettings"`
	}
	if err := c.query(ctx, homeSettingsQuery, nil, &data); err != nil {
		return models.HomeSettings{}, fmt.Errorf("failed to fetch home settings: %w", err)
	}
	if data.SiteSettings == nil || data.SiteSettings.HomeHero == nil {
		return models.HomeSettings{}, nil
	}
	hero := data.SiteSettings.HomeHero
	return models.HomeSettings{HeroTitle: hero.Title, HeroSubtitle: hero.Subtitle, HeroCTA: hero.CTA}, nil
}

// query runs a GraphQL request and decodes the data member into out. A
// non-2xx status, a non-JSON body or any entry in the errors array fails
// the call.
func (c *Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	req := graphql.NewRequest(query)
	for k, v := range variables {
		req.Var(k, v)
	}
	if err := c.graphQL.Run(ctx, req, out); err != nil {
		return fmt.Errorf("GraphQL request failed: %w", err)
	}
	return nil
}

// statusTransport rejects non-2xx responses before the GraphQL client
// decodes them. A gateway error page may carry a JSON body without errors.
type statusTransport struct {
	next http.RoundTripper
}

func (t statusTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	res, err := t.next.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		res.Body.Close()
		return nil, fmt.Errorf("GraphQL status code %d", res.StatusCode)
	}
	return res, nil
}

// fetchSEOHead asks the SEO plugin for the head fragment of the page at uri.
// It never fails: any problem yields an empty fragment.
func (c *Client) fetchSEOHead(ctx context.Context, uri string) string {
	if uri == "" {
		return ""
	}
	canonical := util.JoinURL(c.origin, uri)
	headURL := fmt.Sprintf("%s/wp-json/%s/v1/getHead?url=%s", c.origin, c.seoPlugin, url.QueryEscape(canonical))

	head, err := c.getSEOHead(ctx, headURL)
	if err != nil {
		slog.Warn("SEO head unavailable, using CMS defaults", "uri", uri, "error", err)
		return ""
	}
	return head
}

func (c *Client) getSEOHead(ctx context.Context, headURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, headURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch SEO head: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("SEO head status code %d", res.StatusCode)
	}
	mediaType, _, err := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return "", fmt.Errorf("SEO head has content type %q, want application/json", res.Header.Get("Content-Type"))
	}

	var payload seoHeadResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode SEO head: %w", err)
	}
	if !payload.Success {
		return "", errors.New("SEO plugin reported success=false")
	}
	return payload.Head, nil
}
