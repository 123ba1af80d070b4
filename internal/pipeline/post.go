// Package pipeline turns CMS entries into composed pages.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/onlinelabs/website/internal/composer"
	"github.com/onlinelabs/website/internal/content"
	"github.com/onlinelabs/website/internal/models"
	"github.com/onlinelabs/website/internal/seo"
)

// authorScanDepth bounds how many recent posts are scanned for an author page.
const authorScanDepth = 100

type PostPipeline struct {
	posts   PostSource
	authors AuthorDirectory
	site    composer.Site
}

func NewPostPipeline(posts PostSource, authors AuthorDirectory, site composer.Site) *PostPipeline {
	return &PostPipeline{
		posts:   posts,
		authors: authors,
		site:    site,
	}
}

// Render fetches, mines, annotates and composes a blog post. The only error
// outcome is the source's not-found error; a missing SEO head still renders
// with CMS defaults.
func (p *PostPipeline) Render(ctx context.Context, slug string) (*models.RenderedPage, error) {
	post, err := p.posts.FetchPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	var meta models.SeoMeta
	var faqs []models.FaqEntry
	if post.SEOHead != "" {
		meta = seo.ExtractSeoMeta(post.SEOHead)
		faqs = seo.ExtractFaqs(post.SEOHead)
	}

	body, toc := content.AnnotateHeadings(post.ContentHTML)
	author := p.authors.Resolve(post.AuthorDisplayName)

	page := composer.ComposePage(p.site, post, meta, body, toc, faqs, author)
	page.AvatarURL = p.authors.Avatar(post.AuthorDisplayName)

	slog.Debug("Rendered post",
		"slug", slug,
		"headings", len(toc),
		"faqs", len(faqs),
		"seo_head", post.SEOHead != "",
		"author_profile", author != nil,
	)
	return &page, nil
}

// List returns the newest posts for the blog index.
func (p *PostPipeline) List(ctx context.Context, first int) ([]models.Post, error) {
	posts, err := p.posts.ListPosts(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// ByAuthor returns recent posts whose author resolves to the given profile.
func (p *PostPipeline) ByAuthor(ctx context.Context, profileSlug string) ([]models.Post, error) {
	posts, err := p.posts.ListPosts(ctx, authorScanDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for author %s: %w", profileSlug, err)
	}
	var out []models.Post
	for _, post := range posts {
		if a := p.authors.Resolve(post.AuthorDisplayName); a != nil && a.Slug == profileSlug {
			out = append(out, post)
		}
	}
	return out, nil
}
