package pipeline

import (
	"context"

	"github.com/onlinelabs/website/internal/models"
)

// PostSource abstracts the CMS for blog posts.
type PostSource interface {
	FetchPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListPosts(ctx context.Context, first int) ([]models.Post, error)
}

// NodeSource abstracts the CMS for services, cases and trainings.
type NodeSource interface {
	FetchNodeBySlug(ctx context.Context, kind models.NodeKind, slug string) (*models.ContentNode, error)
	ListNodes(ctx context.Context, kind models.NodeKind) ([]models.ContentNode, error)
}

// HomeSource is everything the home page reads.
type HomeSource interface {
	FetchHomeSettings(ctx context.Context) (models.HomeSettings, error)
	FetchTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ListNodes(ctx context.Context, kind models.NodeKind) ([]models.ContentNode, error)
	ListPosts(ctx context.Context, first int) ([]models.Post, error)
}

// AuthorDirectory resolves CMS author names.
type AuthorDirectory interface {
	Resolve(displayName string) *models.AuthorProfile
	Avatar(displayName string) string
}
