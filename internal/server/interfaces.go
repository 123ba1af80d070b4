package server

import (
	"context"

	"github.com/onlinelabs/website/internal/models"
)

// PostRenderer is the blog side of the pipeline.
type PostRenderer interface {
	Render(ctx context.Context, slug string) (*models.RenderedPage, error)
	List(ctx context.Context, first int) ([]models.Post, error)
	ByAuthor(ctx context.Context, profileSlug string) ([]models.Post, error)
}

// NodeRenderer serves services, cases and trainings.
type NodeRenderer interface {
	Render(ctx context.Context, kind models.NodeKind, slug string) (*models.RenderedNode, error)
	List(ctx context.Context, kind models.NodeKind) ([]models.ContentNode, error)
}

type HomeLoader interface {
	Load(ctx context.Context) *models.HomePage
}

// AuthorLookup backs the author and team pages.
type AuthorLookup interface {
	BySlug(slug string) *models.AuthorProfile
	Profiles() []models.AuthorProfile
}

type ContactSubmitter interface {
	Submit(ctx context.Context, req models.ContactRequest) (*models.Lead, error)
}
