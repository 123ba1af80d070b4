package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/onlinelabs/website/internal/models"
)

const homeLatestPosts = 3

type HomeLoader struct {
	source HomeSource
}

func NewHomeLoader(source HomeSource) *HomeLoader {
	return &HomeLoader{source: source}
}

// Load fetches the home page sections concurrently. A failing section is
// logged and left empty; the page itself always loads.
func (h *HomeLoader) Load(ctx context.Context) *models.HomePage {
	var home models.HomePage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		settings, err := h.source.FetchHomeSettings(gctx)
		if err != nil {
			slog.Warn("Home settings unavailable", "error", err)
			return nil
		}
		home.Settings = settings
		return nil
	})
	g.Go(func() error {
		services, err := h.source.ListNodes(gctx, models.KindService)
		if err != nil {
			slog.Warn("Home services unavailable", "error", err)
			return nil
		}
		home.Services = services
		return nil
	})
	g.Go(func() error {
		testimonials, err := h.source.FetchTestimonials(gctx)
		if err != nil {
			slog.Warn("Home testimonials unavailable", "error", err)
			return nil
		}
		home.Testimonials = testimonials
		return nil
	})
	g.Go(func() error {
		posts, err := h.source.ListPosts(gctx, homeLatestPosts)
		if err != nil {
			slog.Warn("Home latest posts unavailable", "error", err)
			return nil
		}
		home.LatestPosts = posts
		return nil
	})

	_ = g.Wait()
	return &home
}
