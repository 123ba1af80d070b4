package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/onlinelabs/website/internal/apperr"
	"github.com/onlinelabs/website/internal/cms"
	"github.com/onlinelabs/website/internal/composer"
	"github.com/onlinelabs/website/internal/contact"
	"github.com/onlinelabs/website/internal/models"
	"github.com/onlinelabs/website/internal/sitemap"
	"github.com/onlinelabs/website/internal/view"
)

const (
	blogPageSize    = 24
	sitemapMaxPosts = 500
	feedPosts       = 20
)

type listCopy struct {
	title, intro string
}

var nodeLists = map[models.NodeKind]listCopy{
	models.KindService:  {"Diensten", "Van SEO tot data: zo helpen we je online groeien."},
	models.KindCase:     {"Cases", "Resultaten die we samen met klanten hebben behaald."},
	models.KindTraining: {"Trainingen", "Leer het vak zelf, in-company of in open groepen."},
}

func (s *Server) setupRoutes() {
	e := s.Echo

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.StaticFS("/static", view.Static())

	e.GET("/", s.homeHandler)
	e.GET("/blog", s.blogListHandler)
	e.GET("/blog/feed.xml", s.feedHandler)
	e.GET("/blog/:slug", s.postHandler)
	for _, kind := range models.NodeKinds {
		e.GET(kind.Section(), s.nodeListHandler(kind))
		e.GET(kind.Section()+"/:slug", s.nodeHandler(kind))
	}
	e.GET("/auteur/:slug", s.authorHandler)
	e.GET("/over-ons", s.aboutHandler)
	e.GET("/contact", s.contactPageHandler)
	e.GET("/bedankt", s.thanksHandler)
	e.GET("/sitemap.xml", s.sitemapHandler)
	e.GET("/robots.txt", s.robotsHandler)

	e.POST("/api/contact", s.contactHandler, s.contactRateLimiter())
}

type renderFunc func(ctx context.Context) ([]byte, error)

// cached serves the response body for the request path from the cache,
// rendering it on a miss. Loads are detached from the request's
// cancellation because concurrent requests share them.
func (s *Server) cached(c echo.Context, ttl time.Duration, contentType string, render renderFunc) error {
	return s.cachedOr(c, ttl, contentType, render, nil)
}

// cachedOr is cached with a degraded rendering for upstream failures other
// than not-found. The degraded page is served with no-store and never
// enters the cache, so the next request tries the CMS again.
func (s *Server) cachedOr(c echo.Context, ttl time.Duration, contentType string, render, fallback renderFunc) error {
	ctx := context.WithoutCancel(c.Request().Context())
	body, err := s.deps.Cache.GetOrLoad(c.Request().URL.Path, ttl, func() ([]byte, error) {
		return render(ctx)
	})
	if err != nil && fallback != nil && !errors.Is(err, cms.ErrNotFound) {
		slog.Warn("Serving degraded page", "path", c.Request().URL.Path, "error", err)
		degraded, ferr := fallback(ctx)
		if ferr != nil {
			return ferr
		}
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		return c.Blob(http.StatusOK, contentType, degraded)
	}
	if err != nil {
		return toHTTPError(err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, cacheControl(ttl))
	return c.Blob(http.StatusOK, contentType, body)
}

func cacheControl(ttl time.Duration) string {
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", int(ttl.Seconds()))
}

// toHTTPError turns a CMS miss into a 404 so the error handler renders the
// not-found page.
func toHTTPError(err error) error {
	if errors.Is(err, cms.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found").SetInternal(err)
	}
	return err
}

func (s *Server) head(path, title, description string) view.Head {
	meta, graph := composer.ComposeStatic(s.deps.Site, path, title, description)
	return view.Head{Meta: meta, JSONLD: graph}
}

func (s *Server) homeHandler(c echo.Context) error {
	return s.cached(c, s.cfg.ContentRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
		home := s.deps.Home.Load(ctx)
		head := s.head("/", s.deps.Site.Name, s.deps.Site.Description)
		return s.deps.View.RenderHome(head, home)
	})
}

func (s *Server) blogListHandler(c echo.Context) error {
	page := func(posts []models.Post) ([]byte, error) {
		head := s.head("/blog", "Blog", "Praktische artikelen over SEO, SEA, content en data.")
		return s.deps.View.RenderList(head, view.ListPage{Title: "Blog", Path: "/blog", Posts: posts})
	}
	return s.cachedOr(c, s.cfg.ContentRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
		posts, err := s.deps.Posts.List(ctx, blogPageSize)
		if err != nil {
			return nil, err
		}
		return page(posts)
	}, func(context.Context) ([]byte, error) {
		return page(nil)
	})
}

func (s *Server) postHandler(c echo.Context) error {
	slug := c.Param("slug")
	return s.cached(c, s.cfg.ContentRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
		page, err := s.deps.Posts.Render(ctx, slug)
		if err != nil {
			return nil, err
		}
		return s.deps.View.RenderPost(page)
	})
}

func (s *Server) nodeListHandler(kind models.NodeKind) echo.HandlerFunc {
	text := nodeLists[kind]
	page := func(nodes []models.ContentNode) ([]byte, error) {
		head := s.head(kind.Section(), text.title, text.intro)
		return s.deps.View.RenderList(head, view.ListPage{Title: text.title, Intro: text.intro, Path: kind.Section(), Nodes: nodes})
	}
	return func(c echo.Context) error {
		return s.cachedOr(c, s.cfg.StaticRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
			nodes, err := s.deps.Nodes.List(ctx, kind)
			if err != nil {
				return nil, err
			}
			return page(nodes)
		}, func(context.Context) ([]byte, error) {
			return page(nil)
		})
	}
}

func (s *Server) nodeHandler(kind models.NodeKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")
		return s.cached(c, s.cfg.StaticRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
			node, err := s.deps.Nodes.Render(ctx, kind, slug)
			if err != nil {
				return nil, err
			}
			return s.deps.View.RenderNode(node)
		})
	}
}

func (s *Server) authorHandler(c echo.Context) error {
	profile := s.deps.Authors.BySlug(c.Param("slug"))
	if profile == nil {
		return echo.ErrNotFound
	}
	page := func(posts []models.Post) ([]byte, error) {
		meta, graph := composer.ComposeAuthor(s.deps.Site, profile)
		return s.deps.View.RenderAuthor(view.Head{Meta: meta, JSONLD: graph}, view.AuthorPage{Profile: profile, Posts: posts})
	}
	return s.cachedOr(c, s.cfg.StaticRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
		posts, err := s.deps.Posts.ByAuthor(ctx, profile.Slug)
		if err != nil {
			return nil, err
		}
		return page(posts)
	}, func(context.Context) ([]byte, error) {
		return page(nil)
	})
}

func (s *Server) aboutHandler(c echo.Context) error {
	return s.cached(c, s.cfg.StaticRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
		head := s.head("/over-ons", "Over ons", "Maak kennis met het team van "+s.deps.Site.Name+".")
		return s.deps.View.RenderAbout(head, s.deps.Authors.Profiles())
	})
}

func (s *Server) contactPageHandler(c echo.Context) error {
	return s.cached(c, s.cfg.StaticRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
		return s.deps.View.RenderContact(s.head("/contact", "Contact", "Vertel ons over je vraag, we reageren binnen één werkdag."))
	})
}

func (s *Server) thanksHandler(c echo.Context) error {
	return s.cached(c, s.cfg.StaticRevalidate, echo.MIMETextHTMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
		return s.deps.View.RenderThanks(s.head("/bedankt", "Bedankt", ""))
	})
}

// sitemapHandler collects posts and nodes concurrently. Any failure fails the
// response so an incomplete sitemap is never cached.
func (s *Server) sitemapHandler(c echo.Context) error {
	return s.cached(c, s.cfg.StaticRevalidate, echo.MIMEApplicationXMLCharsetUTF8, func(ctx context.Context) ([]byte, error) {
		var posts []models.Post
		nodesByKind := make([][]models.ContentNode, len(models.NodeKinds))

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			posts, err = s.deps.Posts.List(gctx, sitemapMaxPosts)
			return err
		})
		for i, kind := range models.NodeKinds {
			i, kind := i, kind
			g.Go(func() error {
				nodes, err := s.deps.Nodes.List(gctx, kind)
				nodesByKind[i] = nodes
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to collect sitemap content: %w", err)
		}

		var nodes []models.ContentNode
		for _, n := range nodesByKind {
			nodes = append(nodes, n...)
		}
		out, err := sitemap.Render(sitemap.Build(s.deps.Site.URL, sitemap.StaticRoutes, posts, nodes, s.deps.Authors.Profiles()))
		return []byte(out), err
	})
}

func (s *Server) feedHandler(c echo.Context) error {
	return s.cached(c, s.cfg.ContentRevalidate, "application/rss+xml; charset=UTF-8", func(ctx context.Context) ([]byte, error) {
		posts, err := s.deps.Posts.List(ctx, feedPosts)
		if err != nil {
			return nil, err
		}
		feed := sitemap.Feed{Title: s.deps.Site.Name + " blog", SiteURL: s.deps.Site.URL, Description: s.deps.Site.Description}
		out, err := sitemap.RenderFeed(feed, posts, time.Now())
		return []byte(out), err
	})
}

func (s *Server) robotsHandler(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderCacheControl, cacheControl(s.cfg.StaticRevalidate))
	return c.String(http.StatusOK, sitemap.RobotsTxt(s.deps.Site.URL))
}

type contactResponse struct {
	OK       bool   `json:"ok"`
	Redirect string `json:"redirect"`
}

type contactFailure struct {
	Error         string `json:"error"`
	FallbackEmail string `json:"fallbackEmail"`
}

func (s *Server) contactHandler(c echo.Context) error {
	var req models.ContactRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	req.UserAgent = c.Request().UserAgent()
	req.RemoteIP = c.RealIP()

	_, err := s.deps.Contact.Submit(c.Request().Context(), req)
	if errors.Is(err, contact.ErrRelayFailed) {
		return c.JSON(http.StatusBadGateway, contactFailure{
			Error:         "Je bericht kon niet worden verstuurd. Probeer het opnieuw of mail ons direct.",
			FallbackEmail: s.cfg.ContactEmail,
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactResponse{OK: true, Redirect: "/bedankt"})
}

// contactRateLimiter allows ContactRateLimit submissions per minute per client IP.
func (s *Server) contactRateLimiter() echo.MiddlewareFunc {
	perMinute := s.cfg.ContactRateLimit
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "rate limiter error").SetInternal(err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			slog.Warn("Contact rate limit exceeded", "ip", identifier)
			return c.JSON(http.StatusTooManyRequests, contactFailure{
				Error:         "Te veel aanvragen. Probeer het over een minuut opnieuw.",
				FallbackEmail: s.cfg.ContactEmail,
			})
		},
	})
}
