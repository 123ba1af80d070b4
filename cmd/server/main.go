package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/onlinelabs/website/internal/authors"
	"github.com/onlinelabs/website/internal/cache"
	"github.com/onlinelabs/website/internal/cms"
	"github.com/onlinelabs/website/internal/composer"
	"github.com/onlinelabs/website/internal/config"
	"github.com/onlinelabs/website/internal/contact"
	"github.com/onlinelabs/website/internal/notifier"
	"github.com/onlinelabs/website/internal/pipeline"
	"github.com/onlinelabs/website/internal/server"
	"github.com/onlinelabs/website/internal/storage"
	"github.com/onlinelabs/website/internal/view"
)

func main() {
	slog.Info("Starting OnlineLabs website...")
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	directory, err := authors.LoadConfig()
	if err != nil {
		slog.Warn("Failed to load author directory. Using embedded defaults.", "error", err)
		directory = authors.DefaultDirectory()
	}

	site := composer.DefaultSite(cfg.SiteURL, cfg.ContactEmail)
	client := cms.New(cfg)

	engine, err := view.New(site)
	if err != nil {
		slog.Error("Critical error parsing templates", "error", err)
		os.Exit(1)
	}

	var leads contact.LeadStore
	if cfg.ProjectID != "" {
		store, err := storage.New(ctx, cfg.ProjectID)
		if err != nil {
			slog.Error("Critical error initializing Firestore client", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		leads = store
	}

	pageCache := cache.New()
	go pageCache.Start()
	defer pageCache.Stop()

	srv := server.New(cfg, server.Deps{
		Posts:   pipeline.NewPostPipeline(client, directory, site),
		Nodes:   pipeline.NewNodeLoader(client, site),
		Home:    pipeline.NewHomeLoader(client),
		Authors: directory,
		Contact: contact.NewService(leads, notifier.New(cfg.ContactWebhookURL, cfg.ContactEmail), cfg.MaxStoredLeads),
		View:    engine,
		Cache:   pageCache,
		Site:    site,
	})

	if err := srv.Start(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}
