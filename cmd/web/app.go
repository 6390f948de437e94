package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"sveasoft.se/web/internal/cms"
	"sveasoft.se/web/internal/config"
	"sveasoft.se/web/internal/contact"
	"sveasoft.se/web/internal/handlers"
	"sveasoft.se/web/internal/i18n"
	mw "sveasoft.se/web/internal/middleware"
	"sveasoft.se/web/internal/observability"
	"sveasoft.se/web/internal/showcase"
	"sveasoft.se/web/internal/status"
)

// app holds the collaborators shared by every handler.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	bundle    *i18n.Bundle
	sessions  *mw.Sessions
	site      *cms.Store
	pages     *cms.Pages
	registry  *showcase.Registry
	notifier  contact.Notifier
	checker   *status.Checker
	tmpl      *templates
	analytics handlers.Analytics
	now       func() time.Time
}

type appDeps struct {
	Notifier  contact.Notifier
	Clock     showcase.Clock
	Analytics handlers.Analytics
}

// newApp wires the site from configuration. The showcase sequence is read once here; an empty
// project list is a fatal configuration error.
func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger, deps appDeps) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bundle, err := i18n.Load(cfg.Site.LocalesDir, cfg.Site.DefaultLang, []string{"en", "sv"})
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	tmpl, err := newTemplates(cfg.Site.TemplatesDir, cfg.Site.DevMode, bundle)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	store := cms.NewStore(cfg.Site.ContentFile, 0)
	site, err := store.Site(ctx)
	if err != nil {
		return nil, err
	}

	opts := []showcase.Option{
		showcase.WithInterval(cfg.Showcase.Interval),
		showcase.WithTransition(cfg.Showcase.Transition),
		showcase.WithLogger(logger.Named("showcase")),
	}
	if deps.Clock != nil {
		opts = append(opts, showcase.WithClock(deps.Clock))
	}
	registry, err := showcase.NewRegistry(site.ShowcaseItems(), cfg.Showcase.IdleTTL, opts...)
	if err != nil {
		return nil, err
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = contact.NewLogNotifier(logger.Named("contact"))
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		bundle:    bundle,
		sessions:  mw.NewSessions(cfg.Site.SessionSigningKey, cfg.Site.Production(), logger),
		site:      store,
		pages:     cms.NewPages(cfg.Site.ContentDir, cfg.Site.DefaultLang, 0),
		registry:  registry,
		notifier:  notifier,
		checker:   status.NewChecker(5 * time.Second),
		tmpl:      tmpl,
		analytics: deps.Analytics,
		now:       time.Now,
	}
	a.registerProbes()
	return a, nil
}

func (a *app) registerProbes() {
	a.checker.Register("content", true, func(ctx context.Context) (string, error) {
		site, err := a.site.Site(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d projects", len(site.Projects)), nil
	})
	a.checker.Register("showcase", true, func(context.Context) (string, error) {
		return fmt.Sprintf("%d mounted", a.registry.Len()), nil
	})
	a.checker.Register("contact", false, func(context.Context) (string, error) {
		if _, ok := a.notifier.(*contact.PubSubNotifier); ok {
			return "pubsub", nil
		}
		return "log", nil
	})
}

// Close unmounts every showcase controller.
func (a *app) Close() {
	a.registry.Close()
}

// routes builds the HTTP handler.
func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLogger(a.logger))
	r.Use(observability.Recovery(a.logger))
	r.Use(mw.HTMX)
	r.Use(a.sessions.Middleware)
	r.Use(mw.Locale(a.bundle))
	r.Use(observability.RequestLogger(mw.LogFields))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", a.HealthHandler)
	r.Get("/status.json", a.StatusHandler)
	r.Handle("/assets/*", mw.AssetsWithCache("/assets", filepath.Join(a.cfg.Site.PublicDir, "assets")))

	r.Group(func(r chi.Router) {
		r.Use(mw.CSRF(a.sessions.Secure()))
		r.Use(mw.VaryLocale)

		r.Get("/", a.HomeHandler)
		r.Get("/legal/{slug}", a.LegalHandler)

		r.Get("/showcase", a.ShowcaseFrag)
		r.Post("/showcase/next", a.ShowcaseNext)
		r.Post("/showcase/prev", a.ShowcasePrev)
		r.Post("/showcase/jump/{index}", a.ShowcaseJump)

		r.Post("/contact", a.ContactSubmit)

		r.Get("/cart", a.CartFrag)
		r.Post("/cart/{packageID}", a.CartAdd)
		r.Post("/cart/{packageID}/remove", a.CartRemove)
	})
	r.NotFound(a.NotFoundHandler)
	return r
}
