package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sveasoft.se/web/internal/cms"
	"sveasoft.se/web/internal/format"
	"sveasoft.se/web/internal/handlers"
	"sveasoft.se/web/internal/location"
	mw "sveasoft.se/web/internal/middleware"
	"sveasoft.se/web/internal/observability"
	"sveasoft.se/web/internal/seo"
)

// HomeHandler renders the landing page.
func (a *app) HomeHandler(w http.ResponseWriter, r *http.Request) {
	site, err := a.site.Site(r.Context())
	if err != nil {
		a.serverError(w, r, "load site content", err)
		return
	}
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	title := a.i18nOrDefault(lang, "home.title", "Web application development in Stockholm")
	desc := a.i18nOrDefault(lang, "home.description", site.Hero.Lead)

	preselected, _ := site.Package(r.URL.Query().Get("package"))

	// The controller is mounted by the first poll, not by the page render.
	state, _ := a.registry.Peek(sess.ID)

	vm := handlers.HomeData{
		Layout:   a.layout(r, site, title, desc, ""),
		Hero:     site.Hero,
		Services: handlers.ServiceCards(site.Services),
		Showcase: handlers.BuildShowcaseView(state, a.registry.Items(), a.cfg.Showcase.Poll, lang, sess.CSRFToken),
		Packages: handlers.PackageCards(site.Packages, sess.Cart, lang),
		Cart:     handlers.BuildCartView(site, sess.Cart, lang, sess.CSRFToken),
		Map: location.NewMapView(site.Office, location.MapSettings{
			Token: a.cfg.Map.Token,
			Style: a.cfg.Map.Style,
			Zoom:  a.cfg.Map.Zoom,
		}),
		Contact: handlers.ContactForm{
			Lang:      lang,
			CSRFToken: sess.CSRFToken,
			Package:   preselected.ID,
			Packages:  site.Packages,
		},
	}
	vm.SEO.JSONLD = homeJSONLD(site, a.siteBase(r), vm.Langs)
	a.renderPage(w, r, "home", vm)
}

func homeJSONLD(site cms.Site, url string, langs []string) []any {
	var sameAs []string
	for _, s := range site.Brand.Socials {
		sameAs = append(sameAs, s.Href)
	}
	offers := make([]seo.OfferItem, 0, len(site.Packages))
	for _, p := range site.Packages {
		offers = append(offers, seo.OfferItem{
			Name:        p.Name,
			Description: p.Description,
			Price:       format.Decimal(p.Price),
			Currency:    p.Currency,
		})
	}
	return []any{
		seo.Organization(site.Brand.Name, url, site.Brand.Logo, sameAs),
		seo.WebSite(site.Brand.Name, url, langs),
		seo.LocalBusiness(site.Office, url),
		seo.OfferCatalog(site.Brand.Name+" consulting", offers),
	}
}

// LegalHandler renders a markdown page from content/legal.
func (a *app) LegalHandler(w http.ResponseWriter, r *http.Request) {
	site, err := a.site.Site(r.Context())
	if err != nil {
		a.serverError(w, r, "load site content", err)
		return
	}
	lang := mw.Lang(r)
	page, err := a.pages.Get("legal", chi.URLParam(r, "slug"), lang)
	if errors.Is(err, cms.ErrNotFound) {
		a.NotFoundHandler(w, r)
		return
	}
	if err != nil {
		a.serverError(w, r, "load legal page", err)
		return
	}
	desc := page.SEO.Description
	if desc == "" {
		desc = page.Summary
	}
	title := page.Title
	if page.SEO.Title != "" {
		title = page.SEO.Title
	}
	vm := handlers.PageData{
		Layout:  a.layout(r, site, title, desc, ""),
		Content: page,
		Body:    cms.Markdown(page.Body),
	}
	crumbs := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
	for _, c := range vm.Breadcrumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = a.i18nOrDefault(lang, c.LabelKey, c.Label)
		}
		crumbs = append(crumbs, seo.BreadcrumbItem{Name: name, Item: seo.AbsoluteURL(a.siteBase(r), c.Href)})
	}
	vm.SEO.JSONLD = []any{seo.BreadcrumbList(crumbs)}
	a.renderPage(w, r, "legal", vm)
}

// NotFoundHandler renders the 404 page, or a JSON error for htmx callers.
func (a *app) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	site, err := a.site.Site(r.Context())
	if err != nil {
		site = cms.DefaultSite()
	}
	lang := mw.Lang(r)
	vm := handlers.PageData{Layout: a.layout(r, site, a.i18nOrDefault(lang, "errors.not_found", "Page not found"), "", "")}
	vm.SEO.Robots = "noindex"
	a.renderStatus(w, r, http.StatusNotFound, "page_not_found", vm)
}

func (a *app) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
}
