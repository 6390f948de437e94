package handlers

import (
	"sveasoft.se/web/internal/cms"
	"sveasoft.se/web/internal/nav"
	"sveasoft.se/web/internal/seo"
)

// Layout carries the fields every page shares with the base template.
type Layout struct {
	Title     string
	Lang      string
	Langs     []string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	CSRFToken string
	CartCount int
	Brand     cms.Brand
	Footer    cms.Footer
	Year      int
}

// PageData is the view model for simple content pages using the shared layout.
type PageData struct {
	Layout
	Content cms.ContentPage
	Body    any // rendered markdown (template.HTML)
}
