package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"sveasoft.se/web/internal/cms"
	"sveasoft.se/web/internal/format"
	"sveasoft.se/web/internal/handlers"
	"sveasoft.se/web/internal/i18n"
	mw "sveasoft.se/web/internal/middleware"
	"sveasoft.se/web/internal/nav"
	"sveasoft.se/web/internal/observability"
	"sveasoft.se/web/internal/seo"
)

// templates parses every .tmpl under dir. In dev mode templates are reparsed on each render.
type templates struct {
	dir    string
	dev    bool
	bundle *i18n.Bundle
	cache  *template.Template
}

func newTemplates(dir string, dev bool, bundle *i18n.Bundle) (*templates, error) {
	t := &templates{dir: dir, dev: dev, bundle: bundle}
	tc, err := t.parse()
	if err != nil {
		return nil, err
	}
	t.cache = tc
	return t, nil
}

func (t *templates) funcs() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t":   t.bundle.T,
		"tf":  t.bundle.Tf,
		"money": func(minor int64, currency, lang string) string {
			return format.FmtCurrency(minor, currency, lang)
		},
		"date":     format.FmtDate,
		"markdown": cms.Markdown,
		"jsonld":   seo.Script,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"mod": func(a, b int) int {
			if b == 0 {
				return 0
			}
			return ((a % b) + b) % b
		},
		"hasPrefix": strings.HasPrefix,
	}
}

func (t *templates) parse() (*template.Template, error) {
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(t.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", t.dir)
	}
	return template.New("_root").Funcs(t.funcs()).ParseFiles(files...)
}

func (t *templates) get() (*template.Template, error) {
	if t.dev {
		return t.parse()
	}
	return t.cache, nil
}

// execute renders name into a buffer first so a failing template never sends a partial page.
func (t *templates) execute(name string, data any) ([]byte, error) {
	tc, err := t.get()
	if err != nil {
		return nil, fmt.Errorf("template parse error: %w", err)
	}
	var buf bytes.Buffer
	if err := tc.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("template exec error: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPage executes the base layout with page selecting the content block.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, page string, data any) {
	a.renderStatus(w, r, http.StatusOK, "page_"+page, data)
}

// renderTemplate executes a fragment template, typically for htmx swaps.
func (a *app) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	a.renderStatus(w, r, http.StatusOK, name, data)
}

func (a *app) renderStatus(w http.ResponseWriter, r *http.Request, code int, name string, data any) {
	body, err := a.tmpl.execute(name, data)
	if err != nil {
		observability.FromContext(r.Context()).Error("render failed", zap.String("template", name), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// i18nOrDefault returns the translation for key, or def when the key is missing.
func (a *app) i18nOrDefault(lang, key, def string) string {
	if v := a.bundle.T(lang, key); v != key {
		return v
	}
	return def
}

// siteBase returns the configured base URL, or one derived from the request.
func (a *app) siteBase(r *http.Request) string {
	if a.cfg.Site.BaseURL != "" {
		return a.cfg.Site.BaseURL
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// absoluteURL returns the canonical URL of the request path.
func (a *app) absoluteURL(r *http.Request) string {
	return seo.AbsoluteURL(a.siteBase(r), r.URL.Path)
}

func (a *app) buildAlternates(r *http.Request) []seo.Alternate {
	return seo.Alternates(a.siteBase(r), r.URL.Path, a.bundle.Supported(), a.bundle.Fallback())
}

// layout fills the fields shared by every page.
func (a *app) layout(r *http.Request, site cms.Site, title, description, section string) handlers.Layout {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	brand := site.Brand.Name
	l := handlers.Layout{
		Title:       title,
		Lang:        lang,
		Langs:       a.bundle.Supported(),
		Analytics:   a.analytics,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path, section),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		CSRFToken:   sess.CSRFToken,
		CartCount:   sess.CartCount(),
		Brand:       site.Brand,
		Footer:      site.Footer,
		Year:        a.now().Year(),
	}
	l.SEO.Title = title
	if brand != "" && !strings.Contains(title, brand) {
		l.SEO.Title = title + " | " + brand
	}
	l.SEO.Description = description
	l.SEO.Canonical = a.absoluteURL(r)
	l.SEO.OG = seo.OpenGraph{
		Title:       l.SEO.Title,
		Description: description,
		Type:        "website",
		URL:         l.SEO.Canonical,
		SiteName:    brand,
		Locale:      lang,
	}
	l.SEO.Twitter.Card = "summary_large_image"
	l.SEO.Alternates = a.buildAlternates(r)
	return l
}
