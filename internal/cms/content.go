package cms

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ContentPage represents a localized static page sourced from local markdown.
type ContentPage struct {
	Kind      string
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string
	UpdatedAt time.Time
	SEO       ContentSEO
}

// ContentSEO holds optional metadata overrides for static pages.
type ContentSEO struct {
	Title       string
	Description string
}

type contentFrontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Lang      string `yaml:"lang"`
	UpdatedAt string `yaml:"updated_at"`
	SEO       struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"seo"`
}

const defaultContentDir = "content"

// Pages reads markdown pages laid out as <dir>/<kind>/<lang>/<slug>.md.
type Pages struct {
	dir         string
	defaultLang string
	ttl         time.Duration

	mu    sync.RWMutex
	items map[string]contentCacheEntry
}

type contentCacheEntry struct {
	page    ContentPage
	expires time.Time
}

// NewPages returns a page reader rooted at dir.
func NewPages(dir, defaultLang string, ttl time.Duration) *Pages {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Pages{
		dir:         dir,
		defaultLang: normalizeLang(defaultLang, "en"),
		ttl:         ttl,
		items:       map[string]contentCacheEntry{},
	}
}

// Get fetches a localized page, falling back to the default language.
func (p *Pages) Get(kind, slug, lang string) (ContentPage, error) {
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		kind = "legal"
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return ContentPage{}, ErrNotFound
	}
	lang = normalizeLang(lang, p.defaultLang)

	key := strings.Join([]string{kind, lang, slug}, "|")
	if page, ok := p.cached(key); ok {
		return page, nil
	}
	priority := []string{lang}
	if lang != p.defaultLang {
		priority = append(priority, p.defaultLang)
	}
	for _, candidate := range priority {
		page, err := readContentMarkdown(p.dir, kind, slug, candidate)
		if err == nil {
			p.store(key, page)
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return ContentPage{}, err
	}
	return ContentPage{}, ErrNotFound
}

func (p *Pages) cached(key string) (ContentPage, bool) {
	p.mu.RLock()
	entry, ok := p.items[key]
	p.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return ContentPage{}, false
	}
	return entry.page, true
}

func (p *Pages) store(key string, page ContentPage) {
	p.mu.Lock()
	p.items[key] = contentCacheEntry{page: page, expires: time.Now().Add(p.ttl)}
	p.mu.Unlock()
}

func readContentMarkdown(contentDir, kind, slug, lang string) (ContentPage, error) {
	file := filepath.Join(contentDir, kind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ContentPage{}, ErrNotFound
		}
		return ContentPage{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	page := ContentPage{
		Kind:      kind,
		Slug:      slug,
		Lang:      firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Body:      body,
		UpdatedAt: parseContentDate(front.UpdatedAt),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
		},
	}
	if page.UpdatedAt.IsZero() {
		if info, statErr := os.Stat(file); statErr == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang, fallback string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return fallback
	}
	return lang
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
