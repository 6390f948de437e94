package cms

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"sveasoft.se/web/internal/location"
	"sveasoft.se/web/internal/showcase"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

// Link is a labelled href.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Brand identifies the company.
type Brand struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Logo    string `yaml:"logo"`
	Socials []Link `yaml:"socials"`
}

// Hero is the landing banner.
type Hero struct {
	Badge     string `yaml:"badge"`
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	TitleTail string `yaml:"title_tail"`
	Lead      string `yaml:"lead"`
	Primary   Link   `yaml:"primary"`
	Secondary Link   `yaml:"secondary"`
}

// Service is a capability card. Description is Markdown.
type Service struct {
	ID          string `yaml:"id"`
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Project is a portfolio entry shown in the showcase.
type Project struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Image        string   `yaml:"image"`
	Category     string   `yaml:"category"`
	Technologies []string `yaml:"technologies"`
	Link         string   `yaml:"link"`
}

// Package is a purchasable consulting bundle. Price is in minor units of Currency.
type Package struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Hours       int      `yaml:"hours"`
	Price       int64    `yaml:"price"`
	Currency    string   `yaml:"currency"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
	Popular     bool     `yaml:"popular"`
}

// FooterColumn is one link group in the footer.
type FooterColumn struct {
	Title string `yaml:"title"`
	Links []Link `yaml:"links"`
}

// Footer holds footer columns and the bottom legal row.
type Footer struct {
	Blurb   string         `yaml:"blurb"`
	Columns []FooterColumn `yaml:"columns"`
	Legal   []Link         `yaml:"legal"`
}

// Site is the whole landing page document.
type Site struct {
	Brand    Brand           `yaml:"brand"`
	Hero     Hero            `yaml:"hero"`
	Services []Service       `yaml:"services"`
	Projects []Project       `yaml:"projects"`
	Packages []Package       `yaml:"packages"`
	Office   location.Office `yaml:"office"`
	Footer   Footer          `yaml:"footer"`
}

// ShowcaseItems converts projects into showcase items, preserving order.
func (s Site) ShowcaseItems() []showcase.Item {
	items := make([]showcase.Item, 0, len(s.Projects))
	for _, p := range s.Projects {
		items = append(items, showcase.Item{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Image:       p.Image,
			Category:    p.Category,
			Tags:        append([]string(nil), p.Technologies...),
			Link:        p.Link,
		})
	}
	return items
}

// Package looks up a consulting package by id.
func (s Site) Package(id string) (Package, bool) {
	id = strings.TrimSpace(strings.ToLower(id))
	for _, p := range s.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

func (s Site) validate() error {
	var problems []string
	if strings.TrimSpace(s.Brand.Name) == "" {
		problems = append(problems, "brand.name is required")
	}
	if len(s.Projects) == 0 {
		problems = append(problems, "at least one project is required")
	}
	seen := map[string]bool{}
	for i, p := range s.Packages {
		if p.ID == "" {
			problems = append(problems, fmt.Sprintf("packages[%d].id is required", i))
			continue
		}
		if seen[p.ID] {
			problems = append(problems, fmt.Sprintf("packages[%d].id %q is duplicated", i, p.ID))
		}
		seen[p.ID] = true
		if p.Price < 0 {
			problems = append(problems, fmt.Sprintf("packages[%d].price must not be negative", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("cms: invalid site document: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Store loads the site document from a YAML file, or serves the built-in default when no file is
// configured. Parsed documents are cached for the configured TTL.
type Store struct {
	path string
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	site    Site
	expires time.Time
	loaded  bool
}

// NewStore returns a Store reading path. An empty path selects DefaultSite.
func NewStore(path string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{path: strings.TrimSpace(path), ttl: ttl, now: time.Now}
}

// Site returns the current document.
func (s *Store) Site(ctx context.Context) (Site, error) {
	now := s.now()
	s.mu.RLock()
	if s.loaded && now.Before(s.expires) {
		site := s.site
		s.mu.RUnlock()
		return site, nil
	}
	s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return Site{}, err
	}
	site, err := s.read()
	if err != nil {
		return Site{}, err
	}
	s.mu.Lock()
	s.site = site
	s.expires = now.Add(s.ttl)
	s.loaded = true
	s.mu.Unlock()
	return site, nil
}

func (s *Store) read() (Site, error) {
	if s.path == "" {
		return DefaultSite(), nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Site{}, fmt.Errorf("cms: read site document: %w", err)
	}
	return ParseSite(data)
}

// ParseSite decodes and validates a YAML site document. Fields omitted in the document keep
// the defaults.
func ParseSite(data []byte) (Site, error) {
	site := DefaultSite()
	if err := yaml.Unmarshal(data, &site); err != nil {
		return Site{}, fmt.Errorf("cms: parse site document: %w", err)
	}
	for i := range site.Packages {
		site.Packages[i].ID = strings.ToLower(strings.TrimSpace(site.Packages[i].ID))
		if site.Packages[i].Currency == "" {
			site.Packages[i].Currency = "USD"
		}
	}
	if err := site.validate(); err != nil {
		return Site{}, err
	}
	return site, nil
}
