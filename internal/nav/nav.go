package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation entry pointing at a section of the landing page.
type Item struct {
	Anchor   string // section id, e.g. "services"
	LabelKey string // i18n key, e.g. "nav.services"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	Anchor   string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition, in page order.
var Main = []Item{
	{Anchor: "services", LabelKey: "nav.services"},
	{Anchor: "projects", LabelKey: "nav.projects"},
	{Anchor: "pricing", LabelKey: "nav.pricing"},
	{Anchor: "location", LabelKey: "nav.location"},
	{Anchor: "contact", LabelKey: "nav.contact"},
}

// Build renders navigation items. On the home page links are bare fragments; elsewhere they
// point back to the home page section. active names the highlighted section, if any.
func Build(currentPath, active string) []RenderedItem {
	onHome := currentPath == "" || currentPath == "/"
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		href := "#" + it.Anchor
		if !onHome {
			href = "/" + href
		}
		items = append(items, RenderedItem{
			Href:     href,
			Anchor:   it.Anchor,
			LabelKey: it.LabelKey,
			Active:   it.Anchor == active,
		})
	}
	return items
}

// IsSection reports whether anchor names a navigable section.
func IsSection(anchor string) bool {
	for _, it := range Main {
		if it.Anchor == anchor {
			return true
		}
	}
	return false
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Always starts with Home; deeper segments use a prettified label.
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}
	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, part := range parts {
		if part == "" {
			continue
		}
		href += "/" + part
		crumb := Crumb{Href: href, Label: titleFromSegment(part), Active: i == len(parts)-1}
		if i == 0 {
			crumb.LabelKey = "nav." + part
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
