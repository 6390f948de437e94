package seo

import "strings"

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is an hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []any
}

// AbsoluteURL joins base and p. p is returned as-is when base is empty or p is absolute.
func AbsoluteURL(base, p string) string {
	if base == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

// Alternates builds hreflang links for each language plus x-default.
func Alternates(base, p string, langs []string, fallback string) []Alternate {
	if base == "" {
		return nil
	}
	href := AbsoluteURL(base, p)
	sep := "?"
	if strings.Contains(href, "?") {
		sep = "&"
	}
	out := make([]Alternate, 0, len(langs)+1)
	for _, l := range langs {
		out = append(out, Alternate{Href: href + sep + "hl=" + l, Hreflang: l})
	}
	if fallback != "" {
		out = append(out, Alternate{Href: href, Hreflang: "x-default"})
	}
	return out
}
