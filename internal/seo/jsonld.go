package seo

import (
	"encoding/json"
	"html/template"

	"sveasoft.se/web/internal/location"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Script renders v as a JSON-LD script body safe for html/template.
func Script(v any) template.JS {
	return template.JS(JSON(v))
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string, sameAs []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string, languages []string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if len(languages) > 0 {
		m["inLanguage"] = languages
	}
	return m
}

// LocalBusiness describes the office with address and geo coordinates.
func LocalBusiness(office location.Office, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "ProfessionalService",
		"name":     office.Name,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   office.Street,
			"postalCode":      office.PostalCode,
			"addressLocality": office.City,
			"addressCountry":  office.Country,
		},
		"geo": map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  office.Lat,
			"longitude": office.Lng,
		},
	}
	if url != "" {
		m["url"] = url
	}
	if office.Phone != "" {
		m["telephone"] = office.Phone
	}
	if office.Email != "" {
		m["email"] = office.Email
	}
	return m
}

// OfferItem is one priced offering.
type OfferItem struct {
	Name        string
	Description string
	Price       string // decimal, e.g. "499.00"
	Currency    string
}

// OfferCatalog lists consulting packages as schema.org offers.
func OfferCatalog(name string, items []OfferItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for _, it := range items {
		el = append(el, map[string]any{
			"@type":         "Offer",
			"price":         it.Price,
			"priceCurrency": it.Currency,
			"itemOffered": map[string]any{
				"@type":       "Service",
				"name":        it.Name,
				"description": it.Description,
			},
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "OfferCatalog",
		"name":            name,
		"itemListElement": el,
	}
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
