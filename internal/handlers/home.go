package handlers

import (
	"html/template"
	"sort"

	"sveasoft.se/web/internal/cms"
	"sveasoft.se/web/internal/contact"
	"sveasoft.se/web/internal/format"
	"sveasoft.se/web/internal/location"
	"sveasoft.se/web/internal/middleware"
)

// HomeData is the view model for the landing page.
type HomeData struct {
	Layout
	Hero     cms.Hero
	Services []ServiceCard
	Showcase ShowcaseView
	Packages []PackageCard
	Cart     CartView
	Map      location.MapView
	Contact  ContactForm
}

// ServiceCard is a service with its Markdown description rendered.
type ServiceCard struct {
	ID    string
	Icon  string
	Title string
	Body  template.HTML
}

// PackageCard is a consulting package with its price formatted for lang.
type PackageCard struct {
	cms.Package
	PriceLabel string
	InCart     int
}

// CartView summarises the session cart.
type CartView struct {
	Lang      string
	CSRFToken string
	Lines     []CartLineView
	Totals    []string
	Count     int
	Added     string // name of the package just added, if any
	// Badge adds an out-of-band swap for the navbar cart count.
	Badge bool
}

// CartLineView is one resolved cart line.
type CartLineView struct {
	PackageID string
	Name      string
	Hours     int
	Quantity  int
	Subtotal  string
}

// ContactForm is the contact section model, also used for the htmx result fragment.
type ContactForm struct {
	Lang         string
	CSRFToken    string
	Values       contact.Form
	Package      string
	Packages     []cms.Package
	Errors       map[string]string
	Sent         bool
	Failed       bool
	SubmissionID string
}

// HasError reports whether field has a validation problem.
func (f ContactForm) HasError(field string) bool {
	_, ok := f.Errors[field]
	return ok
}

// ServiceCards renders service descriptions.
func ServiceCards(services []cms.Service) []ServiceCard {
	out := make([]ServiceCard, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceCard{ID: s.ID, Icon: s.Icon, Title: s.Title, Body: cms.Markdown(s.Description)})
	}
	return out
}

// PackageCards formats packages and marks quantities already in the cart.
func PackageCards(pkgs []cms.Package, cart []middleware.CartLine, lang string) []PackageCard {
	qty := map[string]int{}
	for _, line := range cart {
		qty[line.PackageID] += line.Quantity
	}
	out := make([]PackageCard, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, PackageCard{
			Package:    p,
			PriceLabel: format.FmtCurrency(p.Price, p.Currency, lang),
			InCart:     qty[p.ID],
		})
	}
	return out
}

// BuildCartView resolves cart lines against the site's packages. Lines whose package no longer
// exists are skipped. Totals are per currency, sorted by currency code.
func BuildCartView(site cms.Site, cart []middleware.CartLine, lang, csrf string) CartView {
	v := CartView{Lang: lang, CSRFToken: csrf}
	totals := map[string]int64{}
	for _, line := range cart {
		p, ok := site.Package(line.PackageID)
		if !ok || line.Quantity <= 0 {
			continue
		}
		sub := p.Price * int64(line.Quantity)
		totals[p.Currency] += sub
		v.Count += line.Quantity
		v.Lines = append(v.Lines, CartLineView{
			PackageID: p.ID,
			Name:      p.Name,
			Hours:     p.Hours * line.Quantity,
			Quantity:  line.Quantity,
			Subtotal:  format.FmtCurrency(sub, p.Currency, lang),
		})
	}
	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	for _, c := range currencies {
		v.Totals = append(v.Totals, format.FmtCurrency(totals[c], c, lang))
	}
	return v
}
