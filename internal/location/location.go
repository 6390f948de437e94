// Package location describes the office shown in the "Find us" section and decides how its map
// is rendered.
package location

import (
	"fmt"
	"net/url"
	"strings"
)

// Office is a physical office address.
type Office struct {
	Name       string  `yaml:"name"`
	Street     string  `yaml:"street"`
	PostalCode string  `yaml:"postal_code"`
	City       string  `yaml:"city"`
	Country    string  `yaml:"country"`
	Phone      string  `yaml:"phone"`
	Email      string  `yaml:"email"`
	Hours      string  `yaml:"hours"`
	Lng        float64 `yaml:"lng"`
	Lat        float64 `yaml:"lat"`
}

// AddressLines returns the printable address, skipping blanks.
func (o Office) AddressLines() []string {
	lines := make([]string, 0, 3)
	if s := strings.TrimSpace(o.Street); s != "" {
		lines = append(lines, s)
	}
	if s := strings.TrimSpace(strings.Join([]string{o.PostalCode, o.City}, " ")); s != "" {
		lines = append(lines, s)
	}
	if s := strings.TrimSpace(o.Country); s != "" {
		lines = append(lines, s)
	}
	return lines
}

// PhoneHref returns a tel: link with formatting characters removed.
func (o Office) PhoneHref() string {
	var b strings.Builder
	for _, r := range o.Phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "tel:" + b.String()
}

// DirectionsURL links to an external directions page for the office coordinates.
func (o Office) DirectionsURL() string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("destination", fmt.Sprintf("%.4f,%.4f", o.Lat, o.Lng))
	return "https://www.google.com/maps/dir/?" + q.Encode()
}

// MapSettings controls the interactive map widget.
type MapSettings struct {
	Token string
	Style string
	Zoom  int
}

// MapView is the template model for the map section.
type MapView struct {
	Office      Office
	Interactive bool
	Token       string
	Style       string
	Zoom        int
	// Notice is a message key shown in place of the interactive map.
	Notice string
}

const defaultZoom = 11

// NewMapView returns an interactive view only when a token is configured; otherwise the
// section falls back to a static address card.
func NewMapView(office Office, settings MapSettings) MapView {
	view := MapView{Office: office}
	token := strings.TrimSpace(settings.Token)
	if token == "" {
		view.Notice = "location.map_unavailable"
		return view
	}
	view.Interactive = true
	view.Token = token
	view.Style = strings.TrimSpace(settings.Style)
	view.Zoom = settings.Zoom
	if view.Zoom <= 0 || view.Zoom > 22 {
		view.Zoom = defaultZoom
	}
	return view
}
