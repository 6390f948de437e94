package handlers

import "os"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	PlausibleDomain  string // e.g. sveasoft.se
	Debug            bool
}

// Enabled reports whether any provider is configured.
func (a Analytics) Enabled() bool { return a.GA4MeasurementID != "" || a.PlausibleDomain != "" }

// LoadAnalyticsFromEnv builds Analytics from environment variables.
func LoadAnalyticsFromEnv() Analytics {
	return LoadAnalytics(os.Getenv)
}

// LoadAnalytics builds Analytics using getenv.
func LoadAnalytics(getenv func(string) string) Analytics {
	return Analytics{
		GA4MeasurementID: getenv("WEB_GA_MEASUREMENT_ID"),
		PlausibleDomain:  getenv("WEB_PLAUSIBLE_DOMAIN"),
		Debug:            getenv("WEB_ANALYTICS_DEBUG") != "",
	}
}
