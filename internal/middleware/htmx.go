package middleware

import (
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), is)))
	})
}

// HXTrigger asks htmx to dispatch event on the client after the swap.
func HXTrigger(w http.ResponseWriter, event string) {
	w.Header().Set("HX-Trigger", event)
}
