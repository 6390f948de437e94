package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// LogFields contributes session and htmx details to the request log line.
func LogFields(r *http.Request) []zap.Field {
	fields := []zap.Field{zap.Bool("htmx", IsHTMX(r.Context()))}
	if s := GetSession(r); s.ID != "" {
		fields = append(fields, zap.String("session_id", s.ID))
	}
	if hx := r.Header.Get("HX-Trigger"); hx != "" {
		fields = append(fields, zap.String("hx_trigger", hx))
	}
	return fields
}
