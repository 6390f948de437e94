package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	sessionCookieName = "SVEASOFT_SESSION"
	sessionLifetime   = 30 * 24 * time.Hour
	maxCartQuantity   = 99
)

type SessionData struct {
	ID        string     `json:"id"`
	Locale    string     `json:"locale,omitempty"`
	Cart      []CartLine `json:"cart,omitempty"`
	CSRFToken string     `json:"csrf,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool
}

// CartLine is one consulting package in the session cart.
type CartLine struct {
	PackageID string `json:"pkg"`
	Quantity  int    `json:"qty"`
}

// Sessions issues and verifies HMAC-signed session cookies.
type Sessions struct {
	key    []byte
	secure bool
	now    func() time.Time
}

// NewSessions builds a session codec. An empty key produces a process-ephemeral key, which is
// only acceptable outside production.
func NewSessions(signingKey string, secure bool, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(strings.TrimSpace(signingKey))
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			logger.Error("session: failed to generate signing key", zap.Error(err))
			key = []byte("insecure-dev-key-please-set-WEB_SESSION_SIGNING_KEY")
		}
		logger.Warn("session: using ephemeral signing key; set WEB_SESSION_SIGNING_KEY for production")
	}
	return &Sessions{key: key, secure: secure, now: time.Now}
}

// Secure reports whether cookies carry the Secure attribute.
func (s *Sessions) Secure() bool { return s.secure }

// Middleware loads or initializes a session and stores it in request context. The cookie is
// rewritten just before the first byte of the response when the session changed.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := s.read(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = s.now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		rw := NewResponseRecorder(w)
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				s.write(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), ctxKeySession, sd)))
		// If nothing was written yet (e.g., HEAD), persist cookie now
		if !rw.Wrote() && (sd.dirty || !fromCookie) {
			s.write(w, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if sd, ok := r.Context().Value(ctxKeySession).(*SessionData); ok && sd != nil {
		return sd
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (sd *SessionData) MarkDirty() { sd.dirty = true; sd.UpdatedAt = time.Now().UTC() }

// AddToCart increments the quantity of packageID, capped per line.
func (sd *SessionData) AddToCart(packageID string) {
	for i := range sd.Cart {
		if sd.Cart[i].PackageID == packageID {
			if sd.Cart[i].Quantity < maxCartQuantity {
				sd.Cart[i].Quantity++
			}
			sd.MarkDirty()
			return
		}
	}
	sd.Cart = append(sd.Cart, CartLine{PackageID: packageID, Quantity: 1})
	sd.MarkDirty()
}

// RemoveFromCart drops packageID from the cart. It reports whether a line was removed.
func (sd *SessionData) RemoveFromCart(packageID string) bool {
	for i := range sd.Cart {
		if sd.Cart[i].PackageID == packageID {
			sd.Cart = append(sd.Cart[:i], sd.Cart[i+1:]...)
			sd.MarkDirty()
			return true
		}
	}
	return false
}

// CartCount is the total quantity across lines.
func (sd *SessionData) CartCount() int {
	n := 0
	for _, line := range sd.Cart {
		n += line.Quantity
	}
	return n
}

func (s *Sessions) read(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	payloadB64, sigB64, ok := strings.Cut(c.Value, ".")
	if !ok {
		return &SessionData{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return &SessionData{}, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigB64)
	if err != nil {
		return &SessionData{}, false
	}
	if !hmac.Equal(sig, s.sign(payload)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payload, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

// Encode returns the signed cookie value for sd.
func (s *Sessions) Encode(sd *SessionData) string {
	b, _ := json.Marshal(sd)
	return base64.RawURLEncoding.EncodeToString(b) + "." + base64.RawURLEncoding.EncodeToString(s.sign(b))
}

func (s *Sessions) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	return mac.Sum(nil)
}

func (s *Sessions) write(w http.ResponseWriter, sd *SessionData) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.Encode(sd),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.now().Add(sessionLifetime),
	})
}

// SessionCookieName exposes the cookie name for tests and tooling.
func SessionCookieName() string { return sessionCookieName }

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
