package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sveasoft.se/web/internal/cms"
	"sveasoft.se/web/internal/config"
	"sveasoft.se/web/internal/contact"
	"sveasoft.se/web/internal/showcase"
)

// frozenClock never fires, so a transition lock taken in a test stays held.
type frozenClock struct{}

type frozenTimer struct{}

func (frozenTimer) Stop() bool { return true }

func (frozenClock) AfterFunc(time.Duration, func()) showcase.Timer { return frozenTimer{} }
func (frozenClock) TickFunc(time.Duration, func()) showcase.Timer  { return frozenTimer{} }

type recordingNotifier struct {
	mu   sync.Mutex
	subs []contact.Submission
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, sub contact.Submission) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.subs = append(n.subs, sub)
	return nil
}

func (n *recordingNotifier) submissions() []contact.Submission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]contact.Submission(nil), n.subs...)
}

type testSite struct {
	server   *httptest.Server
	client   *http.Client
	notifier *recordingNotifier
	logs     *observer.ObservedLogs
	csrf     string
}

func newTestSite(t *testing.T, env map[string]string) *testSite {
	t.Helper()
	base := map[string]string{
		"WEB_TEMPLATES_DIR":       "../../templates",
		"WEB_LOCALES_DIR":         "../../locales",
		"WEB_PUBLIC_DIR":          "../../public",
		"WEB_CONTENT_DIR":         "../../content",
		"WEB_SESSION_SIGNING_KEY": "test-signing-key",
		"WEB_BASE_URL":            "https://sveasoft.test",
	}
	for k, v := range env {
		base[k] = v
	}
	cfg, err := config.Load(context.Background(), config.WithEnvMap(base), config.WithoutSystemEnv(), config.WithEnvFile(""))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	notifier := &recordingNotifier{}
	a, err := newApp(context.Background(), cfg, zap.New(core), appDeps{Notifier: notifier, Clock: frozenClock{}})
	require.NoError(t, err)

	srv := httptest.NewServer(a.routes())
	t.Cleanup(func() {
		srv.Close()
		a.Close()
	})
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testSite{
		server:   srv,
		client:   &http.Client{Jar: jar},
		notifier: notifier,
		logs:     logs,
	}
}

func (s *testSite) get(t *testing.T, path string, header ...string) (*http.Response, *goquery.Document) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.server.URL+path, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return s.do(t, req)
}

// post sends an htmx request carrying the CSRF token captured from the last full page.
func (s *testSite) post(t *testing.T, path string, form url.Values) (*http.Response, *goquery.Document) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")
	if s.csrf != "" {
		req.Header.Set("X-CSRF-Token", s.csrf)
	}
	return s.do(t, req)
}

func (s *testSite) do(t *testing.T, req *http.Request) (*http.Response, *goquery.Document) {
	t.Helper()
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return resp, doc
}

// home loads the landing page and remembers the session's CSRF token.
func (s *testSite) home(t *testing.T) *goquery.Document {
	t.Helper()
	resp, doc := s.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, ok := doc.Find(`#contact-form input[name="csrf_token"]`).Attr("value")
	require.True(t, ok)
	require.NotEmpty(t, token)
	s.csrf = token
	return doc
}

func activeSlideID(doc *goquery.Document) string {
	return doc.Find("#showcase .slide.is-active").AttrOr("id", "")
}

func TestHomeRendersAllSections(t *testing.T) {
	site := newTestSite(t, nil)
	doc := site.home(t)
	defaults := cms.DefaultSite()

	require.Equal(t, "en", doc.Find("html").AttrOr("lang", ""))
	require.Contains(t, doc.Find("h1").First().Text(), defaults.Hero.Highlight)
	require.Equal(t, len(defaults.Services), doc.Find("#services .service-card").Length())
	require.Equal(t, 1, doc.Find("#service-mobile strong").Length(), "service markdown is rendered")
	require.Equal(t, len(defaults.Packages), doc.Find("#pricing .package-card").Length())
	require.Contains(t, doc.Find("#package-professional .price").Text(), "$899")
	require.Equal(t, 1, doc.Find("#package-professional.is-popular").Length())

	require.Equal(t, len(defaults.Projects), doc.Find("#showcase .slide").Length())
	require.Equal(t, "slide-"+defaults.Projects[0].ID, activeSlideID(doc))
	require.Equal(t, "every 1s", doc.Find("#showcase").AttrOr("hx-trigger", ""))
	require.Equal(t, len(defaults.Projects), doc.Find("#showcase .showcase-dots button").Length())

	require.Equal(t, 1, doc.Find("#location .map-unavailable").Length(), "map is gated on a token")
	require.Equal(t, "https://sveasoft.test/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	require.Equal(t, 3, doc.Find(`link[rel="alternate"]`).Length())
	require.Equal(t, 4, doc.Find(`script[type="application/ld+json"]`).Length())
	require.Equal(t, "0", strings.TrimSpace(doc.Find("#cart-count").Text()))
}

func TestHomeHonoursLanguage(t *testing.T) {
	site := newTestSite(t, nil)
	resp, doc := site.get(t, "/", "Accept-Language", "sv-SE,sv;q=0.9")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "sv", doc.Find("html").AttrOr("lang", ""))
	require.Equal(t, "sv", resp.Header.Get("Content-Language"))
	require.Equal(t, "Vad vi gör", strings.TrimSpace(doc.Find("#services h2").Text()))
}

func TestHomeWithMapToken(t *testing.T) {
	site := newTestSite(t, map[string]string{"WEB_MAP_TOKEN": "pk.test", "WEB_MAP_ZOOM": "14"})
	doc := site.home(t)
	m := doc.Find("#map")
	require.Equal(t, 1, m.Length())
	require.Equal(t, "pk.test", m.AttrOr("data-token", ""))
	require.Equal(t, "14", m.AttrOr("data-zoom", ""))
}

func TestHomeDoesNotMountShowcase(t *testing.T) {
	site := newTestSite(t, nil)
	site.home(t)

	resp, err := site.client.Get(site.server.URL + "/status.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	var summary struct {
		Components []struct {
			Name   string `json:"name"`
			Detail string `json:"detail"`
		} `json:"components"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	var detail string
	for _, c := range summary.Components {
		if c.Name == "showcase" {
			detail = c.Detail
		}
	}
	require.Equal(t, "0 mounted", detail)
}

func TestShowcaseNavigation(t *testing.T) {
	site := newTestSite(t, nil)
	site.home(t)
	projects := cms.DefaultSite().Projects

	resp, doc := site.post(t, "/showcase/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "slide-"+projects[1].ID, activeSlideID(doc))
	require.True(t, doc.Find("#showcase .slide.is-active").HasClass("slide-in-right"))
	require.Equal(t, "true", doc.Find("#showcase").AttrOr("data-transitioning", ""))

	// The transition lock is still held, so this request is dropped.
	resp, doc = site.post(t, "/showcase/next", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "slide-"+projects[1].ID, activeSlideID(doc))
	require.Equal(t, 1, site.logs.FilterMessage("showcase navigation ignored").FilterField(zap.String("op", "next")).Len())

	resp, doc = site.get(t, "/showcase", "HX-Request", "true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "slide-"+projects[1].ID, activeSlideID(doc), "polling keeps the session's position")
}

func TestShowcaseRetreatAndJumpFromIdle(t *testing.T) {
	projects := cms.DefaultSite().Projects

	site := newTestSite(t, nil)
	site.home(t)
	_, doc := site.post(t, "/showcase/prev", nil)
	require.Equal(t, "slide-"+projects[len(projects)-1].ID, activeSlideID(doc), "retreat wraps to the last item")
	require.True(t, doc.Find("#showcase .slide.is-active").HasClass("slide-in-left"))

	other := newTestSite(t, nil)
	other.home(t)
	_, doc = other.post(t, "/showcase/jump/2", nil)
	require.Equal(t, "slide-"+projects[2].ID, activeSlideID(doc))
}

func TestShowcaseJumpRejectsBadIndex(t *testing.T) {
	site := newTestSite(t, nil)
	site.home(t)

	resp, _ := site.post(t, "/showcase/jump/first", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, doc := site.post(t, "/showcase/jump/99", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "out of range jumps are ignored")
	require.Equal(t, "slide-"+cms.DefaultSite().Projects[0].ID, activeSlideID(doc))
}

func TestPostsRequireCSRFToken(t *testing.T) {
	site := newTestSite(t, nil)
	site.home(t)
	site.csrf = ""

	resp, _ := site.post(t, "/showcase/next", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestContactValidationErrors(t *testing.T) {
	site := newTestSite(t, nil)
	site.home(t)

	resp, doc := site.post(t, "/contact", url.Values{
		"name":    {"  "},
		"email":   {"not-an-email"},
		"message": {"short"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, 3, doc.Find("#contact-form .field.has-error").Length())
	require.Equal(t, "not-an-email", doc.Find(`input[name="email"]`).AttrOr("value", ""))
	require.Empty(t, site.notifier.submissions())
}

func TestContactSubmitNotifies(t *testing.T) {
	site := newTestSite(t, nil)
	site.home(t)

	resp, doc := site.post(t, "/contact", url.Values{
		"name":    {"Astrid Lind"},
		"email":   {"astrid@example.se"},
		"company": {"Lind & Co"},
		"message": {"We need help rebuilding our booking platform."},
		"package": {"Professional"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "contact:sent", resp.Header.Get("HX-Trigger"))
	require.Equal(t, 1, doc.Find("#contact-form .notice-success").Length())

	subs := site.notifier.submissions()
	require.Len(t, subs, 1)
	require.Equal(t, "Lind & Co", subs[0].Company)
	require.Equal(t, "professional", subs[0].Package)
	require.Equal(t, "en", subs[0].Locale)
	require.Contains(t, doc.Find("#contact-form").Text(), subs[0].ID)
}

func TestContactNotifierFailure(t *testing.T) {
	site := newTestSite(t, nil)
	site.notifier.err = errors.New("pubsub down")
	site.home(t)

	resp, doc := site.post(t, "/contact", url.Values{
		"name":    {"Astrid Lind"},
		"email":   {"astrid@example.se"},
		"message": {"We need help rebuilding our booking platform."},
	})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.Equal(t, 1, doc.Find("#contact-form .notice-error").Length())
	require.Equal(t, "Astrid Lind", doc.Find(`input[name="name"]`).AttrOr("value", ""), "values survive the failure")
	require.Equal(t, 1, site.logs.FilterMessage("contact notification failed").Len())
}

func TestCartAddAndRemove(t *testing.T) {
	site := newTestSite(t, nil)
	site.home(t)

	resp, _ := site.post(t, "/cart/unknown", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, doc := site.post(t, "/cart/professional", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "cart:updated", resp.Header.Get("HX-Trigger"))
	require.Equal(t, 1, doc.Find("#cart-panel .cart-line").Length())
	require.Equal(t, "1", strings.TrimSpace(doc.Find("#cart-count").Text()))
	require.Contains(t, doc.Find("#cart-panel .notice").Text(), "Professional Package")

	site.post(t, "/cart/professional", nil)
	_, doc = site.get(t, "/cart", "HX-Request", "true")
	require.Contains(t, doc.Find(".cart-line .name").Text(), "× 2")
	require.Contains(t, doc.Find(".cart-total").Text(), "$1,798")

	page := site.home(t)
	require.Equal(t, "2", strings.TrimSpace(page.Find("#cart-count").Text()), "cart persists in the session cookie")

	resp, doc = site.post(t, "/cart/professional/remove", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 0, doc.Find("#cart-panel .cart-line").Length())
	require.Equal(t, "0", strings.TrimSpace(doc.Find("#cart-count").Text()))
}

func TestLegalPages(t *testing.T) {
	site := newTestSite(t, nil)

	resp, doc := site.get(t, "/legal/privacy")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Privacy Policy", strings.TrimSpace(doc.Find("article.legal h1").Text()))
	require.Equal(t, 1, doc.Find(`script[type="application/ld+json"]`).Length())

	_, doc = site.get(t, "/legal/privacy?hl=sv")
	require.Equal(t, "Integritetspolicy", strings.TrimSpace(doc.Find("article.legal h1").Text()))

	_, doc = site.get(t, "/legal/terms?hl=sv")
	require.Equal(t, "Terms of Service", strings.TrimSpace(doc.Find("article.legal h1").Text()), "missing translations fall back")

	resp, doc = site.get(t, "/legal/nope")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
}

func TestHealthz(t *testing.T) {
	site := newTestSite(t, nil)
	resp, err := site.client.Get(site.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestAssetsAreServed(t *testing.T) {
	site := newTestSite(t, nil)
	resp, err := site.client.Get(site.server.URL + "/assets/css/site.css")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("ETag"))
}
