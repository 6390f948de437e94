package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile            = ".env"
	defaultPort               = "8080"
	defaultReadHeaderTimeout  = 10 * time.Second
	defaultReadTimeout        = 15 * time.Second
	defaultWriteTimeout       = 15 * time.Second
	defaultIdleTimeout        = 60 * time.Second
	defaultShutdownTimeout    = 10 * time.Second
	defaultEnvironment        = "local"
	defaultLang               = "en"
	defaultTemplatesDir       = "templates"
	defaultPublicDir          = "public"
	defaultLocalesDir         = "locales"
	defaultContentDir         = "content"
	defaultShowcaseInterval   = 7 * time.Second
	defaultShowcaseTransition = 500 * time.Millisecond
	defaultShowcaseIdleTTL    = 10 * time.Minute
	defaultShowcasePoll       = time.Second
	defaultMapStyle           = "mapbox://styles/mapbox/light-v11"
	defaultMapZoom            = 11
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Site     SiteConfig
	Showcase ShowcaseConfig
	Map      MapConfig
	Contact  ContactConfig
	Secrets  SecretsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string { return ":" + s.Port }

// SiteConfig holds rendering and session settings.
type SiteConfig struct {
	Environment       string
	DevMode           bool
	BaseURL           string
	DefaultLang       string
	TemplatesDir      string
	PublicDir         string
	LocalesDir        string
	ContentFile       string
	ContentDir        string
	SessionSigningKey string
}

// Production reports whether the site runs in the prod environment.
func (s SiteConfig) Production() bool { return s.Environment == "prod" }

// ShowcaseConfig carries the project showcase timings.
type ShowcaseConfig struct {
	Interval   time.Duration
	Transition time.Duration
	IdleTTL    time.Duration
	Poll       time.Duration
}

// MapConfig gates the third-party map widget.
type MapConfig struct {
	Token string
	Style string
	Zoom  int
}

// ContactConfig selects where contact submissions are delivered.
type ContactConfig struct {
	ProjectID string
	Topic     string
}

// PubSubEnabled reports whether submissions go to Pub/Sub.
func (c ContactConfig) PubSubEnabled() bool { return c.ProjectID != "" && c.Topic != "" }

// SecretsConfig configures Secret Manager lookups.
type SecretsConfig struct {
	ProjectID string
}

// SecretResolver resolves secret:// references.
type SecretResolver interface {
	ResolveSecret(ctx context.Context, ref string) (string, error)
}

// SecretResolverFunc adapts ordinary functions to SecretResolver.
type SecretResolverFunc func(context.Context, string) (string, error)

// ResolveSecret resolves the secret using the wrapped function.
func (f SecretResolverFunc) ResolveSecret(ctx context.Context, ref string) (string, error) {
	return f(ctx, ref)
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// SecretError describes failures while resolving a secret reference.
type SecretError struct {
	Ref string
	Err error
}

// Error implements the error interface.
func (e *SecretError) Error() string {
	return fmt.Sprintf("secret resolution failed for ref %q: %v", e.Ref, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SecretError) Unwrap() error { return e.Err }

var errSecretResolverNotConfigured = errors.New("secret resolver not configured")

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
	secret       SecretResolver
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map. Values in the map take precedence over the
// system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// WithSecretResolver sets the resolver used for secret:// and sm:// references.
func WithSecretResolver(resolver SecretResolver) Option {
	return func(o *loaderOptions) {
		o.secret = resolver
	}
}

// Load assembles the configuration from defaults, .env overrides, environment variables, and
// optional secret lookups.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Cloud Run injects PORT; WEB_PORT wins when both are present.
	port := stringWithDefault(lookup, "PORT", defaultPort)
	port = stringWithDefault(lookup, "WEB_PORT", port)

	cfg := Config{
		Server: ServerConfig{
			Port:              port,
			ReadHeaderTimeout: durationWithDefault(lookup, "WEB_SERVER_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout),
			ReadTimeout:       durationWithDefault(lookup, "WEB_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      durationWithDefault(lookup, "WEB_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       durationWithDefault(lookup, "WEB_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout:   durationWithDefault(lookup, "WEB_SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		},
		Site: SiteConfig{
			Environment:       strings.ToLower(stringWithDefault(lookup, "WEB_ENV", defaultEnvironment)),
			DevMode:           boolWithDefault(lookup, "WEB_DEV", false),
			BaseURL:           strings.TrimRight(stringWithDefault(lookup, "WEB_BASE_URL", ""), "/"),
			DefaultLang:       strings.ToLower(stringWithDefault(lookup, "WEB_DEFAULT_LANG", defaultLang)),
			TemplatesDir:      stringWithDefault(lookup, "WEB_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:         stringWithDefault(lookup, "WEB_PUBLIC_DIR", defaultPublicDir),
			LocalesDir:        stringWithDefault(lookup, "WEB_LOCALES_DIR", defaultLocalesDir),
			ContentFile:       stringWithDefault(lookup, "WEB_CONTENT_FILE", ""),
			ContentDir:        stringWithDefault(lookup, "WEB_CONTENT_DIR", defaultContentDir),
			SessionSigningKey: stringWithDefault(lookup, "WEB_SESSION_SIGNING_KEY", ""),
		},
		Showcase: ShowcaseConfig{
			Interval:   durationWithDefault(lookup, "WEB_SHOWCASE_INTERVAL", defaultShowcaseInterval),
			Transition: durationWithDefault(lookup, "WEB_SHOWCASE_TRANSITION", defaultShowcaseTransition),
			IdleTTL:    durationWithDefault(lookup, "WEB_SHOWCASE_IDLE_TTL", defaultShowcaseIdleTTL),
			Poll:       durationWithDefault(lookup, "WEB_SHOWCASE_POLL", defaultShowcasePoll),
		},
		Map: MapConfig{
			Token: stringWithDefault(lookup, "WEB_MAP_TOKEN", ""),
			Style: stringWithDefault(lookup, "WEB_MAP_STYLE", defaultMapStyle),
			Zoom:  intWithDefault(lookup, "WEB_MAP_ZOOM", defaultMapZoom),
		},
		Contact: ContactConfig{
			ProjectID: stringWithDefault(lookup, "WEB_CONTACT_PROJECT_ID", ""),
			Topic:     stringWithDefault(lookup, "WEB_CONTACT_TOPIC", ""),
		},
		Secrets: SecretsConfig{
			ProjectID: stringWithDefault(lookup, "WEB_SECRETS_PROJECT_ID", ""),
		},
	}

	// Contact delivery defaults to the secrets project when only a topic is set.
	if cfg.Contact.ProjectID == "" && cfg.Contact.Topic != "" {
		cfg.Contact.ProjectID = cfg.Secrets.ProjectID
	}

	secretFields := []*string{
		&cfg.Site.SessionSigningKey,
		&cfg.Map.Token,
	}
	for _, field := range secretFields {
		resolved, err := resolveSecret(ctx, *field, options.secret)
		if err != nil {
			return Config{}, err
		}
		*field = resolved
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func resolveSecret(ctx context.Context, value string, resolver SecretResolver) (string, error) {
	if value == "" || !isSecretReference(value) {
		return value, nil
	}
	normalized := normalizeSecretReference(value)
	if resolver == nil {
		return "", &SecretError{Ref: normalized, Err: errSecretResolverNotConfigured}
	}
	secret, err := resolver.ResolveSecret(ctx, normalized)
	if err != nil {
		return "", &SecretError{Ref: normalized, Err: err}
	}
	return strings.TrimSpace(secret), nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Port) == "" {
		missing = append(missing, "Server.Port")
	} else if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		missing = append(missing, "Server.Port")
	}
	if cfg.Showcase.Interval <= 0 {
		missing = append(missing, "Showcase.Interval")
	}
	if cfg.Showcase.Transition <= 0 {
		missing = append(missing, "Showcase.Transition")
	}
	if cfg.Showcase.IdleTTL <= 0 {
		missing = append(missing, "Showcase.IdleTTL")
	}
	if cfg.Showcase.Poll <= 0 {
		missing = append(missing, "Showcase.Poll")
	}
	if cfg.Site.Production() && cfg.Site.SessionSigningKey == "" {
		missing = append(missing, "Site.SessionSigningKey")
	}
	if cfg.Contact.Topic != "" && cfg.Contact.ProjectID == "" {
		missing = append(missing, "Contact.ProjectID")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func isSecretReference(value string) bool {
	trimmed := strings.TrimSpace(value)
	return strings.HasPrefix(trimmed, "secret://") || strings.HasPrefix(trimmed, "sm://")
}

func normalizeSecretReference(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "sm://") {
		return "secret://" + strings.TrimPrefix(trimmed, "sm://")
	}
	return trimmed
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(parts[1]), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
