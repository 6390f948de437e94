package showcase

import (
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultIdleTTL is how long a visitor's controller stays mounted without being read.
const DefaultIdleTTL = 10 * time.Minute

// Registry mounts one controller per visitor key and unmounts it once the key has been idle for
// the configured TTL.
type Registry struct {
	items  []Item
	opts   []Option
	ttl    time.Duration
	logger *zap.Logger

	mu    sync.Mutex
	cache *gocache.Cache
}

// NewRegistry validates items and prepares an empty registry.
func NewRegistry(items []Item, idleTTL time.Duration, opts ...Option) (*Registry, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	o := buildOptions(opts)
	cleanup := idleTTL / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	r := &Registry{
		items:  cloneItems(items),
		opts:   opts,
		ttl:    idleTTL,
		logger: o.logger,
		cache:  gocache.New(idleTTL, cleanup),
	}
	r.cache.OnEvicted(func(key string, v any) {
		if c, ok := v.(*Controller); ok {
			c.Close()
			r.logger.Debug("showcase evicted", zap.String("key", key))
		}
	})
	return r, nil
}

// Get returns the controller mounted for key, mounting a fresh one when none exists.
// Every call extends the key's idle deadline.
func (r *Registry) Get(key string) (*Controller, error) {
	key = strings.TrimSpace(key)
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache.Get(key); ok {
		if c, ok := v.(*Controller); ok && c.Mounted() {
			r.cache.SetDefault(key, c)
			return c, nil
		}
	}
	// An expired entry the janitor has not swept yet is still held by the cache; delete it so the
	// eviction hook unmounts it before it is replaced.
	r.cache.Delete(key)
	c, err := New(r.items, r.opts...)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(key, c)
	return c, nil
}

// Peek returns the state of key's controller without mounting one or extending its deadline.
// The zero State (index 0, idle) is reported when nothing is mounted.
func (r *Registry) Peek(key string) (State, bool) {
	v, ok := r.cache.Get(strings.TrimSpace(key))
	if !ok {
		return State{}, false
	}
	c, ok := v.(*Controller)
	if !ok || !c.Mounted() {
		return State{}, false
	}
	return c.Snapshot(), true
}

// Release unmounts the controller for key, if any.
func (r *Registry) Release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(strings.TrimSpace(key))
}

// Len returns the number of mounted controllers, including ones past their deadline that the
// janitor has not swept yet.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// Items returns a copy of the shared item sequence.
func (r *Registry) Items() []Item { return cloneItems(r.items) }

// Close unmounts every controller, including ones past their idle deadline that the cleanup
// goroutine has not swept yet. The cache's cleanup goroutine itself only stops once the registry
// is garbage collected, so registries are meant to live for the whole process.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Items skips expired entries; DeleteExpired evicts them through the OnEvicted hook.
	r.cache.DeleteExpired()
	for key := range r.cache.Items() {
		r.cache.Delete(key)
	}
	r.cache.DeleteExpired()
}
