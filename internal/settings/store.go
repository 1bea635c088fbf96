package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/iiroan/blue/internal/feed"
	"github.com/iiroan/blue/internal/storage"
)

// DefaultKey is the storage key holding the settings blob.
const DefaultKey = "blue_app_settings"

// DefaultWriteTimeout bounds a single background write.
const DefaultWriteTimeout = 5 * time.Second

// Listener receives the new snapshot after every change.
type Listener func(Settings)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage failures and lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithWriteTimeout bounds each background write.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// Store is the single source of truth for user preferences. It hydrates
// from a storage.Adapter once, serves snapshots, applies partial updates,
// persists them in the background and notifies listeners.
//
// Nothing is written to storage until Initialize has finished, so an early
// mutation can never overwrite preferences that are still being loaded.
type Store struct {
	adapter      storage.Adapter
	key          string
	writeTimeout time.Duration
	logger       *log.Logger
	writer       *persister

	initOnce sync.Once

	// updateMu orders mutations and their notifications.
	updateMu sync.Mutex

	mu      sync.RWMutex
	current Settings
	loaded  bool

	changes feed.Feed[Settings]
}

// New creates a Store holding Defaults. Call Initialize before relying on
// persisted values and Close when done.
func New(adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter:      adapter,
		key:          DefaultKey,
		writeTimeout: DefaultWriteTimeout,
		logger:       log.New(io.Discard),
		current:      Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("settings")
	s.writer = newPersister(adapter, s.key, s.writeTimeout, s.logger)
	return s
}

// Initialize hydrates the store from storage. Only the first call has an
// effect. Storage and parse failures are logged and leave the defaults in
// place; Initialize itself never fails.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.hydrate(ctx)
	})
}

func (s *Store) hydrate(ctx context.Context) {
	hydrated, rewrite := s.load(ctx)

	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	s.current = hydrated
	s.loaded = true
	s.mu.Unlock()

	if rewrite {
		s.persist(hydrated)
	}
	s.notify(hydrated)
}

func (s *Store) load(ctx context.Context) (loaded Settings, rewrite bool) {
	loaded = Defaults()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("settings load panicked, using defaults", "panic", r)
			loaded, rewrite = Defaults(), false
		}
	}()

	data, err := s.adapter.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("no stored settings, using defaults", "key", s.key)
		return loaded, false
	}
	if err != nil {
		s.logger.Error("failed to load settings, using defaults", "key", s.key, "error", err)
		return loaded, false
	}

	decoded, report, err := Decode(data)
	if err != nil {
		s.logger.Error("stored settings are unreadable, using defaults", "key", s.key, "error", err)
		return loaded, true
	}
	if len(report.Coerced) > 0 {
		s.logger.Warn("stored settings had invalid values, reset to defaults", "keys", report.Coerced)
	}
	if len(report.Unknown) > 0 {
		s.logger.Warn("stored settings had unknown keys, dropped", "keys", report.Unknown)
	}
	if report.Version < SchemaVersion {
		s.logger.Info("migrating stored settings", "from", report.Version, "to", SchemaVersion)
	}
	return decoded, report.NeedsRewrite()
}

// Loaded reports whether Initialize has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Settings returns the current snapshot.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update merges p over the current settings. Every key set in p replaces
// the current value; the rest is untouched. A value outside its domain
// rejects the whole patch and leaves the store unchanged.
func (s *Store) Update(p Patch) (Settings, error) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	next := p.Apply(s.current)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return Settings{}, err
	}
	s.current = next
	s.mu.Unlock()

	s.logger.Debug("settings updated", "keys", p.Keys())
	s.persist(next)
	s.notify(next)
	return next, nil
}

// Set updates a single key from its string form.
func (s *Store) Set(key, value string) (Settings, error) {
	p, err := ParseAssignments([]string{fmt.Sprintf("%s=%s", key, value)})
	if err != nil {
		return Settings{}, err
	}
	return s.Update(p)
}

// Reset replaces the current settings with Defaults.
func (s *Store) Reset() Settings {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	next := Defaults()
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.logger.Debug("settings reset to defaults")
	s.persist(next)
	s.notify(next)
	return next
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Listeners run synchronously on the mutating goroutine,
// in registration order, and must not call Update or Reset.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	return s.changes.Subscribe(feed.Consumer[Settings](fn))
}

// Flush waits until every change made so far has been handed to storage.
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.flush(ctx)
}

// Close flushes pending writes and stops the background writer. The
// adapter is not closed.
func (s *Store) Close(ctx context.Context) error {
	return s.writer.close(ctx)
}

func (s *Store) persist(next Settings) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if !loaded {
		s.logger.Debug("settings not hydrated yet, skipping save")
		return
	}

	blob, err := Encode(next)
	if err != nil {
		s.logger.Error("failed to encode settings", "error", err)
		return
	}
	s.writer.enqueue(blob)
}

func (s *Store) notify(next Settings) {
	s.changes.Publish(next)
}
