package theme

import (
	"sync"

	"github.com/iiroan/blue/internal/feed"
	"github.com/iiroan/blue/internal/settings"
)

// Source supplies settings snapshots and change notifications.
// *settings.Store satisfies it.
type Source interface {
	Settings() settings.Settings
	Subscribe(fn settings.Listener) (cancel func())
}

// Listener receives a freshly derived theme.
type Listener func(Theme)

// Provider derives the current theme from a settings source and the last
// reported host scheme. It never caches a derivation.
type Provider struct {
	src    Source
	cancel func()

	mu     sync.RWMutex
	scheme Scheme

	changes feed.Feed[Theme]
}

// NewProvider subscribes to src and starts with the given host scheme.
func NewProvider(src Source, scheme Scheme) *Provider {
	p := &Provider{src: src, scheme: scheme}
	p.cancel = src.Subscribe(func(s settings.Settings) {
		p.changes.Publish(Derive(s.Theme, p.Scheme()))
	})
	return p
}

// Current derives the theme from the current settings and scheme.
func (p *Provider) Current() Theme {
	return Derive(p.src.Settings().Theme, p.Scheme())
}

// Scheme returns the last reported host scheme.
func (p *Provider) Scheme() Scheme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.scheme
}

// SetScheme records a host appearance change and notifies listeners.
func (p *Provider) SetScheme(scheme Scheme) {
	p.mu.Lock()
	p.scheme = scheme
	p.mu.Unlock()

	p.changes.Publish(p.Current())
}

// Subscribe registers fn for theme changes.
func (p *Provider) Subscribe(fn Listener) (cancel func()) {
	return p.changes.Subscribe(feed.Consumer[Theme](fn))
}

// Close detaches the provider from its settings source.
func (p *Provider) Close() {
	p.cancel()
}
