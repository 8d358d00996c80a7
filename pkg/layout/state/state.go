// Package state tracks the "current layout" (and current farm) of a
// unit of work.
//
// Each request worker carries its value on its context.Context, so
// concurrent requests never see each other's overrides and a scoped
// override is undone on every exit path by plain context scoping.
package state

import (
	"context"
	"sync"
	"time"
)

type ctxKey int

const (
	layoutKey ctxKey = iota
	farmKey
)

// WithLayout returns a context whose unit of work operates under layout.
//
// This is the scoped override: the value holds for code run under the
// returned context and evaporates with it.
func WithLayout(ctx context.Context, layout string) context.Context {
	return context.WithValue(ctx, layoutKey, layout)
}

// CurrentLayout reads the layout set on ctx, if any.
func CurrentLayout(ctx context.Context) (string, bool) {
	layout, ok := ctx.Value(layoutKey).(string)
	return layout, ok && layout != ""
}

// WithFarm returns a context whose unit of work targets the farm slug.
// The per-farm storage layer consults this value to pick its backing store.
func WithFarm(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, farmKey, slug)
}

// CurrentFarm reads the farm slug set on ctx, if any.
func CurrentFarm(ctx context.Context) (string, bool) {
	slug, ok := ctx.Value(farmKey).(string)
	return slug, ok && slug != ""
}

// Provider resolves the effective layout of a unit of work.
//
// A context override wins. Otherwise the fallback is consulted; on a
// leaf process that is the singleton farm's layout, cached with a short
// TTL so that not every request hits the store.
type Provider struct {
	mu     sync.Mutex
	ttl    time.Duration
	fetch  func(context.Context) (string, error)
	cached string
	expiry time.Time

	// replaced in tests
	now func() time.Time
}

// NewProvider builds a Provider around fetch.
//
// fetch returns the process-default layout ("" while the farm is
// unconfigured). Its result is cached for ttl.
func NewProvider(ttl time.Duration, fetch func(context.Context) (string, error)) *Provider {
	return &Provider{ttl: ttl, fetch: fetch, now: time.Now}
}

// Layout returns the layout for ctx's unit of work.
//
// The second return is false when no layout applies (unconfigured farm
// and no override).
func (p *Provider) Layout(ctx context.Context) (string, bool, error) {
	if layout, ok := CurrentLayout(ctx); ok {
		return layout, true, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.now().Before(p.expiry) {
		return p.cached, p.cached != "", nil
	}

	layout, err := p.fetch(ctx)
	if err != nil {
		return "", false, err
	}
	p.cached = layout
	p.expiry = p.now().Add(p.ttl)
	return layout, layout != "", nil
}

// Invalidate drops the cached default. Called after the farm's layout
// has been set so the next read sees it immediately.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expiry = time.Time{}
}
