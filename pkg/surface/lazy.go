package surface

import (
	"context"
	"sync"

	"github.com/stagewalk/stagewalk/pkg/ports"
	"golang.org/x/sync/singleflight"
)

// LazyProvider memoizes one-time initialization of a rendering backend.
//
// The first Open triggers the init function; concurrent callers await the same
// in-flight result. After a successful load, acquisition is synchronous. An
// initialization failure is cached: the capability is considered permanently
// unavailable for the process lifetime, matching the degrade-to-no-op policy.
type LazyProvider struct {
	init  func(context.Context) (ports.SurfaceProvider, error)
	group singleflight.Group

	mu       sync.RWMutex
	provider ports.SurfaceProvider
	err      error
}

// NewLazy wraps a one-time initializer as a SurfaceProvider.
func NewLazy(init func(context.Context) (ports.SurfaceProvider, error)) *LazyProvider {
	return &LazyProvider{init: init}
}

// Open resolves the capability (initializing it on first use) and opens a
// driver on it.
func (l *LazyProvider) Open(ctx context.Context, container string) (ports.SurfaceDriver, error) {
	provider, err := l.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return provider.Open(ctx, container)
}

func (l *LazyProvider) resolve(ctx context.Context) (ports.SurfaceProvider, error) {
	l.mu.RLock()
	provider, err := l.provider, l.err
	l.mu.RUnlock()
	if provider != nil || err != nil {
		return provider, err
	}

	// The first caller's context drives initialization; latecomers share its
	// outcome through the singleflight group.
	v, err, _ := l.group.Do("init", func() (interface{}, error) {
		provider, err := l.init(ctx)

		l.mu.Lock()
		l.provider, l.err = provider, err
		l.mu.Unlock()

		return provider, err
	})
	if err != nil {
		return nil, err
	}
	return v.(ports.SurfaceProvider), nil
}
