// Package observability provides hooks for metrics, tracing, and logging.
//
// The client emits events about request submission, connection lifecycle and
// result caching without depending on any observability backend. Consumers
// register hooks once at startup; libraries read them through the accessor
// functions.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRequestHooks(&myRequestHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Request().OnSubmit(ctx, host, id, bytecode)
//	// ... wait for responses ...
//	observability.Request().OnComplete(ctx, host, id, results, duration, err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Request Hooks
// =============================================================================

// RequestHooks receives events for every traversal sent to a server.
type RequestHooks interface {
	// OnSubmit records a request handed to a connection's outbound queue.
	// bytecode is the human-readable form of the program.
	OnSubmit(ctx context.Context, host string, id uuid.UUID, bytecode string)

	// OnComplete records the end of a request, successful or not.
	OnComplete(ctx context.Context, host string, id uuid.UUID, results int, duration time.Duration, err error)
}

// =============================================================================
// Connection Hooks
// =============================================================================

// ConnectionHooks receives websocket lifecycle events.
type ConnectionHooks interface {
	// OnConnect records a completed websocket handshake.
	OnConnect(ctx context.Context, host string, duration time.Duration)

	// OnDisconnect records a connection leaving service. err is the
	// classified fault, or nil for a local close.
	OnDisconnect(host string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the result cache. keyType names what was
// cached, e.g. "traversal".
type CacheHooks interface {
	// OnCacheHit records a traversal answered without a round trip.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a lookup that fell through to the server.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records stored results; size is the encoded length in bytes.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRequestHooks is a no-op implementation of RequestHooks.
type NoopRequestHooks struct{}

func (NoopRequestHooks) OnSubmit(context.Context, string, uuid.UUID, string) {}
func (NoopRequestHooks) OnComplete(context.Context, string, uuid.UUID, int, time.Duration, error) {
}

// NoopConnectionHooks is a no-op implementation of ConnectionHooks.
type NoopConnectionHooks struct{}

func (NoopConnectionHooks) OnConnect(context.Context, string, time.Duration) {}
func (NoopConnectionHooks) OnDisconnect(string, error)                       {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	requestHooks    RequestHooks    = NoopRequestHooks{}
	connectionHooks ConnectionHooks = NoopConnectionHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetRequestHooks registers custom request hooks.
// This should be called once at application startup before any traversal runs.
func SetRequestHooks(h RequestHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		requestHooks = h
	}
}

// SetConnectionHooks registers custom connection hooks.
func SetConnectionHooks(h ConnectionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		connectionHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Request returns the registered request hooks.
func Request() RequestHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return requestHooks
}

// Connection returns the registered connection hooks.
func Connection() ConnectionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return connectionHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	requestHooks = NoopRequestHooks{}
	connectionHooks = NoopConnectionHooks{}
	cacheHooks = NoopCacheHooks{}
}
