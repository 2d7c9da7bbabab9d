package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	// Request hooks
	r := NoopRequestHooks{}
	r.OnSubmit(ctx, "localhost:8182", id, "V[].count[]")
	r.OnComplete(ctx, "localhost:8182", id, 1, time.Millisecond, nil)

	// Connection hooks
	c := NoopConnectionHooks{}
	c.OnConnect(ctx, "localhost:8182", time.Millisecond)
	c.OnDisconnect("localhost:8182", errors.New("closed"))

	// Cache hooks
	k := NoopCacheHooks{}
	k.OnCacheHit(ctx, "traversal")
	k.OnCacheMiss(ctx, "traversal")
	k.OnCacheSet(ctx, "traversal", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Request().(NoopRequestHooks); !ok {
		t.Error("Request() should return NoopRequestHooks by default")
	}
	if _, ok := Connection().(NoopConnectionHooks); !ok {
		t.Error("Connection() should return NoopConnectionHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customRequest := &testRequestHooks{}
	SetRequestHooks(customRequest)
	if Request() != customRequest {
		t.Error("SetRequestHooks should set custom hooks")
	}

	customConn := &testConnectionHooks{}
	SetConnectionHooks(customConn)
	if Connection() != customConn {
		t.Error("SetConnectionHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Request().(NoopRequestHooks); !ok {
		t.Error("Reset() should restore NoopRequestHooks")
	}
	if _, ok := Connection().(NoopConnectionHooks); !ok {
		t.Error("Reset() should restore NoopConnectionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRequestHooks{}
	SetRequestHooks(custom)
	SetRequestHooks(nil)

	if Request() != custom {
		t.Error("SetRequestHooks(nil) should be ignored")
	}
}

type testRequestHooks struct{ NoopRequestHooks }
type testConnectionHooks struct{ NoopConnectionHooks }
type testCacheHooks struct{ NoopCacheHooks }
