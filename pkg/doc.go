// Package pkg provides the libraries behind the gremlin client.
//
// # Overview
//
// gremlin builds Gremlin traversals as typed Go values, ships them to a
// Gremlin Server as GraphSON 3.0 bytecode over WebSocket, and converts the
// results back into Go types. The pkg directory is organized into four areas:
//
//  1. [graph] and [traversal] - the value model and the typed builder
//  2. [graphson] and [aio] - wire format and the asynchronous transport
//  3. [cache] and [observability] - result caching and instrumentation hooks
//  4. [render/dot] and [export] - sinks for traversal results
//
// # Architecture
//
// The data flow of one traversal:
//
//	g.V().HasLabel("person").Values("name")
//	         ↓
//	    [traversal] (bytecode, strategy chain)
//	         ↓
//	    [cache] (read-only traversals answered from Redis or disk)
//	         ↓
//	    [aio] (connection pool, request demultiplexing)
//	         ↓
//	    [graphson] (frames on the wire)
//
// # Quick Start
//
//	client, err := aio.Dial(ctx, aio.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	g := traversal.NewSource(traversal.NewStrategies(aio.NewRemoteStrategy(client)))
//	names, err := g.V().HasLabel("person").Values("name").ToList(ctx)
//
// # Errors
//
// Every failure surfaced by the transport is an [errors.Error] carrying a
// Code. [aio.FromTransport] and [aio.FromSend] classify raw WebSocket and
// queue failures; [errors.IsRecoverable] tells a caller whether the
// connection can be redialed.
//
// # Testing
//
// [gremlintest] runs a scriptable fake server on httptest:
//
//	srv := gremlintest.NewServer(func(graphson.Request) []graphson.Response {
//	    return gremlintest.Reply(graph.Int64(3))
//	})
//	defer srv.Close()
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/graph
// [traversal]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/traversal
// [graphson]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/graphson
// [aio]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/aio
// [aio.FromTransport]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/aio#FromTransport
// [aio.FromSend]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/aio#FromSend
// [cache]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/observability
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/render/dot
// [export]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/export
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/errors#Error
// [errors.IsRecoverable]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/errors#IsRecoverable
// [gremlintest]: https://pkg.go.dev/github.com/matzehuels/gremlin/pkg/gremlintest
package pkg
