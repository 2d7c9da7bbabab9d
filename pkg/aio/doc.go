// Package aio is the asynchronous websocket transport behind remote traversals.
//
// A [Conn] owns one websocket to a Gremlin Server. Requests are handed to a
// bounded outbound queue that a single writer goroutine drains; a single
// reader goroutine demultiplexes response frames by request ID and resolves
// the waiting caller. Handing a request to a full or abandoned queue fails
// immediately with a [*SendError] rather than blocking.
//
// A [Client] pools connections and replaces those that broke with a
// recoverable fault. [RemoteStrategy] plugs a Client into a traversal source:
//
//	client, err := aio.Dial(ctx, aio.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	g := traversal.NewSource(traversal.NewStrategies(aio.NewRemoteStrategy(client)))
//	n, err := g.V().Count().Next(ctx)
//
// # Error Classification
//
// Every transport fault is funnelled through [FromTransport] and every failed
// hand-off through [FromSend]. Only the two connection-state faults survive
// classification as themselves; every other fault is collapsed into an opaque
// TRANSPORT error carrying its text.
package aio
