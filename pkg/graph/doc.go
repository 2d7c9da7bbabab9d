// Package graph provides the value model exchanged with a Gremlin server.
//
// # Overview
//
// Every datum that can appear as a traversal step argument or as a traversal
// result is a [Value]: a tagged union over scalars, collections, graph
// elements and the few traversal tokens (T, P, Order) the server understands.
//
// # Conversions
//
// Builder arguments enter the model through the [Valuer] interface. The named
// scalar types ([String], [Int32], [Int64], [Float], [Double], [Bool]) and
// the element types all implement it, so typed call sites never fail:
//
//	g.AddV("person").Property("name", graph.String("marko"))
//
// Untyped callers use [ValueOf], which reports unsupported Go types as a
// [*CastError].
//
// Results leave the model through [As], which converts a Value into a
// caller-chosen static type:
//
//	name, err := graph.As[string](v)
//	count, err := graph.As[int64](v)
//
// # Either
//
// Steps that accept "this or that" arguments take an [Either2]. Both cases
// collapse into a plain Value on the wire:
//
//	g.AddE("knows").From(graph.Alias("a")).To(graph.Target(v))
package graph
