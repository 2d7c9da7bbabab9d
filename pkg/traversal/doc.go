// Package traversal builds Gremlin traversals as bytecode.
//
// # Overview
//
// A [GraphTraversal] is a fluent, strongly-typed builder around a
// [Bytecode] program. Every step method appends exactly one [Instruction]
// whose operator token is part of the server's wire contract, and returns a
// builder whose end type reflects what the traversal now produces:
//
//	g := traversal.NewSource(strategies)
//
//	names, err := g.V().HasLabel("person").Out("knows").Values("name").ToList(ctx)
//	// names is []graph.Value
//
//	n, err := g.V().Count().Next(ctx)
//	// n is int64
//
// The two type parameters are phantom markers: S is the start type and E the
// end type. They carry no data and exist only so the terminal calls can
// convert results with [graph.As].
//
// # Ownership
//
// Step methods never mutate the receiver's program. Each call copies the
// accumulated bytecode, appends to the copy and returns a new handle, so a
// handle kept from before a step still describes the shorter program and two
// handles never share an in-progress program.
//
// # Execution
//
// Terminal calls ([GraphTraversal.ToList], [GraphTraversal.Next],
// [GraphTraversal.Iterate]) hand the bytecode to the [Strategies] chain the
// builder was created with. Builders never validate that a step sequence is
// meaningful for a particular graph; the server does.
package traversal
