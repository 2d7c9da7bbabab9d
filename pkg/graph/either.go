package graph

// Either2 holds exactly one of two step-argument types.
// The receiving side never sees the union, only the active case's Value.
type Either2[A, B Valuer] struct {
	a     A
	b     B
	right bool
}

// Left creates an Either2 holding a.
func Left[A, B Valuer](a A) Either2[A, B] { return Either2[A, B]{a: a} }

// Right creates an Either2 holding b.
func Right[A, B Valuer](b B) Either2[A, B] { return Either2[A, B]{b: b, right: true} }

// IsLeft reports whether the first case is active.
func (e Either2[A, B]) IsLeft() bool { return !e.right }

// Left returns the first case and whether it is active.
func (e Either2[A, B]) Left() (A, bool) { return e.a, !e.right }

// Right returns the second case and whether it is active.
func (e Either2[A, B]) Right() (B, bool) { return e.b, e.right }

// GValue implements Valuer.
func (e Either2[A, B]) GValue() Value {
	if e.right {
		return e.b.GValue()
	}
	return e.a.GValue()
}

// Alias refers to a step labelled with as().
func Alias(name string) Either2[String, Vertex] { return Left[String, Vertex](String(name)) }

// Target refers to a concrete vertex.
func Target(v Vertex) Either2[String, Vertex] { return Right[String](v) }
