package graph

// T is a token naming a structural part of an element.
type T string

// Element tokens.
const (
	TID    T = "id"
	TLabel T = "label"
	TKey   T = "key"
	TValue T = "value"
)

// GValue implements Valuer.
func (t T) GValue() Value { return Value{kind: KindToken, v: t} }

// Order is a sort direction for order().by().
type Order string

// Sort orders.
const (
	Asc     Order = "asc"
	Desc    Order = "desc"
	Shuffle Order = "shuffle"
)

// GValue implements Valuer.
func (o Order) GValue() Value { return Value{kind: KindOrder, v: o} }

// P is a predicate used by has() and similar filters.
type P struct {
	Operator string
	Value    Value
}

// GValue implements Valuer.
func (p P) GValue() Value { return Value{kind: KindPredicate, v: p} }

// String formats the predicate as operator(value).
func (p P) String() string { return p.Operator + "(" + p.Value.String() + ")" }

func Eq(v Valuer) P  { return P{Operator: "eq", Value: v.GValue()} }
func Neq(v Valuer) P { return P{Operator: "neq", Value: v.GValue()} }
func Lt(v Valuer) P  { return P{Operator: "lt", Value: v.GValue()} }
func Lte(v Valuer) P { return P{Operator: "lte", Value: v.GValue()} }
func Gt(v Valuer) P  { return P{Operator: "gt", Value: v.GValue()} }
func Gte(v Valuer) P { return P{Operator: "gte", Value: v.GValue()} }

// Within matches any of vs.
func Within(vs ...Valuer) P { return P{Operator: "within", Value: List(Values(vs)).GValue()} }

// Without matches none of vs.
func Without(vs ...Valuer) P { return P{Operator: "without", Value: List(Values(vs)).GValue()} }

// Between matches lo <= x < hi.
func Between(lo, hi Valuer) P {
	return P{Operator: "between", Value: List{lo.GValue(), hi.GValue()}.GValue()}
}

// Inside matches lo < x < hi.
func Inside(lo, hi Valuer) P {
	return P{Operator: "inside", Value: List{lo.GValue(), hi.GValue()}.GValue()}
}

// Outside matches x < lo or x > hi.
func Outside(lo, hi Valuer) P {
	return P{Operator: "outside", Value: List{lo.GValue(), hi.GValue()}.GValue()}
}
