package graph

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt32
	KindInt64
	KindFloat
	KindDouble
	KindString
	KindUUID
	KindDate
	KindList
	KindSet
	KindMap
	KindVertex
	KindEdge
	KindVertexProperty
	KindProperty
	KindPath
	KindToken
	KindPredicate
	KindOrder
)

var kindNames = [...]string{
	KindNull:           "null",
	KindBool:           "bool",
	KindInt32:          "g:Int32",
	KindInt64:          "g:Int64",
	KindFloat:          "g:Float",
	KindDouble:         "g:Double",
	KindString:         "string",
	KindUUID:           "g:UUID",
	KindDate:           "g:Date",
	KindList:           "g:List",
	KindSet:            "g:Set",
	KindMap:            "g:Map",
	KindVertex:         "g:Vertex",
	KindEdge:           "g:Edge",
	KindVertexProperty: "g:VertexProperty",
	KindProperty:       "g:Property",
	KindPath:           "g:Path",
	KindToken:          "g:T",
	KindPredicate:      "g:P",
	KindOrder:          "g:Order",
}

// String returns the GraphSON name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is a tagged union over every datum the server exchanges.
// The zero Value is null.
type Value struct {
	kind Kind
	v    any
}

// Valuer is implemented by every type that can be used as a step argument.
type Valuer interface {
	GValue() Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// UUIDOf wraps a UUID.
func UUIDOf(id uuid.UUID) Value { return Value{kind: KindUUID, v: id} }

// DateOf wraps a timestamp. GraphSON dates carry millisecond precision.
func DateOf(t time.Time) Value { return Value{kind: KindDate, v: t.Truncate(time.Millisecond)} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface returns the payload of v as a plain Go value.
func (v Value) Interface() any { return v.v }

// GValue implements Valuer.
func (v Value) GValue() Value { return v }

// Equal reports whether v and o hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && reflect.DeepEqual(v.v, o.v)
}

// String formats v the way the Gremlin console prints results.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.v.(string)
	case KindDate:
		return v.v.(time.Time).UTC().Format(time.RFC3339Nano)
	case KindList, KindSet:
		return formatList(v.v.(List))
	case KindMap, KindVertex, KindEdge, KindVertexProperty, KindProperty, KindPath:
		return v.v.(fmt.Stringer).String()
	default:
		return fmt.Sprint(v.v)
	}
}

func formatList(items []Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// =============================================================================
// Scalar Valuers
// =============================================================================

// String is a string step argument.
type String string

// Int32 is a 32-bit integer step argument.
type Int32 int32

// Int64 is a 64-bit integer step argument.
type Int64 int64

// Float is a 32-bit float step argument.
type Float float32

// Double is a 64-bit float step argument.
type Double float64

// Bool is a boolean step argument.
type Bool bool

func (s String) GValue() Value { return Value{kind: KindString, v: string(s)} }
func (i Int32) GValue() Value  { return Value{kind: KindInt32, v: int32(i)} }
func (i Int64) GValue() Value  { return Value{kind: KindInt64, v: int64(i)} }
func (f Float) GValue() Value  { return Value{kind: KindFloat, v: float32(f)} }
func (d Double) GValue() Value { return Value{kind: KindDouble, v: float64(d)} }
func (b Bool) GValue() Value   { return Value{kind: KindBool, v: bool(b)} }

// Strings converts labels or keys into string values.
func Strings(s []string) []Value {
	out := make([]Value, len(s))
	for i, item := range s {
		out[i] = String(item).GValue()
	}
	return out
}

// Values converts Valuers into values, preserving order.
func Values(vs []Valuer) []Value {
	out := make([]Value, len(vs))
	for i, item := range vs {
		out[i] = item.GValue()
	}
	return out
}

// ValueOf converts an arbitrary Go value into a Value.
// It returns a *CastError for types outside the model.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Valuer:
		return t.GValue(), nil
	case string:
		return String(t).GValue(), nil
	case bool:
		return Bool(t).GValue(), nil
	case int:
		return Int64(t).GValue(), nil
	case int8:
		return Int32(t).GValue(), nil
	case int16:
		return Int32(t).GValue(), nil
	case int32:
		return Int32(t).GValue(), nil
	case int64:
		return Int64(t).GValue(), nil
	case uint8:
		return Int32(t).GValue(), nil
	case uint16:
		return Int32(t).GValue(), nil
	case uint32:
		return Int64(t).GValue(), nil
	case float32:
		return Float(t).GValue(), nil
	case float64:
		return Double(t).GValue(), nil
	case uuid.UUID:
		return UUIDOf(t), nil
	case time.Time:
		return DateOf(t), nil
	case []string:
		return List(Strings(t)).GValue(), nil
	case []any:
		items := make(List, len(t))
		for i, item := range t {
			v, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return items.GValue(), nil
	case map[string]any:
		var m Map
		for _, k := range sortedKeys(t) {
			v, err := ValueOf(t[k])
			if err != nil {
				return Value{}, err
			}
			m.Put(String(k), v)
		}
		return m.GValue(), nil
	default:
		return Value{}, &CastError{From: fmt.Sprintf("%T", x), To: "graph.Value"}
	}
}
