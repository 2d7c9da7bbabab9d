package graph

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CastError reports a value that cannot be converted to the requested type.
type CastError struct {
	From string
	To   string
}

// Error implements the error interface.
func (e *CastError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

// As converts v into T.
//
// Integer widening is allowed (g:Int32 into int64 or int); every other
// mismatch between the value's kind and T is a *CastError. GProperty accepts
// both g:VertexProperty and g:Property. T may be Value or any to receive the
// value unconverted.
func As[T any](v Value) (T, error) {
	var out T
	if err := assign(&out, v); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func assign(dst any, v Value) error {
	ok := true
	switch p := dst.(type) {
	case *Value:
		*p = v
	case *any:
		*p = v.v
	case *string:
		*p, ok = v.v.(string)
	case *bool:
		*p, ok = v.v.(bool)
	case *int32:
		*p, ok = v.v.(int32)
	case *int64:
		switch n := v.v.(type) {
		case int32:
			*p = int64(n)
		case int64:
			*p = n
		default:
			ok = false
		}
	case *int:
		switch n := v.v.(type) {
		case int32:
			*p = int(n)
		case int64:
			*p = int(n)
		default:
			ok = false
		}
	case *float32:
		*p, ok = v.v.(float32)
	case *float64:
		switch n := v.v.(type) {
		case float32:
			*p = float64(n)
		case float64:
			*p = n
		default:
			ok = false
		}
	case *uuid.UUID:
		*p, ok = v.v.(uuid.UUID)
	case *time.Time:
		*p, ok = v.v.(time.Time)
	case *List:
		*p, ok = v.v.(List)
	case *Set:
		var l List
		l, ok = v.v.(List)
		*p = Set(l)
	case *Map:
		*p, ok = v.v.(Map)
	case *Vertex:
		*p, ok = v.v.(Vertex)
	case *Edge:
		*p, ok = v.v.(Edge)
	case *VertexProperty:
		*p, ok = v.v.(VertexProperty)
	case *Property:
		*p, ok = v.v.(Property)
	case *GProperty:
		switch x := v.v.(type) {
		case VertexProperty:
			*p = OfVertexProperty(x)
		case Property:
			*p = OfProperty(x)
		default:
			ok = false
		}
	case *Path:
		*p, ok = v.v.(Path)
	case *T:
		*p, ok = v.v.(T)
	default:
		ok = false
	}
	if !ok {
		return &CastError{From: v.kind.String(), To: fmt.Sprintf("%T", dst)[1:]}
	}
	return nil
}
