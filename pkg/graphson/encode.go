package graphson

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

// typed is the GraphSON envelope for non-native values.
type typed struct {
	Type  string `json:"@type"`
	Value any    `json:"@value"`
}

type bytecodeBody struct {
	Step   [][]any `json:"step"`
	Source [][]any `json:"source,omitempty"`
}

// EncodeValue marshals v as GraphSON.
func EncodeValue(v graph.Value) ([]byte, error) {
	tree, err := encodeValue(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// EncodeBytecode marshals bc as a g:Bytecode. The output is deterministic.
func EncodeBytecode(bc traversal.Bytecode) ([]byte, error) {
	tree, err := encodeBytecode(bc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

func encodeBytecode(bc traversal.Bytecode) (any, error) {
	steps, err := encodeInstructions(bc.Steps())
	if err != nil {
		return nil, err
	}
	sources, err := encodeInstructions(bc.Sources())
	if err != nil {
		return nil, err
	}
	if steps == nil {
		steps = [][]any{}
	}
	return typed{Type: "g:Bytecode", Value: bytecodeBody{Step: steps, Source: sources}}, nil
}

func encodeInstructions(ins []traversal.Instruction) ([][]any, error) {
	if len(ins) == 0 {
		return nil, nil
	}
	out := make([][]any, len(ins))
	for i, in := range ins {
		row := make([]any, 0, len(in.Args)+1)
		row = append(row, in.Operator)
		for _, arg := range in.Args {
			enc, err := encodeValue(arg)
			if err != nil {
				return nil, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "encode %s argument", in.Operator)
			}
			row = append(row, enc)
		}
		out[i] = row
	}
	return out, nil
}

func encodeValue(v graph.Value) (any, error) {
	switch v.Kind() {
	case graph.KindNull:
		return nil, nil
	case graph.KindBool, graph.KindString:
		return v.Interface(), nil
	case graph.KindInt32:
		return typed{"g:Int32", v.Interface()}, nil
	case graph.KindInt64:
		return typed{"g:Int64", v.Interface()}, nil
	case graph.KindFloat:
		return typed{"g:Float", encodeFloat(float64(v.Interface().(float32)))}, nil
	case graph.KindDouble:
		return typed{"g:Double", encodeFloat(v.Interface().(float64))}, nil
	case graph.KindUUID:
		return typed{"g:UUID", fmt.Sprint(v.Interface())}, nil
	case graph.KindDate:
		return typed{"g:Date", v.Interface().(time.Time).UnixMilli()}, nil
	case graph.KindList, graph.KindSet:
		items, err := encodeList(v.Interface().(graph.List))
		if err != nil {
			return nil, err
		}
		if v.Kind() == graph.KindSet {
			return typed{"g:Set", items}, nil
		}
		return typed{"g:List", items}, nil
	case graph.KindMap:
		m := v.Interface().(graph.Map)
		flat := make([]any, 0, 2*m.Len())
		for _, e := range m.Entries() {
			k, err := encodeValue(e.Key)
			if err != nil {
				return nil, err
			}
			val, err := encodeValue(e.Value)
			if err != nil {
				return nil, err
			}
			flat = append(flat, k, val)
		}
		return typed{"g:Map", flat}, nil
	case graph.KindVertex:
		vx := v.Interface().(graph.Vertex)
		id, err := encodeValue(vx.ID)
		if err != nil {
			return nil, err
		}
		body := map[string]any{"id": id, "label": vx.Label}
		if len(vx.Properties) > 0 {
			props := make(map[string]any, len(vx.Properties))
			for key, items := range vx.Properties {
				enc := make([]any, len(items))
				for i, p := range items {
					if enc[i], err = encodeValue(p.GValue()); err != nil {
						return nil, err
					}
				}
				props[key] = enc
			}
			body["properties"] = props
		}
		return typed{"g:Vertex", body}, nil
	case graph.KindEdge:
		return encodeEdge(v.Interface().(graph.Edge))
	case graph.KindVertexProperty:
		p := v.Interface().(graph.VertexProperty)
		id, err := encodeValue(p.ID)
		if err != nil {
			return nil, err
		}
		val, err := encodeValue(p.Value)
		if err != nil {
			return nil, err
		}
		return typed{"g:VertexProperty", map[string]any{"id": id, "label": p.Label, "value": val}}, nil
	case graph.KindProperty:
		p := v.Interface().(graph.Property)
		val, err := encodeValue(p.Value)
		if err != nil {
			return nil, err
		}
		return typed{"g:Property", map[string]any{"key": p.Key, "value": val}}, nil
	case graph.KindPath:
		return encodePath(v.Interface().(graph.Path))
	case graph.KindToken:
		return typed{"g:T", string(v.Interface().(graph.T))}, nil
	case graph.KindOrder:
		return typed{"g:Order", string(v.Interface().(graph.Order))}, nil
	case graph.KindPredicate:
		p := v.Interface().(graph.P)
		val, err := encodeValue(p.Value)
		if err != nil {
			return nil, err
		}
		return typed{"g:P", map[string]any{"predicate": p.Operator, "value": val}}, nil
	default:
		return nil, gerrors.New(gerrors.ErrCodeSerialization, "cannot encode %s", v.Kind())
	}
}

func encodeList(items graph.List) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		enc, err := encodeValue(item)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func encodeEdge(e graph.Edge) (any, error) {
	id, err := encodeValue(e.ID)
	if err != nil {
		return nil, err
	}
	inV, err := encodeValue(e.InV.ID)
	if err != nil {
		return nil, err
	}
	outV, err := encodeValue(e.OutV.ID)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"id":        id,
		"label":     e.Label,
		"inV":       inV,
		"inVLabel":  e.InV.Label,
		"outV":      outV,
		"outVLabel": e.OutV.Label,
	}
	if len(e.Properties) > 0 {
		props := make(map[string]any, len(e.Properties))
		for key, p := range e.Properties {
			if props[key], err = encodeValue(p.GValue()); err != nil {
				return nil, err
			}
		}
		body["properties"] = props
	}
	return typed{"g:Edge", body}, nil
}

func encodePath(p graph.Path) (any, error) {
	labels := make([]any, len(p.Labels))
	for i, set := range p.Labels {
		items := make([]any, len(set))
		for j, l := range set {
			items[j] = l
		}
		labels[i] = typed{"g:Set", items}
	}
	objects, err := encodeList(p.Objects)
	if err != nil {
		return nil, err
	}
	return typed{"g:Path", map[string]any{
		"labels":  typed{"g:List", labels},
		"objects": typed{"g:List", objects},
	}}, nil
}

// encodeFloat spells the values JSON cannot represent the way Gremlin Server does.
func encodeFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}
