package graphson

import (
	"bytes"
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
)

// rawTyped is the decoding side of the GraphSON envelope.
type rawTyped struct {
	Type  string          `json:"@type"`
	Value json.RawMessage `json:"@value"`
}

// DecodeValue unmarshals a single GraphSON value.
func DecodeValue(data []byte) (graph.Value, error) {
	return decodeRaw(json.RawMessage(data))
}

func decodeRaw(raw json.RawMessage) (graph.Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return graph.Null(), nil
	}
	switch raw[0] {
	case 'n':
		return graph.Null(), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return graph.Value{}, malformed(err, "bool")
		}
		return graph.Bool(b).GValue(), nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return graph.Value{}, malformed(err, "string")
		}
		return graph.String(s).GValue(), nil
	case '[':
		items, err := decodeItems(raw)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.List(items).GValue(), nil
	case '{':
		var t rawTyped
		if err := json.Unmarshal(raw, &t); err != nil {
			return graph.Value{}, malformed(err, "object")
		}
		if t.Type == "" {
			return decodePlainObject(raw)
		}
		return decodeTyped(t)
	default:
		return decodeNumber(raw)
	}
}

// decodeNumber handles untyped numbers, which only appear in older dialects.
func decodeNumber(raw json.RawMessage) (graph.Value, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return graph.Value{}, malformed(err, "number")
	}
	if i, err := n.Int64(); err == nil {
		return graph.Int64(i).GValue(), nil
	}
	f, err := n.Float64()
	if err != nil {
		return graph.Value{}, malformed(err, "number")
	}
	return graph.Double(f).GValue(), nil
}

func decodePlainObject(raw json.RawMessage) (graph.Value, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return graph.Value{}, malformed(err, "object")
	}
	var m graph.Map
	for _, k := range sortedFields(fields) {
		v, err := decodeRaw(fields[k])
		if err != nil {
			return graph.Value{}, err
		}
		m.Put(graph.String(k), v)
	}
	return m.GValue(), nil
}

func decodeTyped(t rawTyped) (graph.Value, error) {
	switch t.Type {
	case "g:Int32":
		n, err := decodeInt(t)
		if err != nil {
			return graph.Value{}, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return graph.Value{}, gerrors.New(gerrors.ErrCodeSerialization, "g:Int32 out of range: %d", n)
		}
		return graph.Int32(n).GValue(), nil
	case "g:Int64":
		n, err := decodeInt(t)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.Int64(n).GValue(), nil
	case "g:Float":
		f, err := decodeFloat(t)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.Float(f).GValue(), nil
	case "g:Double":
		f, err := decodeFloat(t)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.Double(f).GValue(), nil
	case "g:UUID":
		var s string
		if err := json.Unmarshal(t.Value, &s); err != nil {
			return graph.Value{}, malformed(err, t.Type)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return graph.Value{}, malformed(err, t.Type)
		}
		return graph.UUIDOf(id), nil
	case "g:Date", "g:Timestamp":
		ms, err := decodeInt(t)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.DateOf(time.UnixMilli(ms).UTC()), nil
	case "g:List":
		items, err := decodeItems(t.Value)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.List(items).GValue(), nil
	case "g:Set":
		items, err := decodeItems(t.Value)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.Set(items).GValue(), nil
	case "g:Map":
		return decodeMap(t.Value)
	case "g:Vertex":
		v, err := decodeVertex(t.Value)
		if err != nil {
			return graph.Value{}, err
		}
		return v.GValue(), nil
	case "g:Edge":
		e, err := decodeEdge(t.Value)
		if err != nil {
			return graph.Value{}, err
		}
		return e.GValue(), nil
	case "g:VertexProperty":
		p, err := decodeVertexProperty(t.Value)
		if err != nil {
			return graph.Value{}, err
		}
		return p.GValue(), nil
	case "g:Property":
		p, err := decodeProperty(t.Value)
		if err != nil {
			return graph.Value{}, err
		}
		return p.GValue(), nil
	case "g:Path":
		return decodePath(t.Value)
	case "g:T":
		var s string
		if err := json.Unmarshal(t.Value, &s); err != nil {
			return graph.Value{}, malformed(err, t.Type)
		}
		return graph.T(s).GValue(), nil
	case "g:Order":
		var s string
		if err := json.Unmarshal(t.Value, &s); err != nil {
			return graph.Value{}, malformed(err, t.Type)
		}
		return graph.Order(s).GValue(), nil
	case "g:Direction":
		var s string
		if err := json.Unmarshal(t.Value, &s); err != nil {
			return graph.Value{}, malformed(err, t.Type)
		}
		return graph.String(s).GValue(), nil
	case "g:P":
		var body struct {
			Predicate string          `json:"predicate"`
			Value     json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(t.Value, &body); err != nil {
			return graph.Value{}, malformed(err, t.Type)
		}
		v, err := decodeRaw(body.Value)
		if err != nil {
			return graph.Value{}, err
		}
		return graph.P{Operator: body.Predicate, Value: v}.GValue(), nil
	case "g:Traverser":
		tr, err := decodeTraverser(t.Value)
		if err != nil {
			return graph.Value{}, err
		}
		return tr.value, nil
	default:
		return graph.Value{}, gerrors.New(gerrors.ErrCodeSerialization, "unsupported GraphSON type %q", t.Type)
	}
}

func decodeInt(t rawTyped) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(t.Value, &n); err != nil {
		return 0, malformed(err, t.Type)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, malformed(err, t.Type)
	}
	return i, nil
}

func decodeFloat(t rawTyped) (float64, error) {
	var s string
	if json.Unmarshal(t.Value, &s) == nil {
		switch s {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, malformed(err, t.Type)
		}
		return f, nil
	}
	var f float64
	if err := json.Unmarshal(t.Value, &f); err != nil {
		return 0, malformed(err, t.Type)
	}
	return f, nil
}

func decodeItems(raw json.RawMessage) ([]graph.Value, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformed(err, "list")
	}
	out := make([]graph.Value, len(items))
	for i, item := range items {
		v, err := decodeRaw(item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeMap(raw json.RawMessage) (graph.Value, error) {
	flat, err := decodeItems(raw)
	if err != nil {
		return graph.Value{}, err
	}
	if len(flat)%2 != 0 {
		return graph.Value{}, gerrors.New(gerrors.ErrCodeSerialization, "g:Map has odd number of items: %d", len(flat))
	}
	var m graph.Map
	for i := 0; i < len(flat); i += 2 {
		m.Put(flat[i], flat[i+1])
	}
	return m.GValue(), nil
}

func decodeVertex(raw json.RawMessage) (graph.Vertex, error) {
	var body struct {
		ID         json.RawMessage              `json:"id"`
		Label      string                       `json:"label"`
		Properties map[string][]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return graph.Vertex{}, malformed(err, "g:Vertex")
	}
	id, err := decodeRaw(body.ID)
	if err != nil {
		return graph.Vertex{}, err
	}
	v := graph.Vertex{ID: id, Label: body.Label}
	if len(body.Properties) == 0 {
		return v, nil
	}
	v.Properties = make(map[string][]graph.VertexProperty, len(body.Properties))
	for key, items := range body.Properties {
		props := make([]graph.VertexProperty, 0, len(items))
		for _, item := range items {
			pv, err := decodeRaw(item)
			if err != nil {
				return graph.Vertex{}, err
			}
			p, err := graph.As[graph.VertexProperty](pv)
			if err != nil {
				return graph.Vertex{}, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "vertex property %q", key)
			}
			props = append(props, p)
		}
		v.Properties[key] = props
	}
	return v, nil
}

func decodeEdge(raw json.RawMessage) (graph.Edge, error) {
	var body struct {
		ID         json.RawMessage            `json:"id"`
		Label      string                     `json:"label"`
		InV        json.RawMessage            `json:"inV"`
		InVLabel   string                     `json:"inVLabel"`
		OutV       json.RawMessage            `json:"outV"`
		OutVLabel  string                     `json:"outVLabel"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return graph.Edge{}, malformed(err, "g:Edge")
	}
	id, err := decodeRaw(body.ID)
	if err != nil {
		return graph.Edge{}, err
	}
	inV, err := decodeRaw(body.InV)
	if err != nil {
		return graph.Edge{}, err
	}
	outV, err := decodeRaw(body.OutV)
	if err != nil {
		return graph.Edge{}, err
	}
	e := graph.Edge{
		ID:    id,
		Label: body.Label,
		InV:   graph.Vertex{ID: inV, Label: body.InVLabel},
		OutV:  graph.Vertex{ID: outV, Label: body.OutVLabel},
	}
	if len(body.Properties) == 0 {
		return e, nil
	}
	e.Properties = make(map[string]graph.Property, len(body.Properties))
	for key, item := range body.Properties {
		pv, err := decodeRaw(item)
		if err != nil {
			return graph.Edge{}, err
		}
		if p, err := graph.As[graph.Property](pv); err == nil {
			e.Properties[key] = p
		} else {
			e.Properties[key] = graph.Property{Key: key, Value: pv}
		}
	}
	return e, nil
}

func decodeVertexProperty(raw json.RawMessage) (graph.VertexProperty, error) {
	var body struct {
		ID    json.RawMessage `json:"id"`
		Label string          `json:"label"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return graph.VertexProperty{}, malformed(err, "g:VertexProperty")
	}
	id, err := decodeRaw(body.ID)
	if err != nil {
		return graph.VertexProperty{}, err
	}
	v, err := decodeRaw(body.Value)
	if err != nil {
		return graph.VertexProperty{}, err
	}
	return graph.VertexProperty{ID: id, Label: body.Label, Value: v}, nil
}

func decodeProperty(raw json.RawMessage) (graph.Property, error) {
	var body struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return graph.Property{}, malformed(err, "g:Property")
	}
	v, err := decodeRaw(body.Value)
	if err != nil {
		return graph.Property{}, err
	}
	return graph.Property{Key: body.Key, Value: v}, nil
}

func decodePath(raw json.RawMessage) (graph.Value, error) {
	var body struct {
		Labels  json.RawMessage `json:"labels"`
		Objects json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return graph.Value{}, malformed(err, "g:Path")
	}
	labels, err := decodeRaw(body.Labels)
	if err != nil {
		return graph.Value{}, err
	}
	objects, err := decodeRaw(body.Objects)
	if err != nil {
		return graph.Value{}, err
	}
	labelSets, err := graph.As[graph.List](labels)
	if err != nil {
		return graph.Value{}, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "path labels")
	}
	objs, err := graph.As[graph.List](objects)
	if err != nil {
		return graph.Value{}, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "path objects")
	}
	p := graph.Path{Labels: make([][]string, len(labelSets)), Objects: objs}
	for i, set := range labelSets {
		items, err := graph.As[graph.List](set)
		if err != nil {
			return graph.Value{}, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "path labels")
		}
		names := make([]string, len(items))
		for j, item := range items {
			if names[j], err = graph.As[string](item); err != nil {
				return graph.Value{}, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "path labels")
			}
		}
		p.Labels[i] = names
	}
	return p.GValue(), nil
}

type traverser struct {
	bulk  int64
	value graph.Value
}

func decodeTraverser(raw json.RawMessage) (traverser, error) {
	var body struct {
		Bulk  json.RawMessage `json:"bulk"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return traverser{}, malformed(err, "g:Traverser")
	}
	bulk, err := decodeRaw(body.Bulk)
	if err != nil {
		return traverser{}, err
	}
	n, err := graph.As[int64](bulk)
	if err != nil {
		return traverser{}, gerrors.Wrap(gerrors.ErrCodeSerialization, err, "traverser bulk")
	}
	v, err := decodeRaw(body.Value)
	if err != nil {
		return traverser{}, err
	}
	return traverser{bulk: n, value: v}, nil
}

func malformed(err error, what string) error {
	return gerrors.Wrap(gerrors.ErrCodeSerialization, err, "malformed %s", what)
}

func sortedFields(m map[string]json.RawMessage) []string {
	return slices.Sorted(maps.Keys(m))
}
