package export

import (
	"context"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/gremlin/pkg/graph"
)

func TestToDocumentVertex(t *testing.T) {
	vx := graph.Vertex{
		ID:    graph.Int64(1).GValue(),
		Label: "person",
		Properties: map[string][]graph.VertexProperty{
			"name": {{Label: "name", Value: graph.String("marko").GValue()}},
			"age":  {{Label: "age", Value: graph.Int32(29).GValue()}},
		},
	}
	want := bson.D{
		{Key: "id", Value: int64(1)},
		{Key: "label", Value: "person"},
		{Key: "properties", Value: bson.D{
			{Key: "age", Value: bson.A{int32(29)}},
			{Key: "name", Value: bson.A{"marko"}},
		}},
	}
	if got := ToDocument(vx.GValue()); !reflect.DeepEqual(got, want) {
		t.Errorf("ToDocument =\n%v\nwant\n%v", got, want)
	}
}

func TestToDocumentEdge(t *testing.T) {
	e := graph.Edge{
		ID:         graph.Int32(7).GValue(),
		Label:      "knows",
		OutV:       graph.Vertex{ID: graph.Int64(1).GValue(), Label: "person"},
		InV:        graph.Vertex{ID: graph.Int64(2).GValue(), Label: "person"},
		Properties: map[string]graph.Property{"weight": {Key: "weight", Value: graph.Double(0.5).GValue()}},
	}
	doc := ToDocument(e.GValue())
	m := doc.Map()
	if m["label"] != "knows" || m["outV"] != int64(1) || m["inV"] != int64(2) {
		t.Errorf("doc = %v", doc)
	}
	props, ok := m["properties"].(bson.D)
	if !ok || props.Map()["weight"] != 0.5 {
		t.Errorf("properties = %v", m["properties"])
	}
}

func TestToDocumentWrapsOtherValues(t *testing.T) {
	var groups graph.Map
	groups.Put(graph.Vertex{ID: graph.Int64(1).GValue()}, graph.Int64(2))

	var named graph.Map
	named.Put(graph.String("person"), graph.Int64(4))

	tests := []struct {
		name  string
		value graph.Value
		want  bson.D
	}{
		{"scalar", graph.Int64(6).GValue(), bson.D{{Key: "value", Value: int64(6)}}},
		{"null", graph.Null(), bson.D{{Key: "value", Value: nil}}},
		{"list", graph.List{graph.String("a").GValue()}.GValue(), bson.D{{Key: "value", Value: bson.A{"a"}}}},
		{"string keyed map", named.GValue(), bson.D{{Key: "person", Value: int64(4)}}},
		{"element keyed map", groups.GValue(), bson.D{{Key: "value", Value: bson.A{
			bson.D{{Key: "key", Value: bson.D{{Key: "id", Value: int64(1)}, {Key: "label", Value: ""}}}, {Key: "value", Value: int64(2)}},
		}}}},
		{"token", graph.TLabel.GValue(), bson.D{{Key: "value", Value: "label"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToDocument(tt.value); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToDocument = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToDocumentMarshals(t *testing.T) {
	p := graph.Path{
		Labels:  [][]string{{"a"}, {}},
		Objects: graph.List{graph.Vertex{ID: graph.Int64(1).GValue(), Label: "person"}.GValue(), graph.String("lop").GValue()},
	}
	if _, err := bson.Marshal(ToDocument(p.GValue())); err != nil {
		t.Errorf("bson.Marshal: %v", err)
	}
}

func TestWriteNothing(t *testing.T) {
	n, err := NewSink(nil).Write(context.Background(), nil)
	if n != 0 || err != nil {
		t.Errorf("Write(nil) = %d, %v", n, err)
	}
}
