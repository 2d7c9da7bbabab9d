// Package export writes traversal results to MongoDB.
//
// Each result becomes one document. Elements keep their structure:
//
//	{"id": 1, "label": "person", "properties": {"name": ["marko"], "age": [29]}}
//
// Scalars, lists and paths are wrapped as {"value": ...}; maps whose keys are
// all strings become documents of their own.
package export

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/gremlin/pkg/graph"
)

// ToDocument converts one result into a BSON document.
func ToDocument(v graph.Value) bson.D {
	switch v.Kind() {
	case graph.KindVertex:
		return vertexDoc(v.Interface().(graph.Vertex))
	case graph.KindEdge:
		return edgeDoc(v.Interface().(graph.Edge))
	case graph.KindVertexProperty:
		p := v.Interface().(graph.VertexProperty)
		return bson.D{{Key: "id", Value: toBSON(p.ID)}, {Key: "label", Value: p.Label}, {Key: "value", Value: toBSON(p.Value)}}
	case graph.KindProperty:
		p := v.Interface().(graph.Property)
		return bson.D{{Key: "key", Value: p.Key}, {Key: "value", Value: toBSON(p.Value)}}
	case graph.KindMap:
		if doc, ok := stringKeyed(v.Interface().(graph.Map)); ok {
			return doc
		}
	}
	return bson.D{{Key: "value", Value: toBSON(v)}}
}

func vertexDoc(vx graph.Vertex) bson.D {
	doc := bson.D{{Key: "id", Value: toBSON(vx.ID)}, {Key: "label", Value: vx.Label}}
	if len(vx.Properties) == 0 {
		return doc
	}
	props := bson.D{}
	for _, k := range sortedKeys(vx.Properties) {
		vals := bson.A{}
		for _, p := range vx.Properties[k] {
			vals = append(vals, toBSON(p.Value))
		}
		props = append(props, bson.E{Key: k, Value: vals})
	}
	return append(doc, bson.E{Key: "properties", Value: props})
}

func edgeDoc(e graph.Edge) bson.D {
	doc := bson.D{
		{Key: "id", Value: toBSON(e.ID)},
		{Key: "label", Value: e.Label},
		{Key: "outV", Value: toBSON(e.OutV.ID)},
		{Key: "outVLabel", Value: e.OutV.Label},
		{Key: "inV", Value: toBSON(e.InV.ID)},
		{Key: "inVLabel", Value: e.InV.Label},
	}
	if len(e.Properties) == 0 {
		return doc
	}
	props := bson.D{}
	for _, k := range sortedKeys(e.Properties) {
		props = append(props, bson.E{Key: k, Value: toBSON(e.Properties[k].Value)})
	}
	return append(doc, bson.E{Key: "properties", Value: props})
}

func stringKeyed(m graph.Map) (bson.D, bool) {
	doc := make(bson.D, 0, m.Len())
	for _, e := range m.Entries() {
		k, err := graph.As[string](e.Key)
		if err != nil {
			return nil, false
		}
		doc = append(doc, bson.E{Key: k, Value: toBSON(e.Value)})
	}
	return doc, true
}

// toBSON converts a value into something the BSON encoder accepts.
func toBSON(v graph.Value) any {
	switch v.Kind() {
	case graph.KindNull:
		return nil
	case graph.KindUUID, graph.KindToken, graph.KindOrder, graph.KindPredicate:
		return v.String()
	case graph.KindList, graph.KindSet:
		items, _ := graph.As[graph.List](v)
		arr := make(bson.A, len(items))
		for i, item := range items {
			arr[i] = toBSON(item)
		}
		return arr
	case graph.KindMap:
		m := v.Interface().(graph.Map)
		if doc, ok := stringKeyed(m); ok {
			return doc
		}
		entries := bson.A{}
		for _, e := range m.Entries() {
			entries = append(entries, bson.D{{Key: "key", Value: toBSON(e.Key)}, {Key: "value", Value: toBSON(e.Value)}})
		}
		return entries
	case graph.KindPath:
		p := v.Interface().(graph.Path)
		return bson.D{{Key: "labels", Value: p.Labels}, {Key: "objects", Value: toBSON(p.Objects.GValue())}}
	case graph.KindVertex, graph.KindEdge, graph.KindVertexProperty, graph.KindProperty:
		return ToDocument(v)
	default:
		return v.Interface()
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Sink inserts results into one collection.
type Sink struct {
	coll *mongo.Collection
}

// NewSink creates a sink writing to coll.
func NewSink(coll *mongo.Collection) *Sink {
	return &Sink{coll: coll}
}

// Connect dials uri and returns a sink for database.collection along with a
// function that disconnects the client.
func Connect(ctx context.Context, uri, database, collection string) (*Sink, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping %s: %w", uri, err)
	}
	return NewSink(client.Database(database).Collection(collection)), client.Disconnect, nil
}

// Write inserts one document per value and returns how many were inserted.
func (s *Sink) Write(ctx context.Context, values []graph.Value) (int, error) {
	if len(values) == 0 {
		return 0, nil
	}
	docs := make([]any, len(values))
	for i, v := range values {
		docs[i] = ToDocument(v)
	}
	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		n := 0
		if res != nil {
			n = len(res.InsertedIDs)
		}
		return n, fmt.Errorf("insert into %s: %w", s.coll.Name(), err)
	}
	return len(res.InsertedIDs), nil
}
