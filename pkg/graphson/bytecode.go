package graphson

import (
	"encoding/json"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
	"github.com/matzehuels/gremlin/pkg/graph"
	"github.com/matzehuels/gremlin/pkg/traversal"
)

// DecodeBytecode unmarshals a g:Bytecode produced by [EncodeBytecode].
func DecodeBytecode(data []byte) (traversal.Bytecode, error) {
	var t rawTyped
	if err := json.Unmarshal(data, &t); err != nil {
		return traversal.Bytecode{}, malformed(err, "g:Bytecode")
	}
	if t.Type != "g:Bytecode" {
		return traversal.Bytecode{}, gerrors.New(gerrors.ErrCodeSerialization, "expected g:Bytecode, got %q", t.Type)
	}
	var body struct {
		Step   [][]json.RawMessage `json:"step"`
		Source [][]json.RawMessage `json:"source"`
	}
	if err := json.Unmarshal(t.Value, &body); err != nil {
		return traversal.Bytecode{}, malformed(err, "g:Bytecode")
	}
	var bc traversal.Bytecode
	for _, row := range body.Source {
		op, args, err := decodeInstruction(row)
		if err != nil {
			return traversal.Bytecode{}, err
		}
		bc.AddSource(op, args)
	}
	for _, row := range body.Step {
		op, args, err := decodeInstruction(row)
		if err != nil {
			return traversal.Bytecode{}, err
		}
		bc.AddStep(op, args)
	}
	return bc, nil
}

func decodeInstruction(row []json.RawMessage) (string, []graph.Value, error) {
	if len(row) == 0 {
		return "", nil, gerrors.New(gerrors.ErrCodeSerialization, "empty instruction")
	}
	var op string
	if err := json.Unmarshal(row[0], &op); err != nil {
		return "", nil, malformed(err, "operator")
	}
	var args []graph.Value
	for _, raw := range row[1:] {
		v, err := decodeRaw(raw)
		if err != nil {
			return "", nil, err
		}
		args = append(args, v)
	}
	return op, args, nil
}
