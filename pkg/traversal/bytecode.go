package traversal

import (
	"slices"
	"strings"

	"github.com/matzehuels/gremlin/pkg/graph"
)

// Instruction is one operator with its arguments in call order.
type Instruction struct {
	Operator string
	Args     []graph.Value
}

// String formats the instruction as operator[arg, ...].
func (i Instruction) String() string {
	args := make([]string, len(i.Args))
	for n, a := range i.Args {
		args[n] = a.String()
	}
	return i.Operator + "[" + strings.Join(args, ", ") + "]"
}

// Bytecode is the append-only instruction log of one traversal program.
//
// Source instructions configure the traversal source; step instructions are
// the traversal proper. Instructions are never modified or removed once
// appended. The zero value is an empty program.
type Bytecode struct {
	sources []Instruction
	steps   []Instruction
}

// AddSource appends a source instruction. Any operator is accepted verbatim.
func (b *Bytecode) AddSource(op string, args []graph.Value) {
	b.sources = append(slices.Clip(b.sources), Instruction{Operator: op, Args: slices.Clone(args)})
}

// AddStep appends a step instruction. Any operator is accepted verbatim.
func (b *Bytecode) AddStep(op string, args []graph.Value) {
	b.steps = append(slices.Clip(b.steps), Instruction{Operator: op, Args: slices.Clone(args)})
}

// Sources returns a copy of the source instructions.
func (b Bytecode) Sources() []Instruction { return cloneInstructions(b.sources) }

// Steps returns a copy of the step instructions.
func (b Bytecode) Steps() []Instruction { return cloneInstructions(b.steps) }

// Len returns the number of step instructions.
func (b Bytecode) Len() int { return len(b.steps) }

// Clone returns an independent copy; appending to either copy never affects
// the other.
func (b Bytecode) Clone() Bytecode {
	return Bytecode{
		sources: cloneInstructions(b.sources),
		steps:   cloneInstructions(b.steps),
	}
}

// String formats the steps as op[args].op[args]...
func (b Bytecode) String() string {
	parts := make([]string, len(b.steps))
	for i, s := range b.steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

func cloneInstructions(in []Instruction) []Instruction {
	if in == nil {
		return nil
	}
	out := make([]Instruction, len(in))
	for i, ins := range in {
		out[i] = Instruction{Operator: ins.Operator, Args: slices.Clone(ins.Args)}
	}
	return out
}
