package graph

import (
	"fmt"

	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Opcode represents a primitive instruction kind.
type Opcode string

// Valid opcodes.
const (
	Impulse Opcode = "Impulse"
	ParDo   Opcode = "ParDo"
	GBK     Opcode = "GBK"
	Flatten Opcode = "Flatten"
	Combine Opcode = "Combine"
)

// CombinePerKeyScope is the Go SDK canonical name for the composite
// CombinePerKey scope, which is the GBK and Combine in series.
const CombinePerKeyScope = "CombinePerKey"

// Inbound represents an inbound data link from a Node.
type Inbound struct {
	// From is the incoming node in the graph.
	From *Node
}

func (i *Inbound) String() string {
	return fmt.Sprintf("In: <- %v", i.From)
}

// Outbound represents an outbound data link to a Node.
type Outbound struct {
	// To is the outgoing node in the graph.
	To *Node
}

func (o *Outbound) String() string {
	return fmt.Sprintf("Out: -> %v", o.To)
}

// MultiEdge represents a primitive data processing operation. Each node
// attached to an edge is produced or consumed by that edge.
type MultiEdge struct {
	id     int
	parent *Scope

	// Name is the name of the transform, for display.
	Name string
	// Op is the kind of operation.
	Op Opcode
	// DoFn is the DoFn for ParDo edges.
	DoFn *DoFn
	// CombineFn is the merge function for Combine edges.
	CombineFn *CombineFn

	Input  []*Inbound
	Output []*Outbound
}

// ID returns the graph-local identifier for the edge.
func (e *MultiEdge) ID() int {
	return e.id
}

// Scope returns the scope the edge was inserted into.
func (e *MultiEdge) Scope() *Scope {
	return e.parent
}

func (e *MultiEdge) String() string {
	return fmt.Sprintf("%v: %v %v -> %v", e.id, e.Op, e.Input, e.Output)
}

// NewImpulse inserts a new Impulse edge into the graph. Impulse emits a
// single empty []byte element, from which bounded sources are seeded.
func NewImpulse(g *Graph, s *Scope) *MultiEdge {
	edge := g.NewEdge(s)
	edge.Op = Impulse
	edge.Name = "Impulse"
	edge.Output = []*Outbound{{To: g.NewNode(Single)}}
	return edge
}

// NewParDo inserts a new ParDo edge into the graph, binding the DoFn to the
// main input node. The signature of the DoFn determines the number and
// structure of outputs.
func NewParDo(g *Graph, s *Scope, fn *DoFn, in *Node) (*MultiEdge, error) {
	outKinds, err := bindDoFn(fn, in.Kind)
	if err != nil {
		return nil, err
	}

	edge := g.NewEdge(s)
	edge.Op = ParDo
	edge.Name = fn.Name()
	edge.DoFn = fn
	edge.Input = []*Inbound{{From: in}}
	for _, k := range outKinds {
		edge.Output = append(edge.Output, &Outbound{To: g.NewNode(k)})
	}
	return edge, nil
}

// NewGBK inserts a new GBK edge into the graph. The input must be a KV
// collection; the output is a Grouped collection.
func NewGBK(g *Graph, s *Scope, in *Node) (*MultiEdge, error) {
	if in.Kind != KV {
		return nil, errors.Errorf("input to GBK must be a KV collection: %v", in)
	}
	edge := g.NewEdge(s)
	edge.Op = GBK
	edge.Name = "GroupByKey"
	edge.Input = []*Inbound{{From: in}}
	edge.Output = []*Outbound{{To: g.NewNode(Grouped)}}
	return edge, nil
}

// NewCombine inserts a new Combine edge into the graph. The input must be a
// Grouped collection; the output is a KV collection of key and folded value.
func NewCombine(g *Graph, s *Scope, fn *CombineFn, in *Node) (*MultiEdge, error) {
	if in.Kind != Grouped {
		return nil, errors.Errorf("input to Combine must be a Grouped collection: %v", in)
	}
	edge := g.NewEdge(s)
	edge.Op = Combine
	edge.Name = fn.Name()
	edge.CombineFn = fn
	edge.Input = []*Inbound{{From: in}}
	edge.Output = []*Outbound{{To: g.NewNode(KV)}}
	return edge, nil
}

// NewFlatten inserts a new Flatten edge into the graph. The inputs must all
// have the same kind.
func NewFlatten(g *Graph, s *Scope, in []*Node) (*MultiEdge, error) {
	if len(in) < 2 {
		return nil, errors.Errorf("flatten needs at least 2 input, got %v", len(in))
	}
	kind := in[0].Kind
	for _, n := range in {
		if n.Kind != kind {
			return nil, errors.Errorf("mismatched flatten input kinds: %v, want %v", n, kind)
		}
	}
	if kind == Grouped {
		return nil, errors.New("flatten input cannot be a Grouped collection")
	}

	edge := g.NewEdge(s)
	edge.Op = Flatten
	edge.Name = "Flatten"
	for _, n := range in {
		edge.Input = append(edge.Input, &Inbound{From: n})
	}
	edge.Output = []*Outbound{{To: g.NewNode(kind)}}
	return edge, nil
}
