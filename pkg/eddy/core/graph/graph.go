// Package graph is the internal representation of the deferred execution
// graph: nodes for collections, multi-edges for transforms, and scopes for
// composite structure. It is constructed by the eddy package and consumed by
// runners.
package graph

import (
	"fmt"
	"strings"

	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// Graph represents an in-progress deferred execution graph and is easily
// translatable to an execution plan. The graph is append-only: scopes, nodes
// and edges are created but never removed, and edges reference only
// previously created nodes. Edge insertion order is therefore a valid
// topological order.
type Graph struct {
	scopes []*Scope
	edges  []*MultiEdge
	nodes  []*Node

	root *Scope
}

// New returns an empty graph with the default root scope.
func New() *Graph {
	root := &Scope{id: 0, Label: "root", Parent: nil}
	return &Graph{root: root, scopes: []*Scope{root}}
}

// Root returns the root scope of the graph.
func (g *Graph) Root() *Scope {
	return g.root
}

// NewScope inserts a new scope into the graph.
func (g *Graph) NewScope(parent *Scope, name string) *Scope {
	id := len(g.scopes)
	s := &Scope{id: id, Label: name, Parent: parent}
	g.scopes = append(g.scopes, s)
	return s
}

// NewNode inserts a new node into the graph.
func (g *Graph) NewNode(kind Kind) *Node {
	id := len(g.nodes)
	n := &Node{id: id, Kind: kind}
	g.nodes = append(g.nodes, n)
	return n
}

// NewEdge inserts a new edge into the graph. Not part of the public API.
func (g *Graph) NewEdge(parent *Scope) *MultiEdge {
	id := len(g.edges)
	e := &MultiEdge{id: id, parent: parent}
	g.edges = append(g.edges, e)
	return e
}

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Build validates the graph and returns the edges in topological order
// along with the nodes. It is called by runners only.
func (g *Graph) Build() ([]*MultiEdge, []*Node, error) {
	produced := make(map[int]int) // node id -> producing edge id
	for _, e := range g.edges {
		if e.Op == "" {
			return nil, nil, errors.Errorf("edge %v has no opcode", e.id)
		}
		for _, out := range e.Output {
			if prev, ok := produced[out.To.ID()]; ok {
				return nil, nil, errors.Errorf("node %v produced by both edge %v and %v", out.To, prev, e.id)
			}
			produced[out.To.ID()] = e.id
		}
	}
	for _, e := range g.edges {
		for _, in := range e.Input {
			pid, ok := produced[in.From.ID()]
			if !ok {
				return nil, nil, errors.Errorf("node %v consumed by edge %v has no producer", in.From, e.id)
			}
			if pid >= e.id {
				return nil, nil, errors.Errorf("edge %v consumes node %v produced by later edge %v", e.id, in.From, pid)
			}
		}
	}
	return g.edges, g.nodes, nil
}

func (g *Graph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Graph: %v edges, %v nodes", len(g.edges), len(g.nodes))
	for _, e := range g.edges {
		b.WriteString("\n  ")
		b.WriteString(e.String())
	}
	return b.String()
}
