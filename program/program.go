// Package program is the runtime form of a lowered graph: nodes and pins in
// dense arenas, with value slots, successors and components already resolved.
package program

import "github.com/lixenwraith/nodegame/graph"

// None marks an unresolved index
const None = -1

// Pin is a runtime pin. Value is a store slot, Next a node index and
// Component a scene index; each is None when not applicable.
type Pin struct {
	ID        int
	Kind      graph.PinKind
	IsInput   bool
	Node      int
	Option    int
	Text      string
	Value     int
	Next      int
	Component int
}

// Node is a runtime node. Inputs and Outputs index Program.Pins.
type Node struct {
	Index    int
	ID       int
	Kind     graph.NodeKind
	Name     string
	Inputs   []int
	Outputs  []int
	FlipFlop bool
}

// Program is the executable graph
type Program struct {
	Nodes []Node
	Pins  []Pin
}

// In returns input pin i of node n, or nil
func (p *Program) In(n, i int) *Pin {
	if n < 0 || n >= len(p.Nodes) {
		return nil
	}
	node := &p.Nodes[n]
	if i < 0 || i >= len(node.Inputs) {
		return nil
	}
	return &p.Pins[node.Inputs[i]]
}

// Out returns output pin i of node n, or nil
func (p *Program) Out(n, i int) *Pin {
	if n < 0 || n >= len(p.Nodes) {
		return nil
	}
	node := &p.Nodes[n]
	if i < 0 || i >= len(node.Outputs) {
		return nil
	}
	return &p.Pins[node.Outputs[i]]
}

// NodesOf returns the indices of every node of kind, in order
func (p *Program) NodesOf(kind graph.NodeKind) []int {
	var out []int
	for i := range p.Nodes {
		if p.Nodes[i].Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// NewPin returns a pin with every index unresolved
func NewPin(id int, kind graph.PinKind, node int, isInput bool) Pin {
	return Pin{
		ID:        id,
		Kind:      kind,
		IsInput:   isInput,
		Node:      node,
		Value:     None,
		Next:      None,
		Component: None,
	}
}
