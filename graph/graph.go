// Package graph is the editable program model: nodes, pins and links
// addressed by stable numeric IDs, plus the operations an editor performs
// on them.
package graph

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/nodegame/vmath"
)

var (
	ErrUnknownKind   = errors.New("unknown node kind")
	ErrNodeNotFound  = errors.New("node not found")
	ErrPinNotFound   = errors.New("pin not found")
	ErrSameNode      = errors.New("pins belong to the same node")
	ErrSameDirection = errors.New("pins have the same direction")
	ErrKindMismatch  = errors.New("pin kinds are incompatible")
	ErrNotDropdown   = errors.New("pin has no options")
)

// NoneVariable is the first entry of the variable table
const NoneVariable = "NONE"

// Node is one instruction placed in the editor
type Node struct {
	ID       int        `json:"id"`
	Kind     NodeKind   `json:"kind"`
	Name     string     `json:"name"`
	Position vmath.Vec2 `json:"position"`
	Inputs   []int      `json:"inputs"`
	Outputs  []int      `json:"outputs"`
}

// Pin is a connection point or an editor-configured parameter of a node.
// Option, Text and Hitbox are meaningful only for matching pin kinds.
type Pin struct {
	ID      int           `json:"id"`
	Kind    PinKind       `json:"kind"`
	NodeID  int           `json:"node"`
	Index   int           `json:"index"`
	IsInput bool          `json:"input"`
	Option  int           `json:"option,omitempty"`
	Text    string        `json:"text,omitempty"`
	Hitbox  vmath.Polygon `json:"hitbox,omitempty"`
}

// Link joins an output pin to an input pin
type Link struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// Graph is the whole editable program
type Graph struct {
	Nodes      []Node   `json:"nodes"`
	Pins       []Pin    `json:"pins"`
	Links      []Link   `json:"links"`
	Variables  []string `json:"-"`
	NextNodeID int      `json:"next_node_id"`
	NextPinID  int      `json:"next_pin_id"`
}

// New returns an empty graph with the variable table initialized
func New() *Graph {
	g := &Graph{}
	g.RefreshVariables()
	return g
}

// Node returns the node with id, or nil
func (g *Graph) Node(id int) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Pin returns the pin with id, or nil
func (g *Graph) Pin(id int) *Pin {
	for i := range g.Pins {
		if g.Pins[i].ID == id {
			return &g.Pins[i]
		}
	}
	return nil
}

// InputPin returns the i-th input pin of node id, or nil
func (g *Graph) InputPin(nodeID, i int) *Pin {
	n := g.Node(nodeID)
	if n == nil || i < 0 || i >= len(n.Inputs) {
		return nil
	}
	return g.Pin(n.Inputs[i])
}

// OutputPin returns the i-th output pin of node id, or nil
func (g *Graph) OutputPin(nodeID, i int) *Pin {
	n := g.Node(nodeID)
	if n == nil || i < 0 || i >= len(n.Outputs) {
		return nil
	}
	return g.Pin(n.Outputs[i])
}

// UniqueName returns "base N" with the smallest N not used by any node
func (g *Graph) UniqueName(base string) string {
	for suffix := 1; ; suffix++ {
		name := fmt.Sprintf("%s %d", base, suffix)
		taken := false
		for i := range g.Nodes {
			if g.Nodes[i].Name == name {
				taken = true
				break
			}
		}
		if !taken {
			return name
		}
	}
}

// AddNode creates a node of kind with its pins and returns the node ID
func (g *Graph) AddNode(kind NodeKind, pos vmath.Vec2) (int, error) {
	info, ok := InfoOf(kind)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	node := Node{
		ID:       g.NextNodeID,
		Kind:     kind,
		Position: pos,
	}
	g.NextNodeID++

	switch {
	case kind.IsVariable():
		node.Name = g.UniqueName(kind.defaultName())
	case kind == KindGetVariable || kind == KindSetVariable:
		node.Name = ""
	default:
		node.Name = fmt.Sprintf("Node %d", node.ID)
	}

	for i, pk := range info.Inputs {
		node.Inputs = append(node.Inputs, g.newPin(node.ID, true, pk, i))
	}
	for i, pk := range info.Outputs {
		node.Outputs = append(node.Outputs, g.newPin(node.ID, false, pk, i))
	}

	g.Nodes = append(g.Nodes, node)
	if kind.IsVariable() {
		g.RefreshVariables()
	}
	return node.ID, nil
}

func (g *Graph) newPin(nodeID int, isInput bool, kind PinKind, index int) int {
	pin := Pin{
		ID:      g.NextPinID,
		Kind:    kind,
		NodeID:  nodeID,
		Index:   index,
		IsInput: isInput,
	}
	g.NextPinID++

	switch kind {
	case PinFieldNumber:
		pin.Text = "0"
	case PinFieldBool:
		pin.Text = "false"
	case PinFieldColor:
		pin.Text = "00000000"
	case PinFieldKey:
		pin.Option = KeyNone
	}

	g.Pins = append(g.Pins, pin)
	return pin.ID
}

// RemoveNode deletes a node together with its pins and every link touching them
func (g *Graph) RemoveNode(id int) error {
	idx := -1
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}

	wasVariable := g.Nodes[idx].Kind.IsVariable()
	owned := make(map[int]bool)
	for _, p := range g.Nodes[idx].Inputs {
		owned[p] = true
	}
	for _, p := range g.Nodes[idx].Outputs {
		owned[p] = true
	}

	links := g.Links[:0]
	for _, l := range g.Links {
		if !owned[l.Input] && !owned[l.Output] {
			links = append(links, l)
		}
	}
	g.Links = links

	pins := g.Pins[:0]
	for _, p := range g.Pins {
		if !owned[p.ID] {
			pins = append(pins, p)
		}
	}
	g.Pins = pins

	g.Nodes = append(g.Nodes[:idx], g.Nodes[idx+1:]...)
	if wasVariable {
		g.RefreshVariables()
	}
	return nil
}

// Connect links two pins given in either order. A value input keeps only
// its newest link and a flow output keeps only its newest successor.
func (g *Graph) Connect(a, b int) error {
	pa, pb := g.Pin(a), g.Pin(b)
	if pa == nil {
		return fmt.Errorf("%w: %d", ErrPinNotFound, a)
	}
	if pb == nil {
		return fmt.Errorf("%w: %d", ErrPinNotFound, b)
	}
	if pa.NodeID == pb.NodeID {
		return ErrSameNode
	}
	if pa.IsInput == pb.IsInput {
		return ErrSameDirection
	}
	if !compatible(pa.Kind, pb.Kind) {
		return fmt.Errorf("%w: %d and %d", ErrKindMismatch, pa.Kind, pb.Kind)
	}

	in, out := pa, pb
	if !in.IsInput {
		in, out = pb, pa
	}

	links := g.Links[:0]
	for _, l := range g.Links {
		if l.Input == in.ID && in.Kind != PinFlow {
			continue
		}
		if l.Output == out.ID && out.Kind == PinFlow {
			continue
		}
		links = append(links, l)
	}
	g.Links = append(links, Link{Input: in.ID, Output: out.ID})
	return nil
}

// Disconnect removes every link touching pin id
func (g *Graph) Disconnect(id int) {
	links := g.Links[:0]
	for _, l := range g.Links {
		if l.Input != id && l.Output != id {
			links = append(links, l)
		}
	}
	g.Links = links
}

func compatible(a, b PinKind) bool {
	if a == PinFlow || b == PinFlow {
		return a == b
	}
	if !a.IsValue() || !b.IsValue() {
		return false
	}
	return a == b || a == PinAny || b == PinAny || a == PinUnknown || b == PinUnknown
}

// RefreshVariables rebuilds the variable table: NoneVariable followed by
// the names of variable constructors in node order
func (g *Graph) RefreshVariables() {
	g.Variables = g.Variables[:0]
	g.Variables = append(g.Variables, NoneVariable)
	for i := range g.Nodes {
		if g.Nodes[i].Kind.IsVariable() {
			g.Variables = append(g.Variables, g.Nodes[i].Name)
		}
	}
}

// VariableKind returns the constructor kind behind variable table entry i
func (g *Graph) VariableKind(i int) NodeKind {
	if i <= 0 || i >= len(g.Variables) {
		return KindUnknown
	}
	for j := range g.Nodes {
		if g.Nodes[j].Kind.IsVariable() && g.Nodes[j].Name == g.Variables[i] {
			return g.Nodes[j].Kind
		}
	}
	return KindUnknown
}

// Rename changes a node's display name and refreshes the variable table
func (g *Graph) Rename(id int, name string) error {
	n := g.Node(id)
	if n == nil {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	n.Name = name
	if n.Kind.IsVariable() {
		g.RefreshVariables()
	}
	return nil
}

// SetText sets the literal payload of a field pin
func (g *Graph) SetText(pinID int, text string) error {
	p := g.Pin(pinID)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrPinNotFound, pinID)
	}
	p.Text = text
	return nil
}

// SetKey binds a key code to an on-button key pin
func (g *Graph) SetKey(pinID, code int) error {
	p := g.Pin(pinID)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrPinNotFound, pinID)
	}
	p.Option = NormalizeKey(code)
	return nil
}

// SetHitbox attaches a polygon to an edit-hitbox pin
func (g *Graph) SetHitbox(pinID int, poly vmath.Polygon) error {
	p := g.Pin(pinID)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrPinNotFound, pinID)
	}
	p.Hitbox = append(vmath.Polygon(nil), poly...)
	return nil
}

// SetOption selects a dropdown entry. Selecting a variable on a get/set
// node patches the node's value pins to the variable's kind.
func (g *Graph) SetOption(pinID, option int) error {
	p := g.Pin(pinID)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrPinNotFound, pinID)
	}
	if !p.Kind.IsDropdown() {
		return fmt.Errorf("%w: %d", ErrNotDropdown, pinID)
	}
	p.Option = option

	if p.Kind != PinVariable {
		return nil
	}
	n := g.Node(p.NodeID)
	if n == nil {
		return nil
	}
	vk := g.VariableKind(option).VariableValueKind()
	switch n.Kind {
	case KindGetVariable:
		if out := g.OutputPin(n.ID, 0); out != nil {
			out.Kind = vk
		}
	case KindSetVariable:
		if in := g.InputPin(n.ID, 2); in != nil {
			in.Kind = vk
		}
		if out := g.OutputPin(n.ID, 1); out != nil {
			out.Kind = vk
		}
	}
	return nil
}

// OptionCount returns how many options a dropdown pin offers
func (g *Graph) OptionCount(kind PinKind) int {
	switch kind {
	case PinComparison:
		return len(ComparisonOptions)
	case PinGate:
		return len(GateOptions)
	case PinArithmetic:
		return len(ArithmeticOptions)
	case PinKeyAction:
		return len(KeyActionOptions)
	case PinLayer:
		return len(LayerOptions)
	case PinVariable, PinSpriteVariable:
		return len(g.Variables)
	}
	return 0
}

// ClampOption returns option when it lies in [0, count), otherwise 0
func ClampOption(option, count int) int {
	if option < 0 || option >= count {
		return 0
	}
	return option
}
