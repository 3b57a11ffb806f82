package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/nodegame/asset"
	"github.com/lixenwraith/nodegame/config"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/vmath"
)

// Init scaffolds a runnable project in dir: default settings, the starter
// texture and a demo graph. An existing graph is never overwritten.
func Init(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}

	p := paths(abs)
	if _, err := os.Stat(p.GraphPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, p.GraphPath)
	}

	tex, err := asset.DefaultTexture()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(abs, asset.DefaultTextureName), tex, 0o644); err != nil {
		return nil, err
	}

	g, err := DemoGraph()
	if err != nil {
		return nil, err
	}
	if err := g.SaveFile(p.GraphPath); err != nil {
		return nil, err
	}

	p.Settings = config.Default()
	if err := p.Settings.Save(p.SettingsPath); err != nil {
		return nil, err
	}
	p.Settings.ApplyEnv()
	return p, nil
}

// demo builds graphs node by node and keeps the first error
type demo struct {
	g   *graph.Graph
	err error
	x   float64
}

func (d *demo) node(kind graph.NodeKind) int {
	if d.err != nil {
		return 0
	}
	id, err := d.g.AddNode(kind, vmath.Vec2{X: d.x, Y: 0})
	d.x += 220
	d.err = err
	return id
}

func (d *demo) literal(kind graph.NodeKind, text string) int {
	id := d.node(kind)
	if d.err == nil {
		d.err = d.g.SetText(d.g.InputPin(id, 0).ID, text)
	}
	return id
}

func (d *demo) link(from, out, to, in int) {
	if d.err != nil {
		return
	}
	src, dst := d.g.OutputPin(from, out), d.g.InputPin(to, in)
	if src == nil || dst == nil {
		d.err = fmt.Errorf("demo link %d.%d -> %d.%d: %w", from, out, to, in, graph.ErrPinNotFound)
		return
	}
	d.err = d.g.Connect(src.ID, dst.ID)
}

func (d *demo) option(node, in, option int) {
	if d.err == nil {
		d.err = d.g.SetOption(d.g.InputPin(node, in).ID, option)
	}
}

func (d *demo) number(to, in int, text string) {
	d.link(d.literal(graph.KindLiteralNumber, text), 0, to, in)
}

// DemoGraph is a ship steered with the arrow keys inside a walled box
func DemoGraph() (*graph.Graph, error) {
	d := &demo{g: graph.New()}
	const eventsAndBlock = 3

	start := d.node(graph.KindEventStart)
	d.node(graph.KindEventTick)

	ship := d.node(graph.KindCreateSprite)
	d.link(d.literal(graph.KindLiteralString, asset.DefaultTextureName), 0, ship, 1)
	d.number(ship, 2, "32")
	d.number(ship, 3, "32")
	d.option(ship, 4, eventsAndBlock)
	if d.err == nil {
		n := float64(asset.DefaultTextureSize)
		d.err = d.g.SetHitbox(d.g.InputPin(ship, 5).ID, vmath.Polygon{
			{X: 0, Y: 0}, {X: n, Y: n / 2}, {X: 0, Y: n},
		})
	}
	d.link(start, 0, ship, 0)

	// Variable 1 is the ship
	spawn := d.node(graph.KindSpawnSprite)
	d.option(spawn, 1, 1)
	d.number(spawn, 2, "160")
	d.number(spawn, 3, "120")
	d.number(spawn, 4, "0")
	d.link(ship, 0, spawn, 0)

	wall := d.node(graph.KindPropRectangle)
	d.number(wall, 1, "320")
	d.number(wall, 2, "120")
	d.number(wall, 3, "16")
	d.number(wall, 4, "200")
	d.link(d.literal(graph.KindLiteralColor, "C0C0C0FF"), 0, wall, 5)
	d.option(wall, 6, eventsAndBlock)
	d.link(spawn, 0, wall, 0)

	hello := d.node(graph.KindPrint)
	d.link(d.literal(graph.KindLiteralString, "Arrow keys move, P pauses"), 0, hello, 1)
	d.link(wall, 0, hello, 0)

	keys := []struct {
		key   int
		angle string
	}{
		{graph.KeyRight, "0"},
		{graph.KeyUp, "90"},
		{graph.KeyLeft, "180"},
		{graph.KeyDown, "270"},
	}
	for _, k := range keys {
		btn := d.node(graph.KindEventOnButton)
		if d.err == nil {
			d.err = d.g.SetKey(d.g.InputPin(btn, 0).ID, k.key)
		}
		d.option(btn, 1, graph.KeyActionDown)

		force := d.node(graph.KindForceSprite)
		d.option(force, 1, 1)
		d.number(force, 2, "120")
		d.number(force, 3, k.angle)
		d.number(force, 4, "0.1")
		d.link(btn, 0, force, 0)
	}

	if d.err != nil {
		return nil, d.err
	}
	return d.g, nil
}
