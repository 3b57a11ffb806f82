// Package project resolves the files of a game project directory: the graph,
// the settings and the assets they reference
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/nodegame/asset"
	"github.com/lixenwraith/nodegame/config"
	"github.com/lixenwraith/nodegame/graph"
	"github.com/lixenwraith/nodegame/lower"
)

// GraphFile is the graph file name inside a project directory
const GraphFile = "graph.json"

var (
	ErrNotDir  = errors.New("project path is not a directory")
	ErrNoGraph = errors.New("project has no graph file")
	ErrExists  = errors.New("project already exists")
)

// Project is an opened project directory
type Project struct {
	Dir          string
	Name         string
	GraphPath    string
	SettingsPath string
	Settings     *config.Settings
	Loader       *asset.FileLoader
}

// Open resolves dir and loads its settings, creating the settings file when
// missing. The graph is read separately by Graph.
func Open(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, abs)
	}

	p := paths(abs)
	if _, err := os.Stat(p.GraphPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoGraph, p.GraphPath)
	}

	p.Settings, err = config.Load(p.SettingsPath)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func paths(abs string) *Project {
	name := filepath.Base(abs)
	return &Project{
		Dir:          abs,
		Name:         name,
		GraphPath:    filepath.Join(abs, GraphFile),
		SettingsPath: filepath.Join(abs, name+".yaml"),
		Loader:       asset.NewFileLoader(abs),
	}
}

// Graph reads the project graph
func (p *Project) Graph() (*graph.Graph, error) {
	return graph.LoadFile(p.GraphPath)
}

// Build reads and lowers the project graph. Texture files are re-read on
// every build.
func (p *Project) Build() (*graph.Graph, *lower.Result, error) {
	g, err := p.Graph()
	if err != nil {
		return nil, nil, err
	}
	p.Loader.Forget()
	return g, lower.Lower(g, lower.Env{Loader: p.Loader}), nil
}
