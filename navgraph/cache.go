package navgraph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/input"
)

func controlFromCache(in cacheControl) input.Control {
	return input.Control{
		Moving:          in.Moving,
		MoveDirection:   core.Vec2{X: in.MoveX, Y: in.MoveY},
		JumpPressed:     in.JumpPressed,
		JumpJustPressed: in.JumpJustPressed,
	}
}

// cacheEdge and cacheNode are the yaml-serializable mirror of Graph's
// internal maps: yaml.v3 round-trips structs and slices cleanly but not
// map keys that are themselves structs, so the cache format flattens
// NavNode keys into explicit X/Y fields (grounded on SPEC_FULL's promise
// to wire yaml.v3 for a "navgraph cache" component).
type cacheEdge struct {
	ToX      int       `yaml:"to_x"`
	ToY      int       `yaml:"to_y"`
	Distance float64   `yaml:"distance"`
	Inputs   []cacheControl `yaml:"inputs"`
}

type cacheControl struct {
	Moving          bool    `yaml:"moving,omitempty"`
	MoveX           float64 `yaml:"move_x,omitempty"`
	MoveY           float64 `yaml:"move_y,omitempty"`
	JumpPressed     bool    `yaml:"jump_pressed,omitempty"`
	JumpJustPressed bool    `yaml:"jump_just_pressed,omitempty"`
}

type cacheNode struct {
	X     int         `yaml:"x"`
	Y     int         `yaml:"y"`
	Edges []cacheEdge `yaml:"edges"`
}

type cacheFile struct {
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Nodes  []cacheNode `yaml:"nodes"`
}

// Save writes g to path in the yaml cache format, nodes emitted in
// ascending (x, y) order and each node's edges in their stored build order,
// for a byte-stable file across rebuilds of the same map.
func Save(g *Graph, path string) error {
	file := cacheFile{Width: g.Width, Height: g.Height}

	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			n := NavNode{x, y}
			if !g.present[n] {
				continue
			}
			node := cacheNode{X: x, Y: y}
			for _, e := range g.Edges(n) {
				ce := cacheEdge{ToX: e.To.X, ToY: e.To.Y, Distance: e.Distance}
				for _, in := range e.Inputs {
					ce.Inputs = append(ce.Inputs, cacheControl{
						Moving:          in.Moving,
						MoveX:           in.MoveDirection.X,
						MoveY:           in.MoveDirection.Y,
						JumpPressed:     in.JumpPressed,
						JumpJustPressed: in.JumpJustPressed,
					})
				}
				node.Edges = append(node.Edges, ce)
			}
			file.Nodes = append(file.Nodes, node)
		}
	}

	out, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("navgraph: marshal cache: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("navgraph: write cache %q: %w", path, err)
	}
	return nil
}

// Load reads a previously Saved cache back into a Graph, skipping the
// builder entirely -- used by hosts that ship a precomputed cache alongside
// a map asset instead of rebuilding at load time.
func Load(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("navgraph: read cache %q: %w", path, err)
	}
	var file cacheFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("navgraph: unmarshal cache %q: %w", path, err)
	}

	g := &Graph{
		Width: file.Width, Height: file.Height,
		nodes:     make(map[NavNode][]Edge),
		semiSolid: make(map[NavNode]bool),
		present:   make(map[NavNode]bool),
	}
	for _, node := range file.Nodes {
		n := NavNode{node.X, node.Y}
		g.present[n] = true
		for _, ce := range node.Edges {
			edge := Edge{To: NavNode{ce.ToX, ce.ToY}, Distance: ce.Distance}
			for _, in := range ce.Inputs {
				edge.Inputs = append(edge.Inputs, controlFromCache(in))
			}
			g.nodes[n] = append(g.nodes[n], edge)
		}
	}
	return g, nil
}
