// Package navgraph builds the per-map navigation graph described in spec
// §4.6: one node per non-solid tile, edges carrying a concrete multi-frame
// PlayerControl program an AI can replay to move between tiles. It is a
// close port of the original Rust core's create_nav_graph (original_source
// /core/src/map.rs), restructured around plain maps keyed by tile
// coordinate and filled in ascending (x, y) order, in the spirit of the
// teacher's navigation.RouteGraph (navigation/routegraph.go) -- no generic
// graph library, so the builder stays small and its output is trivially
// comparable for determinism tests.
package navgraph

import (
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/input"
)

// NavNode names a tile by its grid coordinates.
type NavNode struct {
	X, Y int
}

func (n NavNode) Right() NavNode { return NavNode{n.X + 1, n.Y} }
func (n NavNode) Above() NavNode { return NavNode{n.X, n.Y + 1} }

func (n NavNode) Left() (NavNode, bool) {
	if n.X <= 0 {
		return NavNode{}, false
	}
	return NavNode{n.X - 1, n.Y}, true
}

func (n NavNode) Below() (NavNode, bool) {
	if n.Y <= 0 {
		return NavNode{}, false
	}
	return NavNode{n.X, n.Y - 1}, true
}

func (n NavNode) BelowLeft() (NavNode, bool) {
	l, ok := n.Left()
	if !ok {
		return NavNode{}, false
	}
	return l.Below()
}

func (n NavNode) BelowRight() (NavNode, bool) {
	b, ok := n.Below()
	if !ok {
		return NavNode{}, false
	}
	return b.Right(), true
}

func (n NavNode) AboveLeft() (NavNode, bool) {
	l, ok := n.Left()
	if !ok {
		return NavNode{}, false
	}
	return l.Above(), true
}

func (n NavNode) AboveRight() NavNode { return n.Right().Above() }

// Edge represents one motion primitive between two tiles: a concrete input
// program and the heuristic distance used by A* (spec §4.6 "distance used
// as the heuristic").
type Edge struct {
	To       NavNode
	Inputs   []input.Control
	Distance float64
}

// Graph is the built, immutable navigation graph for a map: one adjacency
// list per node, addressed by grid coordinate (spec §4.6 "the result is
// shared immutable state for all AI").
type Graph struct {
	Width, Height int
	nodes         map[NavNode][]Edge
	semiSolid     map[NavNode]bool
	present       map[NavNode]bool
}

// TileSampler reports tile solidity for the builder: Solid(x, y) reports
// whether an authored tile occupies the cell (jump-through tiles included);
// JumpThrough(x, y) is consulted only for cells Solid reports true, and
// turns such a cell into a semi-solid node instead of excluding it (spec's
// "jump-through tiles are included but marked semi-solid").
type TileSampler interface {
	Solid(x, y int) bool
	JumpThrough(x, y int) bool
}

// Build constructs the navigation graph for a width x height tile grid,
// ported directly from create_nav_graph: every non-solid tile becomes a
// node, then each node is given edges for fall/walk/jump motion primitives
// it can legally perform (spec §4.6).
func Build(width, height int, tiles TileSampler) *Graph {
	g := &Graph{
		Width: width, Height: height,
		nodes:     make(map[NavNode][]Edge),
		semiSolid: make(map[NavNode]bool),
		present:   make(map[NavNode]bool),
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if tiles.Solid(x, y) {
				if tiles.JumpThrough(x, y) {
					g.semiSolid[NavNode{x, y}] = true
					g.present[NavNode{x, y}] = true
				}
				continue
			}
			g.present[NavNode{x, y}] = true
		}
	}

	isSolid := func(n NavNode) bool {
		return !g.present[n] || g.semiSolid[n]
	}

	// Iterate nodes in ascending (x, y) order, never by ranging the map, so
	// edge-list construction is bit-exact across peers (spec §4.1/§5
	// "ascending index" determinism).
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			n := NavNode{x, y}
			if g.present[n] {
				g.buildEdgesFor(n, isSolid)
			}
		}
	}
	return g
}

func (g *Graph) has(n NavNode) bool { return g.present[n] }

func (g *Graph) addEdge(from, to NavNode, e Edge) {
	e.To = to
	g.nodes[from] = append(g.nodes[from], e)
}

func (g *Graph) buildEdgesFor(node NavNode, isSolid func(NavNode) bool) {
	// Fall straight down.
	if below, ok := node.Below(); ok && g.has(below) {
		if g.semiSolid[below] {
			g.addEdge(node, below, Edge{
				Inputs: []input.Control{
					jumpThroughControl(0, -1, true),
					jumpThroughControl(0, -1, false),
					{}, {},
				},
				Distance: 1.0,
			})
		} else {
			g.addEdge(node, below, Edge{Inputs: []input.Control{{}}, Distance: 1.0})
		}
	}

	// Fall diagonally down-right.
	if br, ok := node.BelowRight(); ok && g.has(br) {
		if g.semiSolid[br] {
			g.addEdge(node, br, Edge{
				Inputs: []input.Control{
					jumpThroughControl(1, -1, true),
					jumpThroughControl(1, -1, false),
					lateralControl(1, false),
					lateralControl(1, false),
				},
				Distance: 1.0,
			})
		} else {
			g.addEdge(node, br, Edge{Inputs: []input.Control{lateralControl(1, false)}, Distance: 1.41})
		}
	}

	// Fall diagonally down-left.
	if bl, ok := node.BelowLeft(); ok && g.has(bl) {
		if g.semiSolid[bl] {
			g.addEdge(node, bl, Edge{
				Inputs: []input.Control{
					jumpThroughControl(-1, -1, true),
					jumpThroughControl(-1, -1, false),
					lateralControl(-1, false),
					lateralControl(-1, false),
				},
				Distance: 1.0,
			})
		} else {
			g.addEdge(node, bl, Edge{Inputs: []input.Control{lateralControl(-1, false)}, Distance: 1.41})
		}
	}

	hasGround := func() bool {
		if b, ok := node.Below(); ok && isSolid(b) {
			return true
		}
		if bl, ok := node.BelowLeft(); ok && isSolid(bl) {
			return true
		}
		if br, ok := node.BelowRight(); ok && isSolid(br) {
			return true
		}
		return false
	}()

	if hasGround {
		right := node.Right()
		if g.has(right) {
			g.addEdge(node, right, Edge{Inputs: []input.Control{lateralControl(1, true)}, Distance: 1.0})
		}
		if left, ok := node.Left(); ok && g.has(left) {
			g.addEdge(node, left, Edge{Inputs: []input.Control{lateralControl(-1, true)}, Distance: 1.0})
		}

		above1 := node.Above()
		above2 := above1.Above()
		if g.has(above1) && g.has(above2) {
			g.addEdge(node, above2, Edge{
				Inputs:   []input.Control{{JumpPressed: true, JumpJustPressed: true}},
				Distance: 2.0,
			})

			above2r := above2.Right()
			if g.has(above2r) {
				g.addEdge(node, above2r, Edge{
					Inputs:   []input.Control{jumpControl(1)},
					Distance: 2.23,
				})
			}
			if above2rr := above2r.Right(); g.has(above2rr) {
				g.addEdge(node, above2rr, Edge{
					Inputs:   []input.Control{jumpControl(1)},
					Distance: 2.82,
				})
			}

			if above2l, ok := above2.Left(); ok && g.has(above2l) {
				g.addEdge(node, above2l, Edge{
					Inputs:   []input.Control{jumpControl(-1)},
					Distance: 2.23,
				})
				if above2ll, ok2 := above2l.Left(); ok2 && g.has(above2ll) {
					g.addEdge(node, above2ll, Edge{
						Inputs:   []input.Control{jumpControl(-1)},
						Distance: 2.82,
					})
				}
			}
		}
	}
}

func jumpThroughControl(dx, dy float64, justPressed bool) input.Control {
	return input.Control{
		MoveDirection:   core.Vec2{X: dx, Y: dy},
		JumpPressed:     true,
		JumpJustPressed: justPressed,
	}
}

func lateralControl(dx float64, moving bool) input.Control {
	return input.Control{Moving: moving, MoveDirection: core.Vec2{X: dx, Y: 0}}
}

func jumpControl(dx float64) input.Control {
	return input.Control{
		MoveDirection:   core.Vec2{X: dx, Y: 0},
		JumpPressed:     true,
		JumpJustPressed: true,
	}
}

// Edges returns the outgoing edges of node in insertion order (fall-down,
// fall-diagonal, walk, jump-straight, jump-diagonal -- the fixed order
// buildEdgesFor emits them in, which is what keeps the graph construction
// deterministic across peers).
func (g *Graph) Edges(node NavNode) []Edge {
	return g.nodes[node]
}

// HasNode reports whether a tile is a traversable node (present and not
// itself semi-solid-blocked... semi-solid tiles are still nodes, only
// fully-solid non-jump-through tiles are excluded).
func (g *Graph) HasNode(node NavNode) bool { return g.present[node] }

// CloneResource satisfies ecs.cloner: a built Graph is never mutated after
// Build returns (spec §4.6 "shared immutable state for all AI"), so a
// rollback snapshot shares the same graph rather than forking it, the same
// reasoning diag.Registry's CloneResource documents for shared telemetry.
func (g *Graph) CloneResource() any {
	return g
}

// NodeCount returns the number of nodes in the graph, for tests asserting
// expected coverage against a known map.
func (g *Graph) NodeCount() int { return len(g.present) }
