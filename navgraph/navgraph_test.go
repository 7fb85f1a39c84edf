package navgraph

import "testing"

// flatGroundSampler is a width x height grid with a solid floor at y=0 and
// everything above it traversable, the simplest map navgraph.Build expects.
type flatGroundSampler struct {
	width, height int
	jumpThroughAt map[NavNode]bool
}

func (s *flatGroundSampler) Solid(x, y int) bool {
	if y == 0 {
		return true
	}
	return false
}

func (s *flatGroundSampler) JumpThrough(x, y int) bool {
	return s.jumpThroughAt[NavNode{x, y}]
}

func TestBuildNodeCountExcludesSolidGround(t *testing.T) {
	width, height := 5, 3
	g := Build(width, height, &flatGroundSampler{width: width, height: height})

	want := width * (height - 1) // every row except the solid floor
	if got := g.NodeCount(); got != want {
		t.Fatalf("NodeCount() = %d, want %d", got, want)
	}
	if g.HasNode(NavNode{2, 0}) {
		t.Fatalf("solid floor tile must not be a node")
	}
	if !g.HasNode(NavNode{2, 1}) {
		t.Fatalf("tile above the floor must be a node")
	}
}

func TestBuildWalkEdgeOnGround(t *testing.T) {
	width, height := 5, 3
	g := Build(width, height, &flatGroundSampler{width: width, height: height})

	edges := g.Edges(NavNode{2, 1})
	foundRight := false
	for _, e := range edges {
		if e.To == (NavNode{3, 1}) {
			foundRight = true
		}
	}
	if !foundRight {
		t.Fatalf("a grounded node must have a walk edge to its right neighbor")
	}
}

func TestFindPathAcrossFlatGround(t *testing.T) {
	width, height := 6, 3
	g := Build(width, height, &flatGroundSampler{width: width, height: height})

	path := FindPath(g, NavNode{0, 1}, NavNode{5, 1})
	if path == nil {
		t.Fatalf("expected a path across flat, fully-grounded terrain")
	}

	cur := NavNode{0, 1}
	for _, e := range path {
		cur = e.To
	}
	if cur != (NavNode{5, 1}) {
		t.Fatalf("path must end at the goal node, ended at %+v", cur)
	}
}

func TestFindPathUnreachableReturnsNil(t *testing.T) {
	width, height := 4, 4
	g := Build(width, height, &flatGroundSampler{width: width, height: height})

	if path := FindPath(g, NavNode{0, 1}, NavNode{99, 99}); path != nil {
		t.Fatalf("path to a nonexistent node must be nil")
	}
}

func TestSemiSolidJumpThroughTileIsStillANode(t *testing.T) {
	width, height := 4, 4
	sampler := &flatGroundSampler{width: width, height: height, jumpThroughAt: map[NavNode]bool{
		{1, 2}: true,
	}}
	// Mark (1,2) solid-but-jump-through by making Solid report true there too.
	wrapped := &solidOverride{flatGroundSampler: sampler, solidAt: map[NavNode]bool{{1, 2}: true}}

	g := Build(width, height, wrapped)
	if !g.HasNode(NavNode{1, 2}) {
		t.Fatalf("a jump-through tile must still be present as a node")
	}
}

type solidOverride struct {
	*flatGroundSampler
	solidAt map[NavNode]bool
}

func (s *solidOverride) Solid(x, y int) bool {
	if s.solidAt[NavNode{x, y}] {
		return true
	}
	return s.flatGroundSampler.Solid(x, y)
}
