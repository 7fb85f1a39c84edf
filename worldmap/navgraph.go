package worldmap

import "github.com/lixenwraith/driftwood/navgraph"

// tileSampler adapts a MapMeta's authored tile layers to navgraph.TileSampler,
// ported from create_nav_graph's own two-pass node/semi-solid bookkeeping
// (original_source/core/src/map.rs): every grid cell starts traversable,
// then each authored tile layer's tiles mark their cell solid or semi-solid,
// last layer wins if two tile layers disagree about the same cell.
type tileSampler struct {
	width, height int
	authored      []bool
	jumpThrough   []bool
}

func (s *tileSampler) idx(x, y int) int { return y*s.width + x }

func (s *tileSampler) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return true
	}
	return s.authored[s.idx(x, y)]
}

func (s *tileSampler) JumpThrough(x, y int) bool {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return false
	}
	return s.jumpThrough[s.idx(x, y)]
}

func newTileSampler(meta *MapMeta) *tileSampler {
	s := &tileSampler{
		width:       meta.GridWidth,
		height:      meta.GridHeight,
		authored:    make([]bool, meta.GridWidth*meta.GridHeight),
		jumpThrough: make([]bool, meta.GridWidth*meta.GridHeight),
	}
	for _, layer := range meta.Layers {
		if layer.Kind != LayerTile {
			continue
		}
		for _, t := range layer.Tiles {
			if t.X < 0 || t.Y < 0 || t.X >= s.width || t.Y >= s.height {
				continue
			}
			i := s.idx(t.X, t.Y)
			s.authored[i] = true
			s.jumpThrough[i] = t.JumpThrough
		}
	}
	return s
}

// BuildNavGraph builds the navigation graph for a loaded map's tile layers
// (spec §4.6), to be registered once as a match resource and reused by every
// AI agent for the lifetime of the match.
func BuildNavGraph(meta *MapMeta) *navgraph.Graph {
	sampler := newTileSampler(meta)
	return navgraph.Build(meta.GridWidth, meta.GridHeight, sampler)
}
