package navgraph

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

// DumpSVG renders g as an SVG grid for visual debugging: a filled square
// per node, semi-solid nodes shaded differently, and a line per edge from
// its source tile center to its destination tile center. tileSize is the
// on-screen pixel size of one grid cell. Grounded on SPEC_FULL's wiring of
// ajstarks/svgo for a navgraph debug dump; this is purely a development
// aid, never read back by the simulation.
func DumpSVG(g *Graph, w io.Writer, tileSize int) {
	canvas := svg.New(w)
	width := g.Width * tileSize
	height := g.Height * tileSize
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#202020")

	toScreen := func(n NavNode) (int, int) {
		return n.X * tileSize, height - (n.Y+1)*tileSize
	}

	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			n := NavNode{x, y}
			if !g.present[n] {
				continue
			}
			sx, sy := toScreen(n)
			style := "fill:#3a7d3a"
			if g.semiSolid[n] {
				style = "fill:#7d6a3a"
			}
			canvas.Rect(sx+1, sy+1, tileSize-2, tileSize-2, style)
		}
	}

	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			n := NavNode{x, y}
			for _, e := range g.Edges(n) {
				x1, y1 := toScreen(n)
				x2, y2 := toScreen(e.To)
				canvas.Line(
					x1+tileSize/2, y1+tileSize/2,
					x2+tileSize/2, y2+tileSize/2,
					"stroke:#c0c0ff;stroke-width:1;opacity:0.5",
				)
			}
		}
	}

	canvas.End()
}
