package navgraph

import "container/heap"

// FindPath runs A* from start to goal over g, using each edge's Distance
// as both the path cost and, via a Chebyshev-like grid heuristic, the
// remaining-cost estimate (spec §4.6 "A* pathfinding uses distance as the
// heuristic"). Returns the edge sequence to follow, or nil if unreachable.
func FindPath(g *Graph, start, goal NavNode) []Edge {
	if !g.HasNode(start) || !g.HasNode(goal) {
		return nil
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, heapItem{node: start, priority: heuristic(start, goal)})

	gScore := map[NavNode]float64{start: 0}
	cameFrom := map[NavNode]NavNode{}
	cameEdge := map[NavNode]Edge{}
	visited := map[NavNode]bool{}

	for open.Len() > 0 {
		cur := heap.Pop(open).(heapItem).node
		if visited[cur] {
			continue
		}
		visited[cur] = true

		if cur == goal {
			return reconstructPath(cameFrom, cameEdge, start, goal)
		}

		for _, e := range g.Edges(cur) {
			tentative := gScore[cur] + e.Distance
			if existing, ok := gScore[e.To]; !ok || tentative < existing {
				gScore[e.To] = tentative
				cameFrom[e.To] = cur
				cameEdge[e.To] = e
				heap.Push(open, heapItem{node: e.To, priority: tentative + heuristic(e.To, goal)})
			}
		}
	}
	return nil
}

func heuristic(a, b NavNode) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

func reconstructPath(cameFrom map[NavNode]NavNode, cameEdge map[NavNode]Edge, start, goal NavNode) []Edge {
	var edges []Edge
	cur := goal
	for cur != start {
		edges = append(edges, cameEdge[cur])
		cur = cameFrom[cur]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}

type heapItem struct {
	node     NavNode
	priority float64
}

type nodeHeap []heapItem

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].priority < h[j].priority }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
