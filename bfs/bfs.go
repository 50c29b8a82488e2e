package bfs

import "github.com/graphnet/routesim/core"

// Unreachable marks a node the search did not reach.
const Unreachable = -1

// NoParent marks a node without a BFS parent: the root itself and every
// node outside the root's component.
const NoParent = ^core.NodeID(0)

// walker holds the mutable search state shared by Distances and Parents.
type walker struct {
	view  core.View
	queue []core.NodeID
	dist  []int
	par   []core.NodeID
}

// Distances returns the hop distance from src to every node, with
// Unreachable (-1) for nodes in other components. Returns nil when src
// is out of range.
// Complexity: O(V + E).
func Distances(v core.View, src core.NodeID) []int {
	w := run(v, src)
	if w == nil {
		return nil
	}

	return w.dist
}

// Parents returns the BFS parent of every node for the tree rooted at
// src: par[n] is the neighbor of n one hop closer to src, NoParent for
// src itself and for unreached nodes. Returns nil when src is out of
// range.
// Complexity: O(V + E).
func Parents(v core.View, src core.NodeID) []core.NodeID {
	w := run(v, src)
	if w == nil {
		return nil
	}

	return w.par
}

// run executes the search and returns the finished walker.
func run(v core.View, src core.NodeID) *walker {
	n := v.NodeCount()
	if int(src) >= n {
		return nil
	}

	w := &walker{
		view:  v,
		queue: make([]core.NodeID, 0, n),
		dist:  make([]int, n),
		par:   make([]core.NodeID, n),
	}
	for i := range w.dist {
		w.dist[i] = Unreachable
		w.par[i] = NoParent
	}

	w.dist[src] = 0
	w.queue = append(w.queue, src)
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]
		next := w.dist[cur] + 1
		for _, nb := range w.view.Neighbors(cur) {
			if w.dist[nb] == Unreachable {
				w.dist[nb] = next
				w.par[nb] = cur
				w.queue = append(w.queue, nb)
			}
		}
	}

	return w
}
