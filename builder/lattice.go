package builder

import (
	"fmt"

	"github.com/graphnet/routesim/core"
)

// Neighbor offsets for the two lattice connectivities. Lattice4 links
// each cell to its east and south neighbor; Lattice8 additionally links
// the two forward diagonals. Linking only "forward" offsets emits every
// link exactly once.
var (
	offsets4 = [][2]int{{1, 0}, {0, 1}}
	offsets8 = [][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}}
)

// Lattice4 appends an xCount × yCount grid with orthogonal links
// (squares). Returns the new node ids in row-major order.
// Complexity: O(xCount · yCount).
func Lattice4(g *core.Graph, xCount, yCount int) ([]core.NodeID, error) {
	return lattice(g, xCount, yCount, offsets4)
}

// Lattice8 appends an xCount × yCount grid with orthogonal and diagonal
// links. Returns the new node ids in row-major order.
// Complexity: O(xCount · yCount).
func Lattice8(g *core.Graph, xCount, yCount int) ([]core.NodeID, error) {
	return lattice(g, xCount, yCount, offsets8)
}

// lattice emits the grid nodes in row-major order and links each cell
// to its forward offsets, yielding deterministic link order.
func lattice(g *core.Graph, xCount, yCount int, offsets [][2]int) ([]core.NodeID, error) {
	if xCount < 1 || yCount < 1 {
		return nil, fmt.Errorf("lattice: %dx%d: %w", xCount, yCount, ErrBadDimensions)
	}

	ids := g.AddNodes(xCount * yCount)
	at := func(x, y int) core.NodeID { return ids[y*xCount+x] }

	for y := 0; y < yCount; y++ {
		for x := 0; x < xCount; x++ {
			for _, off := range offsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= xCount || ny >= yCount {
					continue
				}
				if err := g.AddLink(at(x, y), at(nx, ny)); err != nil {
					return nil, fmt.Errorf("lattice: link (%d,%d)—(%d,%d): %w", x, y, nx, ny, err)
				}
			}
		}
	}

	return ids, nil
}
