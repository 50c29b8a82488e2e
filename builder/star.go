package builder

import (
	"fmt"

	"github.com/graphnet/routesim/core"
)

// minStarLeaves is the smallest number of spokes that makes a star.
const minStarLeaves = 1

// Star appends a hub node and leaves spoke nodes, each linked to the
// hub. Returns the new node ids; the hub is the first entry.
//
// Determinism: the hub is allocated first, leaves follow in ascending
// index order, spokes are emitted hub→leaf in the same order.
// Complexity: O(leaves).
func Star(g *core.Graph, leaves int) ([]core.NodeID, error) {
	if leaves < minStarLeaves {
		return nil, fmt.Errorf("star: leaves=%d < min=%d: %w", leaves, minStarLeaves, ErrTooFewNodes)
	}

	ids := g.AddNodes(leaves + 1)
	hub := ids[0]
	for _, leaf := range ids[1:] {
		if err := g.AddLink(hub, leaf); err != nil {
			return nil, fmt.Errorf("star: spoke %d—%d: %w", hub, leaf, err)
		}
	}

	return ids, nil
}
