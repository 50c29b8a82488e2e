package builder

import (
	"fmt"

	"github.com/graphnet/routesim/core"
)

// minLineNodes is the smallest line that contains a link.
const minLineNodes = 2

// Line appends a chain of count nodes: n0—n1—…—n(count-1). With
// closeLoop the two ends are connected as well, forming a ring.
// Returns the new node ids.
//
// Determinism: ids ascend in construction order; links are emitted in
// ascending index order.
// Complexity: O(count).
func Line(g *core.Graph, count int, closeLoop bool) ([]core.NodeID, error) {
	if count < minLineNodes {
		return nil, fmt.Errorf("line: count=%d < min=%d: %w", count, minLineNodes, ErrTooFewNodes)
	}

	ids := g.AddNodes(count)
	for i := 1; i < count; i++ {
		if err := g.AddLink(ids[i-1], ids[i]); err != nil {
			return nil, fmt.Errorf("line: link %d—%d: %w", ids[i-1], ids[i], err)
		}
	}
	if closeLoop && count > minLineNodes {
		if err := g.AddLink(ids[count-1], ids[0]); err != nil {
			return nil, fmt.Errorf("line: close loop: %w", err)
		}
	}

	return ids, nil
}
