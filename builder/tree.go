package builder

import (
	"fmt"
	"math/rand"

	"github.com/graphnet/routesim/core"
)

// minTreeNodes is the smallest tree that contains a link.
const minTreeNodes = 2

// Tree appends a random tree of count nodes: each node after the root
// links to a uniformly chosen earlier node, which guarantees a single
// connected acyclic component. inter extra links are then added between
// random non-adjacent node pairs to create shortcuts (an "interconnected
// tree"). Returns the new node ids.
//
// Determinism: fully determined by rng's seed.
// Complexity: O(count + inter · degree).
func Tree(g *core.Graph, count, inter int, rng *rand.Rand) ([]core.NodeID, error) {
	if count < minTreeNodes {
		return nil, fmt.Errorf("tree: count=%d < min=%d: %w", count, minTreeNodes, ErrTooFewNodes)
	}

	ids := g.AddNodes(count)
	for i := 1; i < count; i++ {
		parent := ids[rng.Intn(i)]
		if err := g.AddLink(parent, ids[i]); err != nil {
			return nil, fmt.Errorf("tree: link %d—%d: %w", parent, ids[i], err)
		}
	}

	// Extra interconnections; draws that hit existing links or self
	// pairs are retried a bounded number of times so a dense tree cannot
	// loop forever.
	attempts := 0
	maxAttempts := 10 * inter
	for added := 0; added < inter && attempts < maxAttempts; attempts++ {
		a := ids[rng.Intn(count)]
		b := ids[rng.Intn(count)]
		if a == b || g.HasLink(a, b) {
			continue
		}
		if err := g.AddLink(a, b); err != nil {
			return nil, fmt.Errorf("tree: interconnect %d—%d: %w", a, b, err)
		}
		added++
	}

	return ids, nil
}
