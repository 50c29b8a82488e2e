// This file implements the greedy geometric forwarding rule shared by
// the vivaldi and spring embeddings.

package routing

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/graphnet/routesim/core"
)

// greedyRoute forwards from source toward the destination's coordinate:
// at each hop it moves to the neighbor whose coordinate is strictly
// closest to the destination's. Neighbor lists ascend by id and the
// comparison is strict, so equal distances resolve to the lowest id.
// The attempt fails on a local minimum (no neighbor strictly closer
// than the current node) or when hopLimit is exceeded.
func greedyRoute(v core.View, req PathRequest, coord []r3.Vec, hopLimit int) PathResult {
	target := coord[req.Dest]
	path := make([]core.NodeID, 0, hopLimit+1)
	cur := req.Source
	path = append(path, cur)

	for hops := 0; hops < hopLimit; hops++ {
		if cur == req.Dest {
			return arrived(path)
		}

		best := cur
		bestDist := r3.Norm(r3.Sub(coord[cur], target))
		for _, nb := range v.Neighbors(cur) {
			if nb == req.Dest {
				// The destination itself is always the closest choice.
				best = nb
				break
			}
			if d := r3.Norm(r3.Sub(coord[nb], target)); d < bestDist {
				best = nb
				bestDist = d
			}
		}
		if best == cur {
			// Local minimum of the embedding; greedy forwarding is stuck.
			return notArrived(path)
		}
		cur = best
		path = append(path, cur)
	}
	if cur == req.Dest {
		return arrived(path)
	}

	return notArrived(path)
}
