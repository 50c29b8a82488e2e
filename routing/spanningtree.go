package routing

import (
	"github.com/graphnet/routesim/bfs"
	"github.com/graphnet/routesim/core"
)

// SpanningTreeRouting routes along a breadth-first spanning tree built
// per connected component, rooted at the component's lowest node id.
// Any two nodes in the same component are connected by the unique tree
// path: climb from the source toward the nearest common ancestor, then
// descend to the destination. Nodes in different components report
// non-arrived.
//
// The tree needs neighbor lists, which Reset does not see, so it is
// (re)built on the first Step after every Reset; Route before that
// first Step reports non-arrived. Once built, no further adaptation
// happens — later Steps are no-ops.
type SpanningTreeRouting struct {
	parent []core.NodeID // bfs parent, bfs.NoParent for roots
	depth  []int
	root   []core.NodeID // component root per node
	built  bool
	size   int

	hopLimit int
}

// NewSpanningTreeRouting returns an unconfigured tree router.
func NewSpanningTreeRouting() *SpanningTreeRouting {
	return &SpanningTreeRouting{hopLimit: DefaultHopLimit}
}

// Name implements Algorithm.
func (st *SpanningTreeRouting) Name() string { return "tree" }

// Reset implements Algorithm: discards the tree; the next Step rebuilds.
func (st *SpanningTreeRouting) Reset(nodeCount int) {
	st.size = nodeCount
	st.built = false
	st.parent = nil
	st.depth = nil
	st.root = nil
}

// Step implements Algorithm: builds the spanning forest once per Reset.
func (st *SpanningTreeRouting) Step(v core.View) {
	assertSized("tree", st.size, v.NodeCount())
	if st.built {
		return
	}

	n := v.NodeCount()
	st.parent = make([]core.NodeID, n)
	st.depth = make([]int, n)
	st.root = make([]core.NodeID, n)
	assigned := make([]bool, n)

	// Lowest unassigned id roots the next component, so the forest is
	// deterministic for any neighbor layout.
	for id := 0; id < n; id++ {
		if assigned[id] {
			continue
		}
		rootID := core.NodeID(id)
		parents := bfs.Parents(v, rootID)
		dists := bfs.Distances(v, rootID)
		for node, par := range parents {
			if dists[node] == bfs.Unreachable {
				continue
			}
			st.parent[node] = par
			st.depth[node] = dists[node]
			st.root[node] = rootID
			assigned[node] = true
		}
	}
	st.built = true
}

// Route implements Algorithm: the unique tree path via the nearest
// common ancestor. Mutates no persistent state.
func (st *SpanningTreeRouting) Route(v core.View, req PathRequest) PathResult {
	assertSized("tree", st.size, v.NodeCount())
	if !st.built || st.root[req.Source] != st.root[req.Dest] {
		// No tree yet, or endpoints in different components.
		return notArrived([]core.NodeID{req.Source})
	}

	// Destination-side chain up to the root, for ancestor lookups.
	onDestChain := make(map[core.NodeID]int, st.depth[req.Dest]+1)
	chain := make([]core.NodeID, 0, st.depth[req.Dest]+1)
	for cur := req.Dest; ; cur = st.parent[cur] {
		onDestChain[cur] = len(chain)
		chain = append(chain, cur)
		if st.parent[cur] == bfs.NoParent {
			break
		}
	}

	// Climb from the source until the chains meet, then descend.
	path := make([]core.NodeID, 0, st.depth[req.Source]+st.depth[req.Dest]+1)
	cur := req.Source
	for {
		path = append(path, cur)
		if _, ok := onDestChain[cur]; ok {
			break
		}
		cur = st.parent[cur]
	}
	for i := onDestChain[cur] - 1; i >= 0; i-- {
		path = append(path, chain[i])
	}

	if len(path)-1 > st.hopLimit {
		return notArrived(path[:st.hopLimit+1])
	}

	return arrived(path)
}

// Get implements Algorithm.
func (st *SpanningTreeRouting) Get(key string) (string, error) {
	switch key {
	case "name":
		return st.Name(), nil
	case "hop_limit":
		return formatInt(st.hopLimit), nil
	default:
		return "", ErrUnknownParameter
	}
}

// Set implements Algorithm.
func (st *SpanningTreeRouting) Set(key, value string) error {
	switch key {
	case "hop_limit":
		n, err := parseIntParam(key, value)
		if err != nil {
			return err
		}
		st.hopLimit = n
	default:
		return ErrUnknownParameter
	}

	return nil
}
