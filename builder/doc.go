// Package builder constructs test topologies on a core.Graph: lines and
// loops, stars, random trees, and 4-/8-connected lattices, plus the
// geographic helpers used by position-aware algorithms (randomized node
// placement, connect-in-range).
//
// Every constructor appends to the existing graph rather than replacing
// it, so topologies can be combined. Emission order is deterministic:
// node ids are assigned in construction order and links are added in
// ascending index order. Constructors that draw randomness take an
// explicit *rand.Rand so a fixed seed reproduces the exact topology.
package builder
