// This file declares the Algorithm interface, PathRequest/PathResult,
// sentinel errors, the factory by name, and shared parameter plumbing.

package routing

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/graphnet/routesim/core"
)

// Sentinel errors for algorithm selection and parameter access.
var (
	// ErrUnknownAlgorithm indicates an unrecognized algorithm name.
	ErrUnknownAlgorithm = errors.New("routing: unknown algorithm")

	// ErrUnknownParameter indicates Get/Set with an unrecognized key.
	ErrUnknownParameter = errors.New("routing: unknown parameter")

	// ErrBadValue indicates Set with a value that does not parse for the key.
	ErrBadValue = errors.New("routing: bad parameter value")
)

// DefaultHopLimit bounds a single routing attempt. Exceeding it yields
// a non-arrived result, never an error.
const DefaultHopLimit = 100

// DefaultSeed seeds every algorithm's RNG until overridden via
// Set("seed", ...). A fixed default keeps fresh simulators reproducible.
const DefaultSeed = 42

// PathRequest asks for a path between two distinct nodes.
type PathRequest struct {
	Source core.NodeID
	Dest   core.NodeID
}

// PathResult is the outcome of one routing attempt: the visited node
// sequence (starting at the source), whether the destination was
// reached, and the number of link traversals taken.
type PathResult struct {
	Path    []core.NodeID
	Arrived bool
	Hops    int
}

// Algorithm is the polymorphic routing contract implemented by every
// variant. See the package documentation for the full contract.
type Algorithm interface {
	// Name returns the factory name of the variant.
	Name() string

	// Reset reinitializes all per-node state to nodeCount entries,
	// discarding prior state. Mandatory after every topology change.
	Reset(nodeCount int)

	// Step performs one unit of background or maintenance work against a
	// read-only view of the graph.
	Step(v core.View)

	// Route computes a path using current internal state. It must not
	// mutate persistent state. Unreachable destinations and exceeded hop
	// limits surface as a non-arrived PathResult.
	Route(v core.View, req PathRequest) PathResult

	// Get returns the string value of a named parameter.
	Get(key string) (string, error)

	// Set updates a named parameter from its string form.
	Set(key, value string) error
}

// Names lists the factory names accepted by New.
func Names() []string {
	return []string{"random", "vivaldi", "spring", "genetic", "tree"}
}

// New constructs an algorithm variant by name. The caller must Reset it
// before first use. Unknown names report ErrUnknownAlgorithm.
func New(name string) (Algorithm, error) {
	switch name {
	case "random":
		return NewRandomRouting(), nil
	case "vivaldi":
		return NewVivaldiRouting(), nil
	case "spring":
		return NewSpringRouting(), nil
	case "genetic":
		return NewGeneticRouting(), nil
	case "tree":
		return NewSpanningTreeRouting(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// assertSized panics when per-node state disagrees with the view's node
// count: a missed Reset after a topology change, which is a caller bug
// rather than a runtime condition.
func assertSized(name string, have, want int) {
	if have != want {
		panic(fmt.Sprintf("routing: %s state holds %d nodes but graph has %d: Reset was not called after a topology change", name, have, want))
	}
}

// notArrived builds the failure result for the visited prefix.
func notArrived(path []core.NodeID) PathResult {
	return PathResult{Path: path, Arrived: false, Hops: len(path) - 1}
}

// arrived builds the success result for the completed path.
func arrived(path []core.NodeID) PathResult {
	return PathResult{Path: path, Arrived: true, Hops: len(path) - 1}
}

// parseIntParam parses a positive integer Set value.
func parseIntParam(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadValue, key, value)
	}

	return n, nil
}

// parseFloatParam parses a positive float Set value.
func parseFloatParam(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadValue, key, value)
	}

	return f, nil
}

// parseSeedParam parses a seed Set value (any int64).
func parseSeedParam(value string) (int64, error) {
	s, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: seed=%q", ErrBadValue, value)
	}

	return s, nil
}

// formatInt and formatFloat render Get values.
func formatInt(n int) string { return strconv.Itoa(n) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
