package builder

import "errors"

// Sentinel errors for topology construction.
var (
	// ErrTooFewNodes indicates a node count below the constructor's minimum.
	ErrTooFewNodes = errors.New("builder: too few nodes")

	// ErrBadDimensions indicates non-positive lattice dimensions.
	ErrBadDimensions = errors.New("builder: lattice dimensions must be positive")

	// ErrBadRange indicates a non-positive geographic range.
	ErrBadRange = errors.New("builder: range must be positive")

	// ErrNoPositions indicates a geographic helper was called on a graph
	// without position data.
	ErrNoPositions = errors.New("builder: graph has no positions")
)
