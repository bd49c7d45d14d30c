package voronoi

import "errors"

// ErrNoCrossing is the merger's one fatal error: during the chain walk,
// neither side region yielded a forward crossing of the chain's
// perpendicular ray. Per spec.md §7, this indicates a precondition
// violation (non-separable inputs) or a numeric breakdown, and is
// unrecoverable for the given input.
var ErrNoCrossing = errors.New("merge error: no crossing")
