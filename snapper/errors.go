package snapper

import "errors"

// ErrEmptyGraph indicates Snapper.New was called with a graph of zero
// nodes; there is nothing to snap onto.
var ErrEmptyGraph = errors.New("snapper: graph has zero nodes")
