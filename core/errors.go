package core

import "errors"

// Sentinel errors for the core package. Callers MUST use errors.Is to branch
// on these; the formatted message is not part of the contract.
var (
	// ErrNodeOutOfRange indicates an edge or query referenced a node id that
	// is not in [0, NumNodes).
	ErrNodeOutOfRange = errors.New("core: node id out of range")

	// ErrEmptyGraph indicates Builder.Freeze was called with zero nodes.
	ErrEmptyGraph = errors.New("core: graph has zero nodes")

	// ErrUnknownMode indicates a Mode value outside {Drive, Walk}.
	ErrUnknownMode = errors.New("core: unknown mode")
)
