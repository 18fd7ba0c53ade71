// Package hexagg implements HexAggregator: it folds per-node K-best anchor
// labels into per-hex K-best labels at every requested resolution,
// preserving hierarchical parent-ge-child monotonicity.
//
// The finest resolution is aggregated directly from kbest.NodeResult rows;
// every coarser resolution is folded from the resolution just produced
// (never re-aggregated from nodes), which is what makes the monotonicity
// invariant hold by construction — a parent group's input is exactly the
// union of its children's already-winnowed label sets, so it can only keep
// labels at least as good as what each child kept.
package hexagg
