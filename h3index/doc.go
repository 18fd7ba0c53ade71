// Package h3index implements NodeH3Indexer: it assigns every graph node a
// hierarchy-consistent set of hex identifiers at the requested resolutions,
// using github.com/uber/h3-go/v4.
//
// The one contract this package exists to enforce: for every node n and
// every resolution r below the finest requested resolution,
// cell(n, r) == parent(cell(n, r_fine), r). Coarse cells are NEVER computed
// directly from (lon, lat) — only derived from the finest cell via Parent.
// Computing each resolution independently from raw coordinates can put a
// node's coarse and fine cells in different parent hexes near a grid
// boundary, which this derivation rules out by construction.
package h3index
