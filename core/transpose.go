package core

// Transpose returns the reverse-direction CSR graph of g: an edge u->v with
// weight w in g becomes v->u with weight w in the result. DAnchorKernel uses
// this to run "from POI to anchor" SSSPs with a single multi-source pass per
// label.
//
// Transpose is deterministic counting-sort, O(N+M), so a rebuilt transpose
// of the same graph is byte-identical. The result is an ordinary in-memory
// graph; compute-d-anchor builds it once per run and shares it read-only
// across D_anchor workers.
func (g *CsrGraph) Transpose() *CsrGraph {
	n := g.NumNodes()
	m := g.NumEdges()

	inDegree := make([]uint32, n+1)
	for _, v := range g.Indices {
		inDegree[v+1]++
	}
	for i := 0; i < n; i++ {
		inDegree[i+1] += inDegree[i]
	}
	tIndptr := inDegree

	tIndices := make([]uint32, m)
	tWeights := make([]uint32, m)
	cursor := make([]uint32, n)
	copy(cursor, tIndptr[:n])

	for u := 0; u < n; u++ {
		start, end := g.Indptr[u], g.Indptr[u+1]
		for e := start; e < end; e++ {
			v := g.Indices[e]
			pos := cursor[v]
			tIndices[pos] = uint32(u)
			tWeights[pos] = g.Weights[e]
			cursor[v]++
		}
	}

	sortAdjacency(tIndptr, tIndices, tWeights)

	return &CsrGraph{
		Indptr:  tIndptr,
		Indices: tIndices,
		Weights: tWeights,
		NodeLon: g.NodeLon,
		NodeLat: g.NodeLat,
		Mode:    g.Mode,
	}
}
