package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/core"
)

func TestTranspose_ReversesEdges(t *testing.T) {
	b := core.NewBuilder(core.Drive, make([]float32, 3), make([]float32, 3))
	require.NoError(t, b.AddEdge(0, 1, 10))
	require.NoError(t, b.AddEdge(0, 2, 20))
	require.NoError(t, b.AddEdge(1, 2, 5))
	g, err := b.Freeze()
	require.NoError(t, err)

	tg := g.Transpose()
	require.Equal(t, g.NumNodes(), tg.NumNodes())
	require.Equal(t, g.NumEdges(), tg.NumEdges())

	// Node 2 had in-edges from 0 (w=20) and 1 (w=5); in the transpose those
	// become out-edges of node 2, sorted ascending by neighbor id.
	start, end := tg.EdgesFrom(2)
	require.Equal(t, 2, int(end-start))
	require.Equal(t, uint32(0), tg.Indices[start])
	require.Equal(t, uint32(20), tg.Weights[start])
	require.Equal(t, uint32(1), tg.Indices[start+1])
	require.Equal(t, uint32(5), tg.Weights[start+1])

	// Node 1 had a single in-edge from 0.
	start, end = tg.EdgesFrom(1)
	require.Equal(t, 1, int(end-start))
	require.Equal(t, uint32(0), tg.Indices[start])
}

func TestTranspose_DoubleTransposeIsIdentityShape(t *testing.T) {
	b := core.NewBuilder(core.Walk, make([]float32, 4), make([]float32, 4))
	require.NoError(t, b.AddEdge(0, 1, 1))
	require.NoError(t, b.AddEdge(1, 2, 1))
	require.NoError(t, b.AddEdge(2, 3, 1))
	g, err := b.Freeze()
	require.NoError(t, err)

	tt := g.Transpose().Transpose()
	require.Equal(t, g.Indptr, tt.Indptr)
	require.Equal(t, g.Indices, tt.Indices)
	require.Equal(t, g.Weights, tt.Weights)
}
