package graph

import (
	"testing"

	"github.com/sgsh/negotiate/side"
	"github.com/stretchr/testify/assert"
)

func TestInsertSelf_Dedup(t *testing.T) {
	assert := assert.New(t)

	var nodes []Node
	r := NewRegistry(&nodes, &[]Edge{})

	a := NewNode(100, "a", 1, 1, false, true)
	idx1, ins1 := r.InsertSelf(a)
	assert.True(ins1)
	assert.EqualValues(0, idx1)
	assert.Len(nodes, 1)

	idx2, ins2 := r.InsertSelf(a)
	assert.False(ins2)
	assert.Equal(idx1, idx2)
	assert.Len(nodes, 1)
}

func TestInsertDispatchEdge_Direction(t *testing.T) {
	assert := assert.New(t)

	var nodes []Node
	var edges []Edge
	r := NewRegistry(&nodes, &edges)

	a := NewNode(100, "a", Unlimited, 1, false, true) // sgsh_out only
	b := NewNode(101, "b", 1, Unlimited, true, false)  // sgsh_in only
	aIdx, _ := r.InsertSelf(a)
	bIdx, _ := r.InsertSelf(b)

	// block arrives at b on stdin (dispatcher a is the destination... wait:
	// arriving on stdin means dispatcher is a destination from b's perspective:
	// edge b -> a). b must be sgsh_out to forward — it isn't, so expect error.
	_, err := r.InsertDispatchEdge(aIdx, side.IN, b, bIdx)
	assert.ErrorIs(err, ErrDirection)

	// block arrives at b on stdout: dispatcher a is the source, edge a -> b.
	// b must be sgsh_in, which it is.
	inserted, err := r.InsertDispatchEdge(aIdx, side.OUT, b, bIdx)
	assert.NoError(err)
	assert.True(inserted)
	assert.Len(edges, 1)
	assert.Equal(Edge{From: aIdx, To: bIdx}, edges[0])

	// Re-inserting the same edge is a no-op, not an error.
	inserted, err = r.InsertDispatchEdge(aIdx, side.OUT, b, bIdx)
	assert.NoError(err)
	assert.False(inserted)
	assert.Len(edges, 1)
}

func TestInsertDispatchEdge_MissingDispatcher(t *testing.T) {
	assert := assert.New(t)

	var nodes []Node
	var edges []Edge
	r := NewRegistry(&nodes, &edges)

	self := NewNode(100, "a", 1, 1, true, true)
	selfIdx, _ := r.InsertSelf(self)

	_, err := r.InsertDispatchEdge(5, side.OUT, self, selfIdx)
	assert.ErrorIs(err, ErrDispatcherMissing)
}

func TestIncident(t *testing.T) {
	assert := assert.New(t)

	edges := []Edge{
		{From: 0, To: 1},
		{From: 0, To: 2},
		{From: 1, To: 2},
	}
	r := NewRegistry(&[]Node{}, &edges)

	out, in := r.Incident(0)
	assert.Len(out, 2)
	assert.Len(in, 0)

	out, in = r.Incident(2)
	assert.Len(out, 0)
	assert.Len(in, 2)
}
