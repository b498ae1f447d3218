package solve

import (
	"testing"

	"github.com/sgsh/negotiate/graph"
	"github.com/stretchr/testify/assert"
)

// S1: two-tool straight pipe.
func TestSolve_StraightPipe(t *testing.T) {
	assert := assert.New(t)

	nodes := []graph.Node{
		NewTestNode(100, "A", graph.Unlimited, 1),
		NewTestNode(101, "B", 1, graph.Unlimited),
	}
	edges := []graph.Edge{{From: 0, To: 1}}

	conns, err := Solve(nodes, edges, DefaultFlexibleQuantum)
	assert.NoError(err)
	assert.EqualValues(1, edges[0].Instances)
	assert.Len(conns, 2)
	assert.Len(conns[0].Outgoing, 1)
	assert.Len(conns[1].Incoming, 1)
}

// S2: fan-out with flexible capacity.
func TestSolve_FanOutFlexible(t *testing.T) {
	assert := assert.New(t)

	nodes := []graph.Node{
		NewTestNode(100, "A", graph.Unlimited, graph.Unlimited),
		NewTestNode(101, "B", 1, graph.Unlimited),
		NewTestNode(102, "C", 1, graph.Unlimited),
	}
	edges := []graph.Edge{
		{From: 0, To: 1},
		{From: 0, To: 2},
	}

	_, err := Solve(nodes, edges, DefaultFlexibleQuantum)
	assert.NoError(err)
	assert.EqualValues(1, edges[0].Instances)
	assert.EqualValues(1, edges[1].Instances)
}

// S3: oversubscription is infeasible.
func TestSolve_Oversubscription(t *testing.T) {
	assert := assert.New(t)

	nodes := []graph.Node{
		NewTestNode(100, "A", graph.Unlimited, 2),
		NewTestNode(101, "B", 2, graph.Unlimited),
		NewTestNode(102, "C", 1, graph.Unlimited),
	}
	edges := []graph.Edge{
		{From: 0, To: 1},
		{From: 0, To: 2},
	}

	_, err := Solve(nodes, edges, DefaultFlexibleQuantum)
	assert.ErrorIs(err, ErrInfeasible)
}

// S5: flexible-remainder distribution.
func TestSolve_FlexibleRemainder(t *testing.T) {
	assert := assert.New(t)

	nodes := []graph.Node{
		NewTestNode(100, "A", graph.Unlimited, 7),
		NewTestNode(101, "B", graph.Unlimited, graph.Unlimited),
		NewTestNode(102, "C", graph.Unlimited, graph.Unlimited),
		NewTestNode(103, "D", graph.Unlimited, graph.Unlimited),
	}
	edges := []graph.Edge{
		{From: 0, To: 1}, // B
		{From: 0, To: 2}, // C
		{From: 0, To: 3}, // D
	}

	_, err := Solve(nodes, edges, DefaultFlexibleQuantum)
	assert.NoError(err)
	assert.EqualValues(3, edges[0].Instances, "B gets the remainder")
	assert.EqualValues(2, edges[1].Instances)
	assert.EqualValues(2, edges[2].Instances)
}

// NewTestNode is a small test helper building a graph.Node whose sgsh
// activity follows its declared capacities. Its Index stays -1: Solve
// identifies nodes by slice position, so solver-only tests need no
// Registry round-trip.
func NewTestNode(pid int32, name string, requires, provides int32) graph.Node {
	n := graph.NewNode(pid, name, requires, provides, requires != graph.Unlimited, provides != graph.Unlimited)
	return n
}
