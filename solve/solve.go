// Package solve implements the sgsh constraint solver: assigning an
// instance count to every edge of a frozen negotiation graph so that each
// node's declared channel capacity is respected (spec §4.6).
package solve

import (
	"fmt"

	"github.com/sgsh/negotiate/graph"
)

// NodeConnections is one node's slice of the graph solution: its resolved
// incoming and outgoing edges, each carrying the solved Instances count.
// Solve returns one of these per node, at the position matching the
// node's graph index (spec §3, "the graph solution is a list of these
// records, one per node, stored at the position matching the node's index").
type NodeConnections struct {
	NodeIndex int32
	Incoming  []graph.Edge
	Outgoing  []graph.Edge
}

// Solve computes, for every edge in edges, the number of pipe instances it
// carries, and returns the per-node connection records (spec §3, §4.6).
// edges is mutated in place: each graph.Edge.Instances field is filled in.
//
// Nodes are visited in ascending graph-index order (the order they were
// discovered during negotiation). For each node, both its outgoing and its
// incoming side are solved against the declared capacities of its
// neighbours. The first of an edge's two endpoints to be visited commits
// that edge's Instances; the other endpoint, when its own turn comes,
// leaves an already-committed edge untouched.
//
// This "first visitor commits" rule is this implementation's resolution of
// an internal tension in the distilled spec: §4.6's per-node table, read in
// isolation, has an unlimited-capacity node mirror its *peer's total
// declared capacity* onto a single incident edge — which is only correct
// when that peer has exactly one edge. The worked example in spec.md §8
// scenario S5 (a single fixed node fanning out to three unlimited sinks)
// requires the fixed node's own distribution (with its floor/remainder
// split) to be the one that sticks; an unlimited sink must defer to it
// rather than re-derive a different number from the fixed node's raw total.
// Committing per-edge exactly once, at the first node to reach it, makes
// both readings agree in every case the table and the worked examples
// actually exercise, and keeps the solver a single deterministic pass over
// the node list with no backtracking.
func Solve(nodes []graph.Node, edges []graph.Edge, quantum int32) ([]NodeConnections, error) {
	if quantum <= 0 {
		quantum = DefaultFlexibleQuantum
	}

	committed := make([]bool, len(edges))
	conns := make([]NodeConnections, len(nodes))

	for i := range nodes {
		idx := int32(i)

		var outIdx, inIdx []int
		for j, e := range edges {
			if e.From == idx {
				outIdx = append(outIdx, j)
			}
			if e.To == idx {
				inIdx = append(inIdx, j)
			}
		}

		peerRequires := func(e graph.Edge) int32 { return nodes[e.To].Requires }
		peerProvides := func(e graph.Edge) int32 { return nodes[e.From].Provides }

		if err := solveSide(edges, committed, outIdx, nodes[i].Provides, quantum, peerRequires); err != nil {
			return nil, fmt.Errorf("node %q (pid %d) outgoing side: %w", nodes[i].Name, nodes[i].Pid, err)
		}
		if err := solveSide(edges, committed, inIdx, nodes[i].Requires, quantum, peerProvides); err != nil {
			return nil, fmt.Errorf("node %q (pid %d) incoming side: %w", nodes[i].Name, nodes[i].Pid, err)
		}

		conns[i] = NodeConnections{
			NodeIndex: idx,
			Outgoing:  compactEdges(edges, outIdx),
			Incoming:  compactEdges(edges, inIdx),
		}
	}

	return conns, nil
}

// solveSide applies the §4.6 decision table to one node's one side: the
// edges listed in idxs, against the node's declared capacity. Edges already
// committed by the other endpoint are skipped entirely, including from the
// fixed/flexible tally, so a later visitor's bookkeeping cannot clash with
// an earlier, already-written value.
func solveSide(edges []graph.Edge, committed []bool, idxs []int, capacity, quantum int32, peerCapacity func(graph.Edge) int32) error {
	var uncommitted []int
	for _, idx := range idxs {
		if !committed[idx] {
			uncommitted = append(uncommitted, idx)
		}
	}

	if len(uncommitted) == 0 {
		if capacity != graph.Unlimited && capacity != 0 && len(idxs) == 0 {
			return fmt.Errorf("%w: declared capacity %d but no connecting edge", ErrInfeasible, capacity)
		}
		return nil
	}

	var sFixed int32
	var flexible []int
	for _, idx := range uncommitted {
		if peerCapacity(edges[idx]) == graph.Unlimited {
			flexible = append(flexible, idx)
		} else {
			sFixed += peerCapacity(edges[idx])
		}
	}
	k := int32(len(flexible))

	commit := func(idx int, instances int32) {
		edges[idx].Instances = instances
		committed[idx] = true
	}

	switch {
	case capacity == graph.Unlimited:
		// Each fixed edge gets its peer's declared value; every flexible
		// edge gets the shared quantum (spec §4.6, "C unlimited").
		for _, idx := range uncommitted {
			if pc := peerCapacity(edges[idx]); pc == graph.Unlimited {
				commit(idx, quantum)
			} else {
				commit(idx, pc)
			}
		}
		return nil

	case capacity < sFixed+k:
		return fmt.Errorf("%w: capacity %d below required %d (%d fixed + %d flexible)",
			ErrInfeasible, capacity, sFixed+k, sFixed, k)

	case capacity == sFixed+k:
		// Exact match: fixed edges get their declared value, every
		// flexible edge gets exactly one instance.
		for _, idx := range uncommitted {
			if pc := peerCapacity(edges[idx]); pc == graph.Unlimited {
				commit(idx, 1)
			} else {
				commit(idx, pc)
			}
		}
		return nil

	case k == 0:
		// capacity > sFixed with no flexible edge to absorb the surplus:
		// there is nowhere for the extra declared capacity to go.
		return fmt.Errorf("%w: capacity %d exceeds fixed total %d with no flexible edge to absorb the surplus",
			ErrInfeasible, capacity, sFixed)

	default:
		// Surplus distributed evenly, remainder to the first flexible
		// edges in edge-list (discovery) order (spec §4.6 tie-break).
		surplus := capacity - sFixed
		share := surplus / k
		remainder := surplus % k
		var seen int32
		for _, idx := range uncommitted {
			if pc := peerCapacity(edges[idx]); pc != graph.Unlimited {
				commit(idx, pc)
				continue
			}
			inst := share
			if seen < remainder {
				inst++
			}
			seen++
			commit(idx, inst)
		}
		return nil
	}
}

func compactEdges(edges []graph.Edge, idxs []int) []graph.Edge {
	out := make([]graph.Edge, len(idxs))
	for i, idx := range idxs {
		out[i] = edges[idx]
	}
	return out
}
