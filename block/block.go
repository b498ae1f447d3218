package block

import (
	"github.com/sgsh/negotiate/graph"
	"github.com/sgsh/negotiate/side"
)

// WireVersion is the only message block format this package knows how to
// decode. A mismatched Version fails decoding outright rather than guessing
// at a layout (spec §4.2, "producers and consumers must agree on a single
// wire version").
const WireVersion = int32(1)

// DispatcherTag identifies the channel through which a node joined the
// graph: the index of the node that dispatched the message block to it,
// and which of that dispatcher's two sides (stdin/stdout) the edge runs on
// (spec §4.3, "dispatch edge").
type DispatcherTag struct {
	Index int32
	Side  side.Side
}

// Block is one message block as it circulates among the tool processes: the
// negotiation state shared so far (Nodes, Edges), the protocol Flag driving
// the round controller, and bookkeeping fields needed to detect a completed
// round and to re-home the block after a hop (spec §3, §4.2).
type Block struct {
	Version int32

	Nodes []graph.Node
	Edges []graph.Edge

	// InitiatorPid is the pid of the process that minted this negotiation.
	// When two blocks meet, the one with the smaller InitiatorPid survives
	// (spec §4.4, "competition rule").
	InitiatorPid int32

	Flag Flag

	// SerialNo increments whenever a node adds itself or its dispatch edge
	// to the block, and once more when the initiator flips Flag; the
	// initiator uses it to detect a full silent round and flip Flag to
	// NEGOTIATION_END (spec §4.5).
	SerialNo int32

	// Origin records the graph index of the node that last forwarded this
	// block and which of its two channels it wrote the block on. The
	// receiver uses Origin.Index for the dispatch edge; it takes the edge
	// direction from its own receiving side, not from Origin.Side.
	Origin DispatcherTag
}

// NodeByPid returns the index of the node with the given pid, or -1 if no
// such node has joined the graph yet.
func (b *Block) NodeByPid(pid int32) int32 {
	for _, n := range b.Nodes {
		if n.Pid == pid {
			return n.Index
		}
	}
	return -1
}
