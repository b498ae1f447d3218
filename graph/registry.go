package graph

import "github.com/sgsh/negotiate/side"

// Registry grows the shared node and edge lists carried inside a message
// block as it circulates (spec §4.3). It operates directly on the slices
// owned by the caller (typically block.Block) so that a single source of
// truth survives each competition-rule substitution (session.Compete).
type Registry struct {
	Nodes *[]Node
	Edges *[]Edge
}

// NewRegistry binds a Registry to the given node/edge slices.
func NewRegistry(nodes *[]Node, edges *[]Edge) *Registry {
	return &Registry{Nodes: nodes, Edges: edges}
}

// InsertSelf appends self to the node list unless a node with the same pid
// is already present (match by pid, spec §4.3(i)). Returns the node's
// graph index and whether an insertion actually happened.
func (r *Registry) InsertSelf(self Node) (index int32, inserted bool) {
	for i := range *r.Nodes {
		if (*r.Nodes)[i].Pid == self.Pid {
			return int32(i), false
		}
	}
	self.Index = int32(len(*r.Nodes))
	*r.Nodes = append(*r.Nodes, self)
	return self.Index, true
}

// InsertDispatchEdge fills and inserts the edge connecting the dispatcher
// (the most recent forwarder) to self, if it does not already exist
// (spec §4.3(ii)). originIndex is the message block's dispatcher index;
// originSide is the side of self on which the block arrived; selfIndex is
// self's own graph index (from InsertSelf).
//
// Direction is inferred per spec §4.3: a block arriving on standard input
// means the dispatcher is a destination (edge self -> dispatcher); arriving
// on standard output means the dispatcher is a source (edge dispatcher ->
// self). The direction must agree with self's declared SgshIn/SgshOut, or
// ErrDirection is returned.
func (r *Registry) InsertDispatchEdge(originIndex int32, originSide side.Side, self Node, selfIndex int32) (inserted bool, err error) {
	if int(originIndex) < 0 || int(originIndex) >= len(*r.Nodes) {
		return false, ErrDispatcherMissing
	}

	var e Edge
	switch originSide {
	case side.IN:
		if !self.SgshOut {
			return false, ErrDirection
		}
		e = Edge{From: selfIndex, To: originIndex}
	case side.OUT:
		if !self.SgshIn {
			return false, ErrDirection
		}
		e = Edge{From: originIndex, To: selfIndex}
	default:
		return false, ErrDirection
	}

	for _, existing := range *r.Edges {
		if existing.sameEndpoints(e) {
			return false, nil
		}
	}
	*r.Edges = append(*r.Edges, e)
	return true, nil
}

// Incident returns, for nodeIndex, the edges where it is the source
// (outgoing) and the edges where it is the destination (incoming), in
// list (discovery) order — the order solve.Solve's tie-break rule relies on.
func (r *Registry) Incident(nodeIndex int32) (outgoing, incoming []Edge) {
	for _, e := range *r.Edges {
		if e.From == nodeIndex {
			outgoing = append(outgoing, e)
		}
		if e.To == nodeIndex {
			incoming = append(incoming, e)
		}
	}
	return outgoing, incoming
}
