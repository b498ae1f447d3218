package graph

// Edge is a directed pipe connection between two nodes, identified by their
// graph indices. Instances is filled in only after the solver runs (solve.Solve).
type Edge struct {
	From      int32 // graph index of the source node
	To        int32 // graph index of the destination node
	Instances int32 // number of parallel pipes realizing this connection
}

// sameEndpoints reports whether e and other connect the same ordered pair
// of nodes, the identity used for edge deduplication (spec §4.3).
func (e Edge) sameEndpoints(other Edge) bool {
	return e.From == other.From && e.To == other.To
}
