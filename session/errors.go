package session

import "errors"

// ErrGraphMismatch is returned when a decoded block's dispatcher tag names
// a node absent from the graph, or implies an edge direction inconsistent
// with this tool's own sgsh activity flags (wraps graph.ErrDispatcherMissing
// or graph.ErrDirection with round-controller context).
var ErrGraphMismatch = errors.New("negotiation graph inconsistent with local sgsh activity")

// ErrPeerReported is returned when a block arrives already carrying the
// ERROR flag: some other node in the graph failed first (spec §4.5, "any ->
// ERROR").
var ErrPeerReported = errors.New("peer reported a fatal negotiation error")

// ErrUnknownSelf is returned when a SOLUTION_SHARE block arrives before
// this tool ever established its own graph index, which should not happen
// if every NEGOTIATION-phase arrival was handled correctly.
var ErrUnknownSelf = errors.New("solution arrived before local node joined the graph")
