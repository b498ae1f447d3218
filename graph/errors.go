package graph

import "errors"

var (
	// ErrDispatcherMissing is returned when a message block's dispatcher
	// tag names a graph index this registry has never seen.
	ErrDispatcherMissing = errors.New("dispatcher node not present in graph")

	// ErrDirection is returned when the inferred edge direction is
	// inconsistent with the local node's declared SgshIn/SgshOut flags.
	ErrDirection = errors.New("edge direction inconsistent with sgsh activity flags")
)
