package negotiate

// State mirrors the round controller's progress for the public API: the
// four wire-carried block.Flag values plus the local-only terminal DONE
// state reached once a tool's own descriptors are established (spec §4.5).
type State int32

//go:generate go run github.com/dmarkham/enumer -type State
const (
	NEGOTIATION State = iota
	NEGOTIATION_END
	SOLUTION_SHARE
	ERROR
	DONE
)
