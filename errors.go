package negotiate

import "errors"

// The four error kinds a caller of Negotiate can distinguish (spec §7).
// Every error Negotiate returns wraps exactly one of these via %w, so
// errors.Is against the sentinel tells the caller which of the taxonomy's
// branches applies without inspecting message text.
var (
	// ErrTransport covers short reads, over-sized messages (including a
	// header naming an unsupported wire version), and any non-EAGAIN
	// system call failure on the negotiation channel or the
	// descriptor-passing sockets (spec §4.2, §4.7, §4.8).
	ErrTransport = errors.New("negotiation transport failure")

	// ErrProtocol covers a decoded message that is structurally invalid
	// (an invalid state flag) or a registry mutation that contradicts
	// this node's declared sgsh activity (spec §4.2, §4.3).
	ErrProtocol = errors.New("negotiation protocol violation")

	// ErrInfeasible covers a constraint solver failure: the declared
	// channel capacities cannot be reconciled (spec §4.6).
	ErrInfeasible = errors.New("channel constraints are infeasible")

	// ErrEnvironment covers a failure to read or parse the process's
	// required environment variables before negotiation even starts
	// (spec §4.1).
	ErrEnvironment = errors.New("negotiation environment invalid")
)
