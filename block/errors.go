package block

import "errors"

var (
	// ErrShort is returned when a read delivered fewer bytes than the
	// wire format requires for the field being decoded (spec §4.2).
	ErrShort = errors.New("short read")

	// ErrOversize is returned when a declared count (n_nodes, n_edges)
	// exceeds the codec's maxNodes/maxEdges bound, and when the header's
	// version is not WireVersion.
	ErrOversize = errors.New("message exceeds buffer size")

	// ErrFlag is returned when a decoded state flag is not one of the
	// four values the protocol defines.
	ErrFlag = errors.New("invalid state flag")
)
