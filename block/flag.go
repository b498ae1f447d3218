package block

// Flag is the message block's protocol state (spec §3, §4.5).
type Flag int32

//go:generate go run github.com/dmarkham/enumer -type Flag
const (
	NEGOTIATION     Flag = 0 // still circulating, gathering nodes/edges
	NEGOTIATION_END Flag = 1 // initiator observed a full round with no update
	SOLUTION_SHARE  Flag = 2 // carrying the solved graph + fd handoff
	ERROR           Flag = 3 // a fatal error occurred somewhere in the graph
)

// Valid reports whether f is one of the four defined protocol states.
func (f Flag) Valid() bool {
	return f >= NEGOTIATION && f <= ERROR
}
