package session

import "github.com/sgsh/negotiate/block"

// Compete implements the message-block competition rule (spec §4.4): given
// the block this tool currently holds and one that just arrived, it
// decides which is authoritative and whether the tool should keep
// forwarding at all.
//
//   - incoming's initiator has a smaller pid: incoming wins outright.
//   - incoming's initiator has a larger pid: incoming is discarded, and the
//     tool stops forwarding (the stale negotiation dies here).
//   - equal initiators: this is the same negotiation coming back around;
//     the higher serial number wins, but the tool always keeps forwarding
//     (it still owes the surviving block its own node/edge insertion).
func Compete(held, incoming *block.Block) (survivor *block.Block, forward bool) {
	switch {
	case incoming.InitiatorPid < held.InitiatorPid:
		return incoming, true
	case incoming.InitiatorPid > held.InitiatorPid:
		return held, false
	case incoming.SerialNo > held.SerialNo:
		return incoming, true
	default:
		return held, true
	}
}
