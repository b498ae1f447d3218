// Package negotiate implements the sgsh shell-pipe negotiation protocol: a
// tool participating in a pipeline circulates a message block with its
// peers to build up a shared graph of tools and pipe connections, solves
// that graph for a pipe-instance count per connection, and exchanges the
// resulting pipe descriptors over pre-bound sockets.
package negotiate

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sgsh/negotiate/block"
	"github.com/sgsh/negotiate/config"
	"github.com/sgsh/negotiate/graph"
	"github.com/sgsh/negotiate/session"
	"github.com/sgsh/negotiate/solve"
	"github.com/sgsh/negotiate/transport"
)

// Result is the (input_fds, output_fds, status) triple a negotiating tool
// receives once its participation in the graph is settled (spec §6).
type Result struct {
	InputFDs  []int
	OutputFDs []int
	Status    State

	// Graph is the final negotiated block: every node and edge, with
	// every edge's Instances filled in by the solver. Supplemental to the
	// raw descriptor triple spec.md §6 names, exposed for callers that
	// want to inspect the agreed-upon topology.
	Graph *block.Block
}

// Negotiate runs the full negotiation protocol for a tool named toolName,
// declaring required incoming channels and provided outgoing channels
// (graph.Unlimited for "any number"), and returns the descriptors this
// node is left holding once the graph is solved (spec §6). On failure it
// returns a Result whose Status is ERROR together with the error.
//
// ctx bounds the whole negotiation; canceling it unblocks a hung read or
// write (an ambient capability the original C implementation has no
// equivalent for, per spec.md §9).
func Negotiate(ctx context.Context, toolName string, required, provided int) (*Result, error) {
	opts, err := config.Bootstrap()
	if err != nil {
		return &Result{Status: ERROR}, fmt.Errorf("%w: %v", ErrEnvironment, err)
	}

	self := graph.NewNode(int32(os.Getpid()), toolName, int32(required), int32(provided), opts.SgshIn, opts.SgshOut)

	ch, err := transport.NewChannel(os.Stdin, os.Stdout)
	if err != nil {
		return &Result{Status: ERROR}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	ctrl := session.NewController(self, opts.FlexibleQuantum, opts.BufferSize, ch, opts.Logger)

	established, final, err := ctrl.Run(ctx)
	if err != nil {
		return &Result{Status: ERROR}, classifyError(err)
	}

	result := &Result{Status: DONE, Graph: final}
	for _, f := range established.InputFiles {
		result.InputFDs = append(result.InputFDs, int(f.Fd()))
	}
	for _, f := range established.OutputFiles {
		result.OutputFDs = append(result.OutputFDs, int(f.Fd()))
	}
	return result, nil
}

// classifyError maps an internal package error onto the four-kind taxonomy
// spec §7 requires Negotiate's caller to be able to distinguish, without
// making the internal packages import this one (spec §9, "error
// propagation").
func classifyError(err error) error {
	switch {
	case errors.Is(err, solve.ErrInfeasible):
		return fmt.Errorf("%w: %v", ErrInfeasible, err)
	case errors.Is(err, session.ErrGraphMismatch),
		errors.Is(err, session.ErrUnknownSelf),
		errors.Is(err, session.ErrPeerReported),
		errors.Is(err, block.ErrFlag):
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}
