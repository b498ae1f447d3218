// Package session drives one tool's side of a negotiation: the
// competition rule that arbitrates between competing message blocks, and
// the round-controller state machine that carries a block through
// NEGOTIATION, NEGOTIATION_END, SOLUTION_SHARE and into DONE or ERROR
// (spec §4.4, §4.5).
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sgsh/negotiate/block"
	"github.com/sgsh/negotiate/graph"
	"github.com/sgsh/negotiate/side"
	"github.com/sgsh/negotiate/solve"
	"github.com/sgsh/negotiate/transport"
)

// DefaultReadChunkSize is the read chunk size a Controller uses when built
// with a non-positive bufferSize.
const DefaultReadChunkSize = 4096

// Controller is the per-process negotiation state machine. It owns the
// single message block currently recognized as authoritative and the two
// per-side byte buffers needed to reassemble one from a non-blocking,
// possibly fragmented, stream (spec §4.2, §4.5).
type Controller struct {
	*zerolog.Logger

	self       graph.Node
	selfIndex  int32
	quantum    int32
	bufferSize int32

	channel *transport.Channel

	held *block.Block

	// initiatorBaseline/haveBaseline implement the "full round with no
	// update" detection: the initiator remembers the serial number its own
	// block carried the last time it passed through, and declares the
	// round over when the block returns unchanged (spec §4.5, §9 resolved
	// Open Question 1).
	initiatorBaseline int32
	haveBaseline      bool

	pending    [2][]byte
	preferSide side.Side

	// establish realizes a node's solved connections as open descriptors.
	// Defaulted to transport.Establish; overridable so tests can exercise
	// the negotiation state machine without owning real pre-bound socket
	// descriptors.
	establish func(conn solve.NodeConnections, nSockets int) (*transport.Established, error)
}

// NewController builds a Controller for self, negotiating over channel.
// quantum overrides solve.DefaultFlexibleQuantum when positive; bufferSize
// overrides DefaultReadChunkSize when positive.
func NewController(self graph.Node, quantum int32, bufferSize int32, channel *transport.Channel, logger *zerolog.Logger) *Controller {
	if quantum <= 0 {
		quantum = solve.DefaultFlexibleQuantum
	}
	if bufferSize <= 0 {
		bufferSize = DefaultReadChunkSize
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Controller{
		Logger:     logger,
		self:       self,
		selfIndex:  -1,
		quantum:    quantum,
		bufferSize: bufferSize,
		channel:    channel,
		preferSide: side.IN,
		establish:  transport.Establish,
	}
}

// Run drives the state machine to completion: NEGOTIATION rounds, the
// solver, the solution broadcast/receive, and returns the established
// descriptors plus the final graph, or an error if any step failed
// fatally (spec §4.5, any -> ERROR).
func (c *Controller) Run(ctx context.Context) (*transport.Established, *block.Block, error) {
	if c.self.SgshOut && !c.self.SgshIn {
		if err := c.initiate(ctx); err != nil {
			return nil, nil, err
		}
	}

	for {
		incoming, from, err := c.readBlock(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("read message block: %w", err)
		}

		if incoming.Flag == block.ERROR {
			return nil, incoming, ErrPeerReported
		}

		if incoming.Flag == block.SOLUTION_SHARE {
			return c.handleSolutionShare(ctx, incoming, from)
		}

		if _, err := c.handleNegotiationArrival(ctx, incoming, from); err != nil {
			return nil, nil, err
		}
	}
}

// initiate constructs a fresh block naming this tool as initiator and
// writes it first on standard output (spec §4.5, "initial state
// selection").
func (c *Controller) initiate(ctx context.Context) error {
	mb := &block.Block{Version: block.WireVersion, Flag: block.NEGOTIATION, InitiatorPid: c.self.Pid}

	reg := graph.NewRegistry(&mb.Nodes, &mb.Edges)
	idx, _ := reg.InsertSelf(c.self)
	c.selfIndex = idx
	c.held = mb

	mb.Origin = block.DispatcherTag{Index: idx, Side: side.OUT}
	if err := c.writeBlock(ctx, side.OUT, mb); err != nil {
		return fmt.Errorf("initial write: %w", err)
	}

	c.initiatorBaseline = mb.SerialNo
	c.haveBaseline = true
	return nil
}

// handleNegotiationArrival processes one NEGOTIATION or NEGOTIATION_END
// arrival: competition, registry update, round-completion detection, and
// forwarding (spec §4.3, §4.4, §4.5).
func (c *Controller) handleNegotiationArrival(ctx context.Context, incoming *block.Block, from side.Side) (discarded bool, err error) {
	survivor := incoming
	forward := true
	if c.held != nil {
		survivor, forward = Compete(c.held, incoming)
	}

	reg := graph.NewRegistry(&survivor.Nodes, &survivor.Edges)
	selfIdx, insertedSelf := reg.InsertSelf(c.self)
	c.selfIndex = selfIdx

	insertedEdge, direrr := reg.InsertDispatchEdge(survivor.Origin.Index, from, c.self, selfIdx)
	if direrr != nil {
		return false, fmt.Errorf("%w: %w", ErrGraphMismatch, direrr)
	}
	if insertedSelf || insertedEdge {
		survivor.SerialNo++
	}
	c.held = survivor

	if survivor.InitiatorPid == c.self.Pid && survivor.Flag == block.NEGOTIATION {
		c.observeOwnRound(survivor)
	}

	if !forward {
		return true, nil
	}

	if survivor.Flag == block.NEGOTIATION_END {
		if _, err := solve.Solve(survivor.Nodes, survivor.Edges, c.quantum); err != nil {
			survivor.Flag = block.ERROR
			c.forwardBlock(ctx, survivor, from)
			return false, fmt.Errorf("constraint solver: %w", err)
		}
		survivor.Flag = block.SOLUTION_SHARE
	}

	if err := c.forwardBlock(ctx, survivor, from); err != nil {
		return false, err
	}
	return false, nil
}

// observeOwnRound implements the initiator-only "full round with no
// update" detection (spec §4.5, §9 Open Question 1 resolved).
func (c *Controller) observeOwnRound(survivor *block.Block) {
	switch {
	case !c.haveBaseline:
		c.initiatorBaseline = survivor.SerialNo
		c.haveBaseline = true
	case survivor.SerialNo == c.initiatorBaseline:
		survivor.Flag = block.NEGOTIATION_END
		survivor.SerialNo++
	default:
		c.initiatorBaseline = survivor.SerialNo
	}
}

// handleSolutionShare realizes this node's own connections as open
// descriptors, forwards the solved block to the remaining nodes, and
// returns (spec §4.7, §4.8, SOLUTION_SHARE -> DONE).
func (c *Controller) handleSolutionShare(ctx context.Context, b *block.Block, from side.Side) (*transport.Established, *block.Block, error) {
	if c.selfIndex < 0 {
		if idx := b.NodeByPid(c.self.Pid); idx >= 0 {
			c.selfIndex = idx
		} else {
			return nil, nil, ErrUnknownSelf
		}
	}

	conn := deriveConnections(b.Edges, c.selfIndex)
	nSockets := countInstances(conn)

	established, err := c.establish(conn, nSockets)
	if err != nil {
		return nil, nil, fmt.Errorf("establish connections: %w", err)
	}

	if err := c.forwardBlock(ctx, b, from); err != nil {
		return nil, nil, fmt.Errorf("forward solution: %w", err)
	}

	return established, b, nil
}

// forwardBlock writes b out the side opposite to from (or the tool's only
// active side), stamping the dispatcher tag with this node's own identity.
func (c *Controller) forwardBlock(ctx context.Context, b *block.Block, from side.Side) error {
	writeSide := c.forwardSide(from)
	b.Origin = block.DispatcherTag{Index: c.selfIndex, Side: writeSide}
	if err := c.writeBlock(ctx, writeSide, b); err != nil {
		return fmt.Errorf("forward: %w", err)
	}
	return nil
}

// forwardSide picks the opposite channel from the one a block arrived on,
// or the tool's single active side if only one is sgsh-active (spec §4.5).
func (c *Controller) forwardSide(from side.Side) side.Side {
	if c.self.SgshIn && c.self.SgshOut {
		return from.Flip()
	}
	if c.self.SgshOut {
		return side.OUT
	}
	return side.IN
}

func (c *Controller) writeBlock(ctx context.Context, s side.Side, b *block.Block) error {
	return c.channel.Write(ctx, s, b.Marshal(nil))
}

// readBlock returns the next fully-reassembled block and the side it
// arrived on, reading non-blocking chunks off both sides in alternation
// until one side's buffer holds a complete message (spec §4.2, §5).
func (c *Controller) readBlock(ctx context.Context) (*block.Block, side.Side, error) {
	for {
		for _, s := range [2]side.Side{side.IN, side.OUT} {
			if len(c.pending[s]) == 0 {
				continue
			}
			var b block.Block
			n, err := b.Unmarshal(c.pending[s])
			switch {
			case err == nil:
				c.pending[s] = c.pending[s][n:]
				return &b, s, nil
			case errors.Is(err, block.ErrShort):
				// keep accumulating
			default:
				return nil, s, err
			}
		}

		buf := make([]byte, c.bufferSize)
		n, from, err := c.channel.Read(ctx, buf, c.preferSide)
		if err != nil {
			return nil, 0, err
		}
		c.preferSide = from.Flip()
		c.pending[from] = append(c.pending[from], buf[:n]...)
	}
}

func deriveConnections(edges []graph.Edge, selfIndex int32) solve.NodeConnections {
	conn := solve.NodeConnections{NodeIndex: selfIndex}
	for _, e := range edges {
		if e.From == selfIndex {
			conn.Outgoing = append(conn.Outgoing, e)
		}
		if e.To == selfIndex {
			conn.Incoming = append(conn.Incoming, e)
		}
	}
	return conn
}

func countInstances(conn solve.NodeConnections) int {
	var n int
	for _, e := range conn.Outgoing {
		n += int(e.Instances)
	}
	for _, e := range conn.Incoming {
		n += int(e.Instances)
	}
	return n
}
