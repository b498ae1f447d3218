package transport

import (
	"fmt"
	"os"

	"github.com/sgsh/negotiate/solve"
)

// Established is the data-phase handoff a tool receives once its solved
// connection record has been realized as open descriptors: the C source's
// establish_io_connections placeholder, filled in (spec §4.7/§4.8).
type Established struct {
	// InputFiles holds one read end per incoming edge instance, in the
	// order Conn.Incoming lists them.
	InputFiles []*os.File

	// OutputFiles holds one write end per outgoing edge instance, in the
	// order Conn.Outgoing lists them.
	OutputFiles []*os.File

	Conn solve.NodeConnections
}

// Establish realizes conn's solved edges as open descriptors: it sends the
// read end of a fresh pipe for each outgoing edge instance (this node is
// the source) and receives the read end of one for each incoming edge
// instance (this node is the destination), using the shared descriptor
// sequence both Broadcaster and Receiver address.
//
// nSockets bounds how many pre-bound socket descriptors are available; it
// must be at least the total instance count across conn's edges.
func Establish(conn solve.NodeConnections, nSockets int) (*Established, error) {
	seq, err := newSocketSequence(nSockets)
	if err != nil {
		return nil, fmt.Errorf("wrap socket sequence: %w", err)
	}
	defer seq.Close()

	bc := &Broadcaster{seq: seq}
	rv := &Receiver{seq: seq}

	est := &Established{Conn: conn}

	for _, e := range conn.Outgoing {
		writeEnds, err := bc.Send(e)
		if err != nil {
			return nil, fmt.Errorf("send outgoing edge %d->%d: %w", e.From, e.To, err)
		}
		est.OutputFiles = append(est.OutputFiles, writeEnds...)
	}

	for _, e := range conn.Incoming {
		readEnds, err := rv.Recv(e)
		if err != nil {
			return nil, fmt.Errorf("receive incoming edge %d->%d: %w", e.From, e.To, err)
		}
		est.InputFiles = append(est.InputFiles, readEnds...)
	}

	return est, nil
}
