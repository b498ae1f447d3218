package transport

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"

	"github.com/sgsh/negotiate/graph"
)

// firstSocketFD is the first pre-bound socket descriptor a negotiating tool
// inherits from its shell, per spec §4.7/§4.8. Descriptor 2 (stderr) is
// skipped; the sequence continues 3, 4, 5, ...
const firstSocketFD = 1

// socketSequence is the pre-bound descriptor sequence 1, 3, 4, 5, ...
// shared by a Broadcaster and a Receiver addressing the same process's
// sockets, so the two never wrap the same descriptor twice (spec §4.7/§4.8
// name one shared sequence, not a separate one per direction).
type socketSequence struct {
	sockets []*net.UnixConn
	next    int
}

func newSocketSequence(n int) (*socketSequence, error) {
	conns := make([]*net.UnixConn, 0, n)
	fd := firstSocketFD
	for len(conns) < n {
		if fd == 2 {
			fd++
			continue
		}
		f := os.NewFile(uintptr(fd), fmt.Sprintf("negotiate-sock-%d", fd))
		c, err := net.FileConn(f)
		f.Close() // FileConn dup'd the descriptor; release our copy
		if err != nil {
			return nil, fmt.Errorf("wrap descriptor %d: %w", fd, err)
		}
		uc, ok := c.(*net.UnixConn)
		if !ok {
			return nil, fmt.Errorf("descriptor %d is not a unix socket", fd)
		}
		conns = append(conns, uc)
		fd++
	}
	return &socketSequence{sockets: conns}, nil
}

func (s *socketSequence) take() (*net.UnixConn, error) {
	if s.next >= len(s.sockets) {
		return nil, ErrDescriptorSequenceExhausted
	}
	sock := s.sockets[s.next]
	s.next++
	return sock, nil
}

func (s *socketSequence) Close() error {
	var first error
	for _, c := range s.sockets {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Broadcaster hands out the write side of a solved graph's pipes: for every
// outgoing edge instance, it creates a pipe, sends the read end to the peer
// over the next socket in the descriptor sequence, and keeps the write end
// for the caller (spec §4.7).
//
// Broadcaster has no public constructor: it only ever makes sense sharing a
// socketSequence with a Receiver addressing the same process's sockets
// (see Establish), never wrapping its own independent sequence.
type Broadcaster struct {
	seq *socketSequence
}

// Send creates one pipe per instance of e, sends each read end over the
// next socket in the sequence, and returns the write ends the local node
// keeps for its own use as e's source.
func (b *Broadcaster) Send(e graph.Edge) (writeEnds []*os.File, err error) {
	writeEnds = make([]*os.File, 0, e.Instances)
	for i := int32(0); i < e.Instances; i++ {
		sock, err := b.seq.take()
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d->%d instance %d", err, e.From, e.To, i)
		}

		r, w, perr := os.Pipe()
		if perr != nil {
			return nil, fmt.Errorf("create pipe: %w", perr)
		}

		rights := unix.UnixRights(int(r.Fd()))
		if _, _, serr := sock.WriteMsgUnix([]byte{0}, rights, nil); serr != nil {
			r.Close()
			w.Close()
			return nil, fmt.Errorf("sendmsg edge %d->%d instance %d: %w", e.From, e.To, i, serr)
		}

		r.Close() // local copy; the peer now owns a duplicate
		writeEnds = append(writeEnds, w)
	}
	return writeEnds, nil
}

// Close closes every wrapped socket.
func (b *Broadcaster) Close() error {
	return b.seq.Close()
}
