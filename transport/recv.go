package transport

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/sgsh/negotiate/graph"
)

// Receiver collects the pipe descriptors a Broadcaster sent for this node's
// incoming edges, reading one ancillary message per instance off the same
// descriptor sequence the sender used (spec §4.8).
//
// Receiver has no public constructor: like Broadcaster, it only ever makes
// sense sharing a socketSequence with the Broadcaster addressing the same
// process's sockets (see Establish), never wrapping its own independent
// sequence.
type Receiver struct {
	seq *socketSequence
}

// Recv reads e.Instances ancillary messages, each carrying one passed
// read-end descriptor, and returns them as open *os.File values.
func (r *Receiver) Recv(e graph.Edge) (readEnds []*os.File, err error) {
	readEnds = make([]*os.File, 0, e.Instances)
	oob := make([]byte, unix.CmsgSpace(4))

	for i := int32(0); i < e.Instances; i++ {
		sock, err := r.seq.take()
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d->%d instance %d", err, e.From, e.To, i)
		}

		var msgBuf [1]byte
		_, oobN, _, _, rerr := sock.ReadMsgUnix(msgBuf[:], oob)
		if rerr != nil {
			return nil, fmt.Errorf("recvmsg edge %d->%d instance %d: %w", e.From, e.To, i, rerr)
		}

		scms, perr := unix.ParseSocketControlMessage(oob[:oobN])
		if perr != nil {
			return nil, fmt.Errorf("parse ancillary data: %w", perr)
		}
		if len(scms) == 0 {
			return nil, ErrNoAncillaryData
		}

		fds, perr := unix.ParseUnixRights(&scms[0])
		if perr != nil {
			return nil, fmt.Errorf("parse unix rights: %w", perr)
		}
		if len(fds) == 0 {
			return nil, ErrNoAncillaryData
		}

		readEnds = append(readEnds, os.NewFile(uintptr(fds[0]), fmt.Sprintf("negotiate-edge-%d-%d-%d", e.From, e.To, i)))
	}
	return readEnds, nil
}

// Close closes every wrapped socket.
func (r *Receiver) Close() error {
	return r.seq.Close()
}
