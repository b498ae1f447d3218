package transport

import (
	"net"
	"os"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/sgsh/negotiate/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairedSequence builds a socketSequence backed by one end of a real
// AF_UNIX socketpair, letting tests exercise Send/Recv without depending on
// the pre-bound descriptor numbering a real negotiating process inherits.
func pairedSequence(t *testing.T) (local, peer *socketSequence) {
	t.Helper()

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)

	localFile := os.NewFile(uintptr(fds[0]), "local")
	peerFile := os.NewFile(uintptr(fds[1]), "peer")

	localConn, err := net.FileConn(localFile)
	require.NoError(t, err)
	localFile.Close()

	peerConn, err := net.FileConn(peerFile)
	require.NoError(t, err)
	peerFile.Close()

	return &socketSequence{sockets: []*net.UnixConn{localConn.(*net.UnixConn)}},
		&socketSequence{sockets: []*net.UnixConn{peerConn.(*net.UnixConn)}}
}

func TestBroadcastRecv_RoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sender, receiver := pairedSequence(t)
	defer sender.Close()
	defer receiver.Close()

	bc := &Broadcaster{seq: sender}
	rv := &Receiver{seq: receiver}

	edge := graph.Edge{From: 0, To: 1, Instances: 1}

	writeEnds, err := bc.Send(edge)
	require.NoError(err)
	require.Len(writeEnds, 1)
	defer writeEnds[0].Close()

	readEnds, err := rv.Recv(edge)
	require.NoError(err)
	require.Len(readEnds, 1)
	defer readEnds[0].Close()

	const msg = "negotiated"
	_, err = writeEnds[0].Write([]byte(msg))
	require.NoError(err)

	buf := make([]byte, len(msg))
	n, err := readEnds[0].Read(buf)
	require.NoError(err)
	assert.Equal(msg, string(buf[:n]))
}

func TestBroadcast_SequenceExhausted(t *testing.T) {
	sender, receiver := pairedSequence(t)
	defer sender.Close()
	defer receiver.Close()

	bc := &Broadcaster{seq: sender}
	edge := graph.Edge{From: 0, To: 1, Instances: 2}

	_, err := bc.Send(edge)
	assert.ErrorIs(t, err, ErrDescriptorSequenceExhausted)
}
