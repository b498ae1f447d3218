package util

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/sgsh/negotiate/solve"
	"github.com/sgsh/negotiate/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelay_CopiesBothDirectionsAndReportsCounts(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	origStdin, origStdout := os.Stdin, os.Stdout
	t.Cleanup(func() {
		os.Stdin = origStdin
		os.Stdout = origStdout
	})

	stdinR, stdinW, err := os.Pipe()
	require.NoError(err)
	stdoutR, stdoutW, err := os.Pipe()
	require.NoError(err)
	os.Stdin = stdinR
	os.Stdout = stdoutW

	outEdgeR, outEdgeW, err := os.Pipe()
	require.NoError(err)
	inEdgeR, inEdgeW, err := os.Pipe()
	require.NoError(err)

	est := &transport.Established{
		OutputFiles: []*os.File{outEdgeW},
		InputFiles:  []*os.File{inEdgeR},
		Conn:        solve.NodeConnections{NodeIndex: 0},
	}

	go func() {
		stdinW.Write([]byte("outbound payload"))
		stdinW.Close()
	}()
	go func() {
		inEdgeW.Write([]byte("inbound payload"))
		inEdgeW.Close()
	}()

	var gotOut, gotIn []byte
	done := make(chan struct{})
	go func() {
		gotOut, _ = io.ReadAll(outEdgeR)
		close(done)
	}()
	doneIn := make(chan struct{})
	go func() {
		gotIn, _ = io.ReadAll(stdoutR)
		close(doneIn)
	}()

	relayDone := make(chan struct{})
	var tx, rx []int64
	var relayErr error
	go func() {
		tx, rx, relayErr = Relay(est)
		close(relayDone)
	}()

	select {
	case <-relayDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Relay did not return")
	}
	stdoutW.Close()

	<-done
	<-doneIn

	require.NoError(relayErr)
	require.Len(tx, 1)
	require.Len(rx, 1)
	assert.EqualValues(len("outbound payload"), tx[0])
	assert.EqualValues(len("inbound payload"), rx[0])
	assert.Equal("outbound payload", string(gotOut))
	assert.Equal("inbound payload", string(gotIn))
}
