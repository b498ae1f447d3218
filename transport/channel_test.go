package transport

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sgsh/negotiate/side"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_WriteThenRead(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	inR, inW, err := os.Pipe()
	require.NoError(err)
	defer inW.Close()
	outR, outW, err := os.Pipe()
	require.NoError(err)
	defer outR.Close()

	c, err := NewChannel(inR, outW)
	require.NoError(err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() {
		inW.Write([]byte("hello"))
	}()

	buf := make([]byte, 16)
	n, from, err := c.Read(ctx, buf, side.IN)
	require.NoError(err)
	assert.Equal(side.IN, from)
	assert.Equal("hello", string(buf[:n]))

	require.NoError(c.Write(ctx, side.OUT, []byte("world")))
	out := make([]byte, 16)
	n, err = outR.Read(out)
	require.NoError(err)
	assert.Equal("world", string(out[:n]))
}

func TestChannel_ReadRespectsCancellation(t *testing.T) {
	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	defer inW.Close()
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	defer outR.Close()
	defer outW.Close()

	c, err := NewChannel(inR, outW)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	buf := make([]byte, 16)
	_, _, err = c.Read(ctx, buf, side.IN)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChannel_ClosedRejectsIO(t *testing.T) {
	inR, inW, err := os.Pipe()
	require.NoError(t, err)
	outR, outW, err := os.Pipe()
	require.NoError(t, err)

	c, err := NewChannel(inR, outW)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	inW.Close()
	outR.Close()

	_, _, err = c.Read(context.Background(), make([]byte, 1), side.IN)
	assert.ErrorIs(t, err, ErrClosed)
	err = c.Write(context.Background(), side.OUT, []byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
}
