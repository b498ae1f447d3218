package transport

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/sgsh/negotiate/side"
)

// pollInterval bounds how long a Channel blocks in unix.Poll between checks
// of ctx.Done(), keeping cancellation responsive without busy-looping.
const pollInterval = 200 * time.Millisecond

// Channel is one tool's two negotiation-carrying descriptors, standard
// input and standard output, operated strictly non-blocking and read or
// written one at a time, never concurrently (spec §5).
type Channel struct {
	files  [2]*os.File // indexed by side.Side
	closed bool
}

// NewChannel wraps in/out as a Channel, switching both to non-blocking mode.
// Negotiation never assumes a fixed buffering mode on either descriptor, so
// it sets it explicitly rather than trusting the caller's shell.
func NewChannel(in, out *os.File) (*Channel, error) {
	for _, f := range []*os.File{in, out} {
		if err := unix.SetNonblock(int(f.Fd()), true); err != nil {
			return nil, fmt.Errorf("set nonblocking: %w", err)
		}
	}
	return &Channel{files: [2]*os.File{side.IN: in, side.OUT: out}}, nil
}

// Read blocks (honoring ctx) until one of the two sides has data, then
// reads a single chunk from it and reports which side it came from. When
// both sides are ready at once, prefer is read first, which callers use to rotate
// fairness across calls instead of always favoring the same descriptor.
func (c *Channel) Read(ctx context.Context, buf []byte, prefer side.Side) (n int, from side.Side, err error) {
	if c.closed {
		return 0, 0, ErrClosed
	}

	order := [2]side.Side{prefer, prefer.Flip()}
	for {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		fds := [2]unix.PollFd{
			{Fd: int32(c.files[order[0]].Fd()), Events: unix.POLLIN},
			{Fd: int32(c.files[order[1]].Fd()), Events: unix.POLLIN},
		}
		ready, perr := unix.Poll(fds[:], int(pollInterval.Milliseconds()))
		if perr != nil {
			if perr == unix.EINTR {
				continue
			}
			return 0, 0, fmt.Errorf("poll: %w", perr)
		}
		if ready == 0 {
			continue
		}

		for i, pfd := range fds {
			if pfd.Revents&unix.POLLIN == 0 {
				continue
			}
			s := order[i]
			n, err := c.files[s].Read(buf)
			if err != nil {
				if err == io.EOF {
					return 0, s, io.EOF
				}
				return 0, 0, fmt.Errorf("read %s: %w", s, err)
			}
			return n, s, nil
		}
	}
}

// Write blocks (honoring ctx) until s is writable, then writes all of data
// to it.
func (c *Channel) Write(ctx context.Context, s side.Side, data []byte) error {
	if c.closed {
		return ErrClosed
	}

	for len(data) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		fds := [1]unix.PollFd{{Fd: int32(c.files[s].Fd()), Events: unix.POLLOUT}}
		ready, err := unix.Poll(fds[:], int(pollInterval.Milliseconds()))
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("poll: %w", err)
		}
		if ready == 0 {
			continue
		}

		n, err := c.files[s].Write(data)
		if err != nil {
			return fmt.Errorf("write %s: %w", s, err)
		}
		data = data[n:]
	}
	return nil
}

// File returns the underlying descriptor for side s.
func (c *Channel) File(s side.Side) *os.File {
	return c.files[s]
}

// Close closes both sides. Neither descriptor is closed twice even if
// Close is called more than once.
func (c *Channel) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	errIn := c.files[side.IN].Close()
	errOut := c.files[side.OUT].Close()
	if errIn != nil {
		return errIn
	}
	return errOut
}
