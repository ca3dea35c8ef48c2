package x11

import (
	"errors"
	"net"
	"time"
)

// fillBufSize is the scratch-buffer size used to top up the read buffer
// from the socket in one syscall, matching
// justshow_x11/src/connection.rs's FILL_BUFF_SIZE.
const fillBufSize = 0x1000

// conn is the duplex byte-stream half of a display connection. Two read
// modes share the same buffer: fillOnce is a single non-blocking probe
// (PollEvent uses it, and never stalls the caller), fillBlocking
// is a genuine blocking read (Await's cooperative pump uses it, since
// blocking there is the whole point of Await). Writes are blocking
// unconditionally (net.Conn.Write already loops internally until the
// full buffer is written or an error occurs, so no separate retry
// wrapper is needed on the write side) — the asymmetry mirrors
// justshow_x11's XConnectionReader vs. BlockingWriter split.
type conn struct {
	nc net.Conn

	readBuf []byte // bytes already read from the socket, not yet consumed
	fillBuf []byte // scratch buffer reused across fillOnce calls
}

func newConn(nc net.Conn) *conn {
	return &conn{
		nc:      nc,
		readBuf: make([]byte, 0, fillBufSize),
		fillBuf: make([]byte, fillBufSize),
	}
}

// dialDisplay opens the unix-domain socket at socketPath, which
// DisplayVar.SocketPath builds as /tmp/.X11-unix/X<display_sequence>.
func dialDisplay(socketPath string) (*conn, error) {
	nc, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, errors.Join(ErrCouldNotOpenSocket, err)
	}
	return newConn(nc), nil
}

// fillOnce attempts a single non-blocking top-up of readBuf from the
// socket. It returns ErrWouldBlock if no data was immediately available,
// without growing readBuf.
func (c *conn) fillOnce() error {
	if err := c.nc.SetReadDeadline(time.Now()); err != nil {
		return err
	}
	n, err := c.nc.Read(c.fillBuf)
	if n > 0 {
		c.readBuf = append(c.readBuf, c.fillBuf[:n]...)
	}
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return ErrWouldBlock
		}
		return err
	}
	return nil
}

// fillBlocking tops up readBuf with one genuinely blocking read, used by
// the ensure/peek/drain trio when called from Await's cooperative loop:
// that loop is allowed to block the calling goroutine (there is nothing
// else for it to do until a packet arrives), unlike fillOnce's
// immediate-timeout probe, which PollEvent uses to never block.
func (c *conn) fillBlocking() error {
	if err := c.nc.SetReadDeadline(time.Time{}); err != nil {
		return err
	}
	n, err := c.nc.Read(c.fillBuf)
	if n > 0 {
		c.readBuf = append(c.readBuf, c.fillBuf[:n]...)
	}
	return err
}

// ensure tops up readBuf, blocking as needed, until at least n bytes are
// buffered, matching connection.rs's ensure_buffer_size loop.
func (c *conn) ensure(n int) error {
	for len(c.readBuf) < n {
		if err := c.fillBlocking(); err != nil {
			return err
		}
	}
	return nil
}

// peek returns the first n buffered bytes without consuming them,
// blocking to top the buffer up first if needed.
func (c *conn) peek(n int) ([]byte, error) {
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	return c.readBuf[:n], nil
}

// drain consumes and returns the first n buffered bytes, topping the
// buffer up first if it is short.
func (c *conn) drain(n int) ([]byte, error) {
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.readBuf[:n])
	c.readBuf = c.readBuf[n:]
	return out, nil
}

// buffered reports how many bytes are ready to drain without a syscall.
func (c *conn) buffered() int { return len(c.readBuf) }

// writeAll blocks until buf has been written in full.
func (c *conn) writeAll(buf []byte) error {
	if err := c.nc.SetWriteDeadline(time.Time{}); err != nil {
		return err
	}
	_, err := c.nc.Write(buf)
	return err
}

// flush is a no-op for this transport: writeAll already blocks until the
// kernel has accepted the full buffer. It exists to match the C1
// read/write/flush trio spec.md names, and so a buffered transport could
// be swapped in later without changing callers.
func (c *conn) flush() error { return nil }

func (c *conn) close() error { return c.nc.Close() }
