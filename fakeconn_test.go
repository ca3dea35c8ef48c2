package x11

import (
	"bytes"
	"net"
	"time"
)

// fakeConn is a net.Conn backed by an in-memory byte source, used to feed
// correlator and setup-handshake tests a deterministic, fully-preloaded
// byte stream without a real socket or goroutine-synchronized pipe.
type fakeConn struct {
	r *bytes.Reader
	w bytes.Buffer
}

func newFakeConn(serverBytes []byte) *fakeConn {
	return &fakeConn{r: bytes.NewReader(serverBytes)}
}

func (f *fakeConn) Read(p []byte) (int, error)  { return f.r.Read(p) }
func (f *fakeConn) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *fakeConn) Close() error                { return nil }
func (f *fakeConn) LocalAddr() net.Addr         { return fakeAddr{} }
func (f *fakeConn) RemoteAddr() net.Addr        { return fakeAddr{} }
func (f *fakeConn) SetDeadline(time.Time) error      { return nil }
func (f *fakeConn) SetReadDeadline(time.Time) error  { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

type fakeAddr struct{}

func (fakeAddr) Network() string { return "fake" }
func (fakeAddr) String() string  { return "fake" }
