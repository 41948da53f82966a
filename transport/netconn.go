// File: transport/netconn.go
//
// Thin counting wrapper around net.Conn, the io.Reader handed to the
// stream layer.

package transport

import (
	"io"
	"net"
	"sync/atomic"

	"github.com/matthunz/ws-frame/api"
)

// NetConn wraps a net.Conn and counts traffic in both directions. It is
// the reader a stream.Reader accumulates from.
type NetConn struct {
	conn   net.Conn
	src    io.Reader
	rx     atomic.Int64
	tx     atomic.Int64
	closed atomic.Bool
}

// NewNetConn wraps conn.
func NewNetConn(conn net.Conn) *NetConn {
	return &NetConn{conn: conn, src: conn}
}

// NewNetConnReader wraps conn but reads from src instead. Used after a
// handshake whose read buffer may hold pipelined frame bytes: src drains
// that buffer first and then continues with the connection.
func NewNetConnReader(src io.Reader, conn net.Conn) *NetConn {
	return &NetConn{conn: conn, src: src}
}

// Read fills buf from the connection.
func (n *NetConn) Read(buf []byte) (int, error) {
	if n.closed.Load() {
		return 0, api.ErrTransportClosed
	}
	nread, err := n.src.Read(buf)
	n.rx.Add(int64(nread))
	return nread, err
}

// Write sends buf on the connection.
func (n *NetConn) Write(buf []byte) (int, error) {
	if n.closed.Load() {
		return 0, api.ErrTransportClosed
	}
	nwritten, err := n.conn.Write(buf)
	n.tx.Add(int64(nwritten))
	return nwritten, err
}

// Close closes the underlying connection. Idempotent.
func (n *NetConn) Close() error {
	if n.closed.Swap(true) {
		return nil
	}
	return n.conn.Close()
}

// RemoteAddr reports the peer address.
func (n *NetConn) RemoteAddr() net.Addr {
	return n.conn.RemoteAddr()
}

// BytesRead reports total bytes read so far.
func (n *NetConn) BytesRead() int64 { return n.rx.Load() }

// BytesWritten reports total bytes written so far.
func (n *NetConn) BytesWritten() int64 { return n.tx.Load() }
