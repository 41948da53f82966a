//go:build linux

// File: transport/tcp/sockopt_linux.go
//
// Linux listener socket tuning.

package tcp

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// controlSocket enables SO_REUSEPORT on the listening socket so multiple
// acceptor processes can share a port.
func controlSocket(network, address string, c syscall.RawConn) error {
	var opErr error
	if err := c.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	}); err != nil {
		return err
	}
	return opErr
}
