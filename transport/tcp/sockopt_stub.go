//go:build !linux

// File: transport/tcp/sockopt_stub.go

package tcp

import "syscall"

// controlSocket is a no-op where SO_REUSEPORT tuning is unavailable.
func controlSocket(network, address string, c syscall.RawConn) error {
	return nil
}
