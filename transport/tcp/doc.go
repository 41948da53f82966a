// Package tcp implements the TCP acceptor and the minimal RFC 6455
// handshake in front of the frame stream layer. The listener applies
// platform socket tuning (SO_REUSEPORT on Linux) and hands each accepted,
// optionally upgraded connection to a caller-supplied handler.
package tcp
