// File: transport/tcp/listener.go
//
// TCP accept loop with optional WebSocket upgrade.

package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matthunz/ws-frame/transport"
)

// handshakeDeadline bounds how long a client may take to complete the
// HTTP upgrade before the connection is dropped.
const handshakeDeadline = 5 * time.Second

// Config holds listener settings.
type Config struct {
	// Addr is the TCP address to bind, e.g. ":9001".
	Addr string
	// Handshake performs the RFC 6455 upgrade before handing the
	// connection over. Disable it when the peer sends raw frames.
	Handshake bool
	// Log receives accept and handshake diagnostics. nil means a default
	// logger.
	Log *logrus.Logger
}

// Server accepts TCP connections and hands them to a handler.
type Server struct {
	cfg Config
	log *logrus.Logger
	ln  net.Listener
}

// NewServer creates a server; Serve binds and runs it.
func NewServer(cfg Config) *Server {
	log := cfg.Log
	if log == nil {
		log = logrus.New()
	}
	return &Server{cfg: cfg, log: log}
}

// Serve binds the listening socket and runs the accept loop, invoking
// handler on its own goroutine for every connection that survives the
// optional handshake. Serve returns nil after Close.
func (s *Server) Serve(handler func(*transport.NetConn)) error {
	lc := net.ListenConfig{Control: controlSocket}
	ln, err := lc.Listen(context.Background(), "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("tcp listen %s: %w", s.cfg.Addr, err)
	}
	s.ln = ln
	s.log.WithField("addr", ln.Addr().String()).Info("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.WithError(err).Warn("accept failed")
			continue
		}
		go s.handleConn(conn, handler)
	}
}

// Close stops the accept loop. Connections already handed out keep
// running.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) handleConn(conn net.Conn, handler func(*transport.NetConn)) {
	log := s.log.WithField("peer", conn.RemoteAddr().String())

	if s.cfg.Handshake {
		_ = conn.SetDeadline(time.Now().Add(handshakeDeadline))
		rest, err := Upgrade(conn)
		if err != nil {
			log.WithError(err).Debug("handshake rejected")
			conn.Close()
			return
		}
		_ = conn.SetDeadline(time.Time{})

		log.Debug("connection up")
		// rest carries any frame bytes pipelined behind the upgrade
		// request; the stream must start there, not on the bare conn.
		handler(transport.NewNetConnReader(rest, conn))
		return
	}

	log.Debug("connection up")
	handler(transport.NewNetConn(conn))
}
