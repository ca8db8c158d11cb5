// Package tcp serves the raw line protocol over plain TCP sockets. Each
// connection gets a core session, a read loop feeding it raw bytes, and a
// write loop draining its outbound queue.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/linechat-server/internal/core"
)

const readBufferSize = 4096

// Server accepts TCP connections and bridges them to the chat core.
type Server struct {
	addr string
	core *core.Server
	log  *zerolog.Logger
}

// New builds a TCP transport bound to addr.
func New(addr string, c *core.Server, logger *zerolog.Logger) *Server {
	return &Server{addr: addr, core: c, log: logger}
}

// Run listens on the configured address and serves until the context is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("tcp listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until the context is cancelled.
// Cancellation closes the listener, which unblocks Accept; live connections
// are closed as their sessions wind down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Msg("tcp transport listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Error().Err(err).Msg("accept failed")
			continue
		}
		go s.handle(ctx, conn)
	}
}

// handle runs the read loop for one connection; the write loop runs alongside
// and owns closing the socket after the outbound queue drains.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	sess := s.core.NewSession()
	s.log.Debug().
		Str("session_id", sess.ID()).
		Str("remote", conn.RemoteAddr().String()).
		Msg("tcp connection accepted")

	// Unblock the pending read if the whole server is shutting down.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	go writeLoop(conn, sess)

	buf := make([]byte, readBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			sess.Receive(buf[:n])
		}
		if err != nil {
			// EOF and read errors end the session the same way a logout does.
			sess.Close()
			return
		}
	}
}

// writeLoop drains the session's outbound queue into the socket and closes it
// once the queue is sealed, so queued departure notices still get flushed.
func writeLoop(conn net.Conn, sess *core.Session) {
	defer conn.Close()
	for p := range sess.Outbound() {
		if _, err := conn.Write(p); err != nil {
			return
		}
	}
}
