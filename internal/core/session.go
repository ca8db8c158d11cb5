package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/linechat-server/internal/wire"
)

// outboundDepth bounds the per-session write queue. Push drops when full so
// one stalled client cannot wedge a broadcast.
const outboundDepth = 64

// Session bridges one transport connection to the room state machine. The
// transport's read loop calls Receive; its write loop drains Outbound. The
// splitter belongs to the read loop; name, room and closed belong to the
// server mutex.
type Session struct {
	id       string
	srv      *Server
	splitter *wire.Splitter
	outbound chan []byte
	log      zerolog.Logger

	name   string
	room   Room
	closed bool

	closeOnce sync.Once
}

// NewSession creates a session for a fresh connection and places it in the
// login room, which greets it with the connect acknowledgment.
func (srv *Server) NewSession() *Session {
	splitter, err := wire.NewSplitter(wire.Delim("\n"))
	if err != nil {
		// Delim("\n") is always a valid terminator.
		panic(err)
	}

	s := &Session{
		id:       uuid.NewString(),
		srv:      srv,
		splitter: splitter,
		outbound: make(chan []byte, outboundDepth),
	}
	s.log = srv.log.With().Str("session_id", s.id).Logger()

	srv.mu.Lock()
	s.Transition(srv.login)
	srv.mu.Unlock()

	s.log.Debug().Msg("session opened")
	return s
}

// ID returns the session's opaque identifier.
func (s *Session) ID() string {
	return s.id
}

// Name returns the name claimed at login, empty before authentication.
func (s *Session) Name() string {
	s.srv.mu.Lock()
	defer s.srv.mu.Unlock()
	return s.name
}

// Outbound is the queue of reply bytes for the transport write loop. It is
// closed when the session closes; the transport should drain it fully before
// tearing down the connection so in-flight notices still reach the client.
func (s *Session) Outbound() <-chan []byte {
	return s.outbound
}

// Push enqueues bytes for outbound delivery. It never blocks: when the queue
// is full the payload is dropped and logged. Push runs on the dispatch path,
// under the server mutex.
func (s *Session) Push(p []byte) {
	if s.closed {
		return
	}
	select {
	case s.outbound <- p:
	default:
		s.log.Warn().Int("bytes", len(p)).Msg("outbound queue full, dropping")
	}
}

// SetTerminator changes the inbound frame boundary for this connection. It
// belongs to the read loop, like Receive.
func (s *Session) SetTerminator(t wire.Terminator) error {
	return s.splitter.SetTerminator(t)
}

// Receive feeds raw transport bytes through the splitter and dispatches each
// completed frame to the current room. A handler signalling EndSession closes
// the session; any frames already split off after that are discarded.
func (s *Session) Receive(p []byte) {
	for _, frame := range s.splitter.Feed(p) {
		s.srv.mu.Lock()
		outcome := s.room.Handle(s, frame)
		s.srv.mu.Unlock()

		if outcome == EndSession {
			s.Close()
			return
		}
	}
}

// Transition atomically moves the session between rooms: remove from the
// current room, then add to the new one. It is the only mutator of the room
// field and runs under the server mutex (handlers call it mid-dispatch).
func (s *Session) Transition(r Room) {
	if s.room != nil {
		s.room.Remove(s)
	}
	s.room = r
	r.Add(s)
}

// Close ends the session exactly once, whatever the trigger: logout command,
// transport EOF, or protocol error. It moves the session into the logout room
// so registry cleanup and the departure broadcast run before the outbound
// queue is sealed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.srv.mu.Lock()
		s.Transition(s.srv.logout)
		s.closed = true
		close(s.outbound)
		s.srv.mu.Unlock()

		s.log.Debug().Msg("session closed")
	})
}
