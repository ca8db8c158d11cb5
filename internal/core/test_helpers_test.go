package core

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := zerolog.Nop()
	return NewServer(&logger)
}

// connect opens a session and discards the connect acknowledgment so tests
// start from a quiet outbound queue.
func connect(t *testing.T, srv *Server) *Session {
	t.Helper()

	s := srv.NewSession()
	if got := drain(s); len(got) != 1 || got[0] != "Connect Success\n" {
		t.Fatalf("connect pushed %q, want [Connect Success\\n]", got)
	}
	return s
}

func send(s *Session, line string) {
	s.Receive([]byte(line + "\n"))
}

// drain empties the session's outbound queue without blocking. Dispatch is
// synchronous, so everything a command produced is already queued.
func drain(s *Session) []string {
	var out []string
	for {
		select {
		case p, ok := <-s.Outbound():
			if !ok {
				return out
			}
			out = append(out, string(p))
		default:
			return out
		}
	}
}

func login(t *testing.T, srv *Server, name string) *Session {
	t.Helper()

	s := connect(t, srv)
	send(s, "login "+name)
	got := drain(s)
	if len(got) == 0 || got[0] != "Login Success\n" {
		t.Fatalf("login %s replies = %q, want Login Success first", name, got)
	}
	return s
}
