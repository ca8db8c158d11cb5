// Package core implements the chat state machine: sessions, the login/chat/
// logout rooms, and the server-wide name registry. Transports feed raw bytes
// into sessions and drain their outbound queues; everything in between is
// pure state manipulation guarded by one server mutex.
package core

import (
	"sync"

	"github.com/rs/zerolog"
)

// Server owns the name registry and the room singletons shared by every
// connection.
type Server struct {
	// mu guards users, every room's member list, and each session's
	// name/room/closed fields. Command dispatch across connections
	// interleaves on different goroutines, so all of it runs lock-held.
	mu     sync.Mutex
	users  map[string]*Session
	chat   *chatRoom
	login  *loginRoom
	logout *logoutRoom
	log    *zerolog.Logger
}

// NewServer constructs the registry and the three room singletons.
func NewServer(logger *zerolog.Logger) *Server {
	srv := &Server{
		users: make(map[string]*Session),
		log:   logger,
	}
	srv.chat = newChatRoom(srv)
	srv.login = newLoginRoom(srv)
	srv.logout = newLogoutRoom(srv)
	return srv
}

// OnlineUsers returns the names of current chat members in join order.
func (srv *Server) OnlineUsers() []string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	names := make([]string, 0, len(srv.chat.members))
	for _, m := range srv.chat.members {
		names = append(names, m.name)
	}
	return names
}

// registered reports whether a name is claimed. Caller holds mu.
func (srv *Server) registered(name string) bool {
	return srv.users[name] != nil
}
