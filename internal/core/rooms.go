package core

import (
	"strings"

	"github.com/vovakirdan/linechat-server/internal/proto"
)

// loginRoom holds freshly connected sessions until they claim a name.
type loginRoom struct {
	roomBase
	srv *Server
}

func newLoginRoom(srv *Server) *loginRoom {
	r := &loginRoom{srv: srv}
	r.cmds = map[string]handlerFunc{
		proto.CmdLogin:  r.doLogin,
		proto.CmdLogout: doLogout,
	}
	return r
}

func (r *loginRoom) Add(s *Session) {
	r.add(s)
	s.Push([]byte(proto.ConnectSuccess))
}

func (r *loginRoom) Remove(s *Session) {
	r.remove(s)
}

func (r *loginRoom) Handle(s *Session, frame []byte) Outcome {
	return r.dispatch(s, frame)
}

func (r *loginRoom) doLogin(s *Session, arg string) Outcome {
	name := arg
	switch {
	case name == "":
		s.Push([]byte(proto.UserNameEmpty))
	case r.srv.registered(name):
		s.Push([]byte(proto.UserNameExist))
	default:
		s.name = name
		s.Transition(r.srv.chat)
		r.srv.log.Info().Str("session_id", s.id).Str("user", name).Msg("user logged in")
	}
	// A rejected login leaves the session in the login room.
	return Continue
}

// chatRoom is the single long-lived room holding every authenticated user.
type chatRoom struct {
	roomBase
	srv *Server
}

func newChatRoom(srv *Server) *chatRoom {
	r := &chatRoom{srv: srv}
	r.cmds = map[string]handlerFunc{
		proto.CmdSay:    r.doSay,
		proto.CmdLook:   r.doLook,
		proto.CmdLogout: doLogout,
	}
	return r
}

// Add registers the newcomer and announces the arrival to every member,
// the newcomer included.
func (r *chatRoom) Add(s *Session) {
	s.Push([]byte(proto.LoginSuccess))
	r.srv.users[s.name] = s
	r.add(s)
	r.broadcast(proto.Entered(s.name))
}

// Remove announces the departure while the leaving session can still hear it,
// then drops it from the member list.
func (r *chatRoom) Remove(s *Session) {
	if !r.contains(s) {
		return
	}
	r.broadcast(proto.Left(s.name))
	r.remove(s)
}

func (r *chatRoom) Handle(s *Session, frame []byte) Outcome {
	return r.dispatch(s, frame)
}

func (r *chatRoom) contains(s *Session) bool {
	for _, m := range r.members {
		if m == s {
			return true
		}
	}
	return false
}

func (r *chatRoom) doSay(s *Session, arg string) Outcome {
	r.broadcast(proto.Say(s.name, arg))
	return Continue
}

func (r *chatRoom) doLook(s *Session, _ string) Outcome {
	var b strings.Builder
	b.WriteString(proto.OnlineUsers)
	for _, m := range r.members {
		b.WriteString(m.name)
		b.WriteByte('\n')
	}
	s.Push([]byte(b.String()))
	return Continue
}

// logoutRoom is a terminal pseudo-room: entering it runs registry cleanup.
// It never lists members.
type logoutRoom struct {
	roomBase
	srv *Server
}

func newLogoutRoom(srv *Server) *logoutRoom {
	r := &logoutRoom{srv: srv}
	r.cmds = map[string]handlerFunc{
		proto.CmdLogout: doLogout,
	}
	return r
}

// Add is a cleanup hook: it unregisters the session's name. A session that
// never logged in has no name, so the delete is a no-op.
func (r *logoutRoom) Add(s *Session) {
	delete(r.srv.users, s.name)
}

func (r *logoutRoom) Remove(*Session) {}

func (r *logoutRoom) Handle(s *Session, frame []byte) Outcome {
	return r.dispatch(s, frame)
}
