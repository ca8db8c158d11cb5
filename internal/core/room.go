package core

import "github.com/vovakirdan/linechat-server/internal/proto"

// Room is a state a session occupies. It decides which commands are valid and
// how broadcasts are scoped. A session belongs to exactly one room at a time;
// Session.Transition is the only way to move between rooms.
//
// All methods run on the dispatch path, under the server mutex.
type Room interface {
	// Add makes the session a member (or, for the logout room, runs cleanup).
	Add(s *Session)
	// Remove drops the session from the member list; no-op if absent.
	Remove(s *Session)
	// Handle interprets one frame as a command on behalf of the session.
	Handle(s *Session, frame []byte) Outcome
}

// roomBase carries the member list and command table shared by all room
// variants. Membership is an ordered slice: broadcasts deliver in join order.
type roomBase struct {
	members []*Session
	cmds    map[string]handlerFunc
}

func (r *roomBase) add(s *Session) {
	r.members = append(r.members, s)
}

func (r *roomBase) remove(s *Session) bool {
	for i, m := range r.members {
		if m == s {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

// broadcast pushes a line to every current member. It iterates a snapshot so
// a handler that mutates membership mid-broadcast cannot corrupt the walk.
func (r *roomBase) broadcast(line string) {
	members := make([]*Session, len(r.members))
	copy(members, r.members)
	for _, m := range members {
		m.Push([]byte(line))
	}
}

// dispatch routes a frame through the command table. Unknown keywords get a
// reply; blank frames are dropped.
func (r *roomBase) dispatch(s *Session, frame []byte) Outcome {
	cmd, arg, ok := parseFrame(frame)
	if !ok {
		return Continue
	}
	if h, found := r.cmds[cmd]; found {
		return h(s, arg)
	}
	s.Push([]byte(proto.Unknown(cmd)))
	return Continue
}

// doLogout is available in every room.
func doLogout(*Session, string) Outcome {
	return EndSession
}
