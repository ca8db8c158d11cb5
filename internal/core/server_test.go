package core

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/linechat-server/internal/wire"
)

func TestLoginRejectsEmptyName(t *testing.T) {
	srv := newTestServer(t)
	s := connect(t, srv)

	send(s, "login")
	if got := drain(s); !reflect.DeepEqual(got, []string{"UserName Empty\n"}) {
		t.Fatalf("replies = %q, want [UserName Empty\\n]", got)
	}
	if len(srv.users) != 0 {
		t.Fatalf("registry polluted by rejected login: %v", srv.users)
	}
	if s.room != srv.login {
		t.Fatal("session left the login room after rejection")
	}
}

func TestLoginRejectsTakenName(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv, "alice")

	second := connect(t, srv)
	send(second, "login alice")
	if got := drain(second); !reflect.DeepEqual(got, []string{"UserName Exist\n"}) {
		t.Fatalf("replies = %q, want [UserName Exist\\n]", got)
	}
	if second.room != srv.login {
		t.Fatal("rejected session left the login room")
	}
	if srv.users["alice"] == second {
		t.Fatal("registry entry stolen by rejected login")
	}
}

func TestLoginMovesSessionIntoChat(t *testing.T) {
	srv := newTestServer(t)

	s := connect(t, srv)
	send(s, "login alice")

	got := drain(s)
	want := []string{"Login Success\n", "alice has entered the room.\n"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("replies = %q, want %q", got, want)
	}
	if s.room != srv.chat {
		t.Fatal("session not in the chat room")
	}
	if !srv.registered("alice") {
		t.Fatal("alice missing from registry")
	}
	if s.Name() != "alice" {
		t.Fatalf("Name() = %q, want alice", s.Name())
	}
}

func TestArrivalBroadcastReachesExistingMembers(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")

	login(t, srv, "bob")
	if got := drain(alice); !reflect.DeepEqual(got, []string{"bob has entered the room.\n"}) {
		t.Fatalf("alice saw %q, want bob's arrival", got)
	}
}

func TestSayBroadcastsToEveryMemberIncludingSender(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")
	bob := login(t, srv, "bob")
	drain(alice)

	lurker := connect(t, srv) // still in the login room

	send(alice, "say hello world")
	want := []string{"alice: hello world\n"}
	if got := drain(alice); !reflect.DeepEqual(got, want) {
		t.Fatalf("alice saw %q, want %q", got, want)
	}
	if got := drain(bob); !reflect.DeepEqual(got, want) {
		t.Fatalf("bob saw %q, want %q", got, want)
	}
	if got := drain(lurker); len(got) != 0 {
		t.Fatalf("unauthenticated session received chat broadcast: %q", got)
	}
}

func TestLookListsMembersInJoinOrder(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")
	login(t, srv, "bob")
	drain(alice)

	send(alice, "look")
	want := []string{"Online Users:\nalice\nbob\n"}
	if got := drain(alice); !reflect.DeepEqual(got, want) {
		t.Fatalf("look = %q, want %q", got, want)
	}

	if got := srv.OnlineUsers(); !reflect.DeepEqual(got, []string{"alice", "bob"}) {
		t.Fatalf("OnlineUsers() = %q", got)
	}
}

func TestLogoutCleansUpAndNotifiesEveryone(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")
	bob := login(t, srv, "bob")
	drain(alice)

	send(alice, "logout")

	// The departing user still hears the departure before the queue closes.
	if got := drain(alice); !reflect.DeepEqual(got, []string{"alice has left the room.\n"}) {
		t.Fatalf("alice saw %q, want her own departure", got)
	}
	if got := drain(bob); !reflect.DeepEqual(got, []string{"alice has left the room.\n"}) {
		t.Fatalf("bob saw %q, want alice's departure", got)
	}
	if srv.registered("alice") {
		t.Fatal("alice still in registry after logout")
	}

	send(bob, "look")
	if got := drain(bob); !reflect.DeepEqual(got, []string{"Online Users:\nbob\n"}) {
		t.Fatalf("look after logout = %q", got)
	}

	// The outbound queue is sealed.
	if _, ok := <-alice.Outbound(); ok {
		t.Fatal("outbound channel still open after logout")
	}
}

func TestTransportDropBehavesLikeLogout(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")
	bob := login(t, srv, "bob")
	drain(alice)

	// EOF/error path: the transport calls Close directly.
	alice.Close()

	if got := drain(bob); !reflect.DeepEqual(got, []string{"alice has left the room.\n"}) {
		t.Fatalf("bob saw %q, want alice's departure", got)
	}
	if srv.registered("alice") {
		t.Fatal("alice still in registry after disconnect")
	}

	// Close is idempotent no matter how many triggers fire.
	alice.Close()
}

func TestLogoutBeforeLoginSkipsRegistryAndBroadcast(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")

	s := connect(t, srv)
	send(s, "logout")

	if got := drain(alice); len(got) != 0 {
		t.Fatalf("chat member saw %q for an unauthenticated logout", got)
	}
	if len(srv.users) != 1 {
		t.Fatalf("registry = %v, want only alice", srv.users)
	}
}

func TestUnknownCommandGetsReply(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")

	send(alice, "dance badly")
	if got := drain(alice); !reflect.DeepEqual(got, []string{"Unknown command dance\n"}) {
		t.Fatalf("replies = %q", got)
	}

	// say is not a login-room command.
	s := connect(t, srv)
	send(s, "say hi")
	if got := drain(s); !reflect.DeepEqual(got, []string{"Unknown command say\n"}) {
		t.Fatalf("replies = %q", got)
	}
}

func TestBlankFramesAreIgnored(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")

	alice.Receive([]byte("   \n\n\t\n"))
	if got := drain(alice); len(got) != 0 {
		t.Fatalf("blank frames produced replies: %q", got)
	}
}

func TestSeveralCommandsInOneRead(t *testing.T) {
	srv := newTestServer(t)
	s := connect(t, srv)

	// One transport read carrying login and a chat line.
	s.Receive([]byte("login alice\nsay hi\n"))

	got := drain(s)
	want := []string{
		"Login Success\n",
		"alice has entered the room.\n",
		"alice: hi\n",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("replies = %q, want %q", got, want)
	}
}

func TestFixedLengthFrameDispatch(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")

	// Swap the connection to fixed-length framing: the next 6 bytes are one
	// frame, no newline involved.
	if err := alice.SetTerminator(wire.Count(6)); err != nil {
		t.Fatalf("SetTerminator: %v", err)
	}
	alice.Receive([]byte("say ok"))

	if got := drain(alice); !reflect.DeepEqual(got, []string{"alice: ok\n"}) {
		t.Fatalf("replies = %q, want [alice: ok\\n]", got)
	}
}

// TestTwoClientScenario walks the full happy path: duplicate-name rejection,
// second login, chat, and logout visibility.
func TestTwoClientScenario(t *testing.T) {
	srv := newTestServer(t)

	alice := login(t, srv, "alice")

	second := connect(t, srv)
	send(second, "login alice")
	if got := drain(second); !reflect.DeepEqual(got, []string{"UserName Exist\n"}) {
		t.Fatalf("duplicate login replies = %q", got)
	}

	send(second, "login bob")
	got := drain(second)
	want := []string{"Login Success\n", "bob has entered the room.\n"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("bob login replies = %q, want %q", got, want)
	}
	drain(alice)

	send(alice, "say hi")
	for name, s := range map[string]*Session{"alice": alice, "bob": second} {
		if got := drain(s); !reflect.DeepEqual(got, []string{"alice: hi\n"}) {
			t.Fatalf("%s saw %q, want [alice: hi\\n]", name, got)
		}
	}

	send(alice, "logout")
	if got := drain(second); !reflect.DeepEqual(got, []string{"alice has left the room.\n"}) {
		t.Fatalf("bob saw %q after alice logout", got)
	}
	if srv.registered("alice") {
		t.Fatal("alice still registered after logout")
	}
}
