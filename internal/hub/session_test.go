package hub

import "testing"

func TestSessionsJoinLeave(t *testing.T) {
	s := NewSessions()
	s.Join("main", "c1", UserMeta{UserID: "u1", Color: "#f00"})
	s.Join("main", "c2", UserMeta{UserID: "u2", Color: "#0f0"})

	members := s.MembersOf("main")
	if len(members) != 2 || members[0] != "c1" || members[1] != "c2" {
		t.Fatalf("members %v, want sorted [c1 c2]", members)
	}

	room, meta, ok := s.Leave("c1")
	if !ok || room != "main" || meta.UserID != "u1" {
		t.Fatalf("leave returned (%q, %+v, %v)", room, meta, ok)
	}
	if members := s.MembersOf("main"); len(members) != 1 || members[0] != "c2" {
		t.Fatalf("members after leave %v", members)
	}
}

func TestSessionsLeaveUnknownConn(t *testing.T) {
	s := NewSessions()
	if _, _, ok := s.Leave("ghost"); ok {
		t.Fatal("leaving without joining must report not found")
	}
}

func TestSessionsJoinMovesRooms(t *testing.T) {
	s := NewSessions()
	s.Join("alpha", "c1", UserMeta{UserID: "u1"})
	s.Join("beta", "c1", UserMeta{UserID: "u1"})

	if members := s.MembersOf("alpha"); len(members) != 0 {
		t.Fatalf("alpha still has %v; a connection belongs to one room", members)
	}
	if members := s.MembersOf("beta"); len(members) != 1 {
		t.Fatalf("beta has %v, want [c1]", members)
	}
}
