package hub

import (
	"sort"
	"sync"
)

// Sessions tracks which connections belong to which room, with the identity
// each presented on join. Membership is in-memory only; after a restart
// every client rejoins and the directory rebuilds itself.
type Sessions struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]UserMeta // room -> connID -> meta
	byConn map[string]string              // connID -> room
}

func NewSessions() *Sessions {
	return &Sessions{
		rooms:  make(map[string]map[string]UserMeta),
		byConn: make(map[string]string),
	}
}

// Join registers the connection in a room. A connection belongs to at most
// one room, so joining again moves it.
func (s *Sessions) Join(room, connID string, meta UserMeta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(connID)
	members, ok := s.rooms[room]
	if !ok {
		members = make(map[string]UserMeta)
		s.rooms[room] = members
	}
	members[connID] = meta
	s.byConn[connID] = room
}

// Leave removes the connection from whatever room it was in and returns the
// room and identity it had there. ok is false if it was not a member
// anywhere.
func (s *Sessions) Leave(connID string) (room string, meta UserMeta, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok = s.byConn[connID]
	if !ok {
		return "", UserMeta{}, false
	}
	meta = s.rooms[room][connID]
	s.removeLocked(connID)
	return room, meta, true
}

// MembersOf returns the connection ids in a room, sorted for stable output.
func (s *Sessions) MembersOf(room string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]string, 0, len(s.rooms[room]))
	for connID := range s.rooms[room] {
		members = append(members, connID)
	}
	sort.Strings(members)
	return members
}

func (s *Sessions) removeLocked(connID string) {
	room, ok := s.byConn[connID]
	if !ok {
		return
	}
	delete(s.rooms[room], connID)
	if len(s.rooms[room]) == 0 {
		delete(s.rooms, room)
	}
	delete(s.byConn, connID)
}
