package app

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dkeye/Signal/internal/core"
	"github.com/dkeye/Signal/internal/domain"
	"github.com/rs/zerolog/log"
)

// JoinResult describes what a Join changed.
type JoinResult struct {
	Role domain.Role
	// Existing lists the members as of just before the joiner was added.
	Existing []domain.ConnID
	// Previous is set when the join evicted the connection from another room.
	Previous *LeaveResult
	// Rejoined is true when the connection already was in the room.
	Rejoined bool
}

// LeaveResult describes what a Leave changed.
type LeaveResult struct {
	Room      domain.RoomID
	Remaining []domain.ConnID
	Deleted   bool
}

type membership struct {
	room domain.RoomID
	role domain.Role
}

// RoomManager owns room membership. A room exists exactly while it has at
// least one member; each connection is in at most one room.
type RoomManager struct {
	mu     sync.RWMutex
	rooms  map[domain.RoomID][]domain.ConnID
	byConn map[domain.ConnID]membership
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms:  make(map[domain.RoomID][]domain.ConnID),
		byConn: make(map[domain.ConnID]membership),
	}
}

func (m *RoomManager) Join(conn domain.ConnID, room domain.RoomID) JoinResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res JoinResult
	if cur, ok := m.byConn[conn]; ok {
		if cur.room == room {
			res.Role = cur.role
			res.Existing = without(m.rooms[room], conn)
			res.Rejoined = true
			return res
		}
		prev := m.removeLocked(conn, cur.room)
		res.Previous = &prev
	}

	members, ok := m.rooms[room]
	if !ok {
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room created")
	}
	res.Role = AssignRole(len(members))
	res.Existing = slices.Clone(members)
	m.rooms[room] = append(members, conn)
	m.byConn[conn] = membership{room: room, role: res.Role}

	log.Info().
		Str("module", "app.rooms").
		Str("sid", string(conn)).
		Str("room", string(room)).
		Str("role", string(res.Role)).
		Int("members", len(m.rooms[room])).
		Msg("member added")
	return res
}

// Leave removes conn from room. An empty room resolves to the connection's
// current room. It reports false when conn is not a member of that room.
func (m *RoomManager) Leave(conn domain.ConnID, room domain.RoomID) (LeaveResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.byConn[conn]
	if !ok {
		return LeaveResult{}, false
	}
	if room != "" && room != cur.room {
		return LeaveResult{}, false
	}
	return m.removeLocked(conn, cur.room), true
}

func (m *RoomManager) removeLocked(conn domain.ConnID, room domain.RoomID) LeaveResult {
	remaining := without(m.rooms[room], conn)
	delete(m.byConn, conn)

	res := LeaveResult{Room: room, Remaining: remaining}
	if len(remaining) == 0 {
		delete(m.rooms, room)
		res.Deleted = true
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room removed")
	} else {
		m.rooms[room] = remaining
	}
	log.Info().
		Str("module", "app.rooms").
		Str("sid", string(conn)).
		Str("room", string(room)).
		Int("members", len(remaining)).
		Msg("member removed")
	return res
}

func (m *RoomManager) MembersOf(room domain.RoomID) []domain.ConnID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.rooms[room])
}

func (m *RoomManager) RoomOf(conn domain.ConnID) (domain.RoomID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cur, ok := m.byConn[conn]
	return cur.room, ok
}

func (m *RoomManager) RoleOf(conn domain.ConnID) (domain.Role, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cur, ok := m.byConn[conn]
	return cur.role, ok
}

func (m *RoomManager) IsMember(conn domain.ConnID, room domain.RoomID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cur, ok := m.byConn[conn]
	return ok && cur.room == room
}

func (m *RoomManager) List() []core.RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(m.rooms))
	for id, members := range m.rooms {
		out = append(out, core.RoomInfo{ID: id, MemberCount: len(members)})
	}
	slices.SortFunc(out, func(a, b core.RoomInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (m *RoomManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// without returns a fresh slice of members minus conn.
func without(members []domain.ConnID, conn domain.ConnID) []domain.ConnID {
	out := make([]domain.ConnID, 0, len(members))
	for _, id := range members {
		if id != conn {
			out = append(out, id)
		}
	}
	return out
}
