package app

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/dkeye/Signal/internal/domain"
)

func TestRoomManager_FirstJoinerHosts(t *testing.T) {
	m := NewRoomManager()

	a := m.Join("a", "r1")
	b := m.Join("b", "r1")
	c := m.Join("c", "r1")

	if a.Role != domain.RoleHost {
		t.Fatalf("a role=%s, want host", a.Role)
	}
	if b.Role != domain.RoleParticipant || c.Role != domain.RoleParticipant {
		t.Fatalf("b role=%s c role=%s, want participant", b.Role, c.Role)
	}
	if len(a.Existing) != 0 {
		t.Fatalf("a existing=%v, want empty", a.Existing)
	}
	if !slices.Equal(b.Existing, []domain.ConnID{"a"}) {
		t.Fatalf("b existing=%v, want [a]", b.Existing)
	}
	if !slices.Equal(c.Existing, []domain.ConnID{"a", "b"}) {
		t.Fatalf("c existing=%v, want [a b]", c.Existing)
	}
}

func TestRoomManager_EmptyRoomIsRemoved(t *testing.T) {
	m := NewRoomManager()
	m.Join("a", "r1")
	m.Join("b", "r1")

	res, ok := m.Leave("a", "")
	if !ok || res.Deleted || !slices.Equal(res.Remaining, []domain.ConnID{"b"}) {
		t.Fatalf("Leave(a)=%+v,%v", res, ok)
	}
	res, ok = m.Leave("b", "r1")
	if !ok || !res.Deleted || len(res.Remaining) != 0 {
		t.Fatalf("Leave(b)=%+v,%v, want deleted", res, ok)
	}
	if got := m.Count(); got != 0 {
		t.Fatalf("Count=%d, want 0", got)
	}
	if got := m.List(); len(got) != 0 {
		t.Fatalf("List=%v, want empty", got)
	}
}

func TestRoomManager_LeaveIsIdempotent(t *testing.T) {
	m := NewRoomManager()
	m.Join("a", "r1")
	m.Join("b", "r1")

	if _, ok := m.Leave("a", ""); !ok {
		t.Fatalf("first Leave reported no-op")
	}
	if _, ok := m.Leave("a", ""); ok {
		t.Fatalf("second Leave changed state")
	}
	if _, ok := m.Leave("a", "r1"); ok {
		t.Fatalf("explicit Leave after leaving changed state")
	}
	if got := m.MembersOf("r1"); !slices.Equal(got, []domain.ConnID{"b"}) {
		t.Fatalf("members=%v, want [b]", got)
	}
}

func TestRoomManager_LeaveOtherRoomIsNoop(t *testing.T) {
	m := NewRoomManager()
	m.Join("a", "r1")

	if _, ok := m.Leave("a", "r2"); ok {
		t.Fatalf("Leave of a foreign room reported a change")
	}
	if room, ok := m.RoomOf("a"); !ok || room != "r1" {
		t.Fatalf("RoomOf=%q,%v, want r1", room, ok)
	}
}

func TestRoomManager_JoinElsewhereEvicts(t *testing.T) {
	m := NewRoomManager()
	m.Join("a", "r1")
	m.Join("b", "r1")

	res := m.Join("a", "r2")
	if res.Previous == nil {
		t.Fatalf("Previous=nil, want eviction from r1")
	}
	if res.Previous.Room != "r1" || !slices.Equal(res.Previous.Remaining, []domain.ConnID{"b"}) {
		t.Fatalf("Previous=%+v", *res.Previous)
	}
	if res.Role != domain.RoleHost {
		t.Fatalf("role in r2=%s, want host", res.Role)
	}
	if m.IsMember("a", "r1") || !m.IsMember("a", "r2") {
		t.Fatalf("membership not moved to r2")
	}

	// The last member moving away removes the room.
	m.Join("b", "r2")
	if got := m.MembersOf("r1"); len(got) != 0 {
		t.Fatalf("r1 members=%v, want none", got)
	}
	if got := m.Count(); got != 1 {
		t.Fatalf("Count=%d, want 1", got)
	}
}

func TestRoomManager_RejoinSameRoom(t *testing.T) {
	m := NewRoomManager()
	m.Join("a", "r1")
	m.Join("b", "r1")

	res := m.Join("a", "r1")
	if !res.Rejoined || res.Previous != nil {
		t.Fatalf("rejoin=%+v", res)
	}
	if res.Role != domain.RoleHost {
		t.Fatalf("role=%s, want host kept", res.Role)
	}
	if got := m.MembersOf("r1"); !slices.Equal(got, []domain.ConnID{"a", "b"}) {
		t.Fatalf("members=%v, want [a b]", got)
	}
}

func TestRoomManager_HostIsNotReplaced(t *testing.T) {
	m := NewRoomManager()
	m.Join("a", "r1")
	m.Join("b", "r1")
	m.Leave("a", "")

	if role, _ := m.RoleOf("b"); role != domain.RoleParticipant {
		t.Fatalf("b role=%s, want participant", role)
	}
	if res := m.Join("c", "r1"); res.Role != domain.RoleParticipant {
		t.Fatalf("c role=%s, want participant", res.Role)
	}
}

func TestRoomManager_ConcurrentJoinsElectOneHost(t *testing.T) {
	m := NewRoomManager()
	const n = 64

	var wg sync.WaitGroup
	roles := make([]domain.Role, n)
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			roles[i] = m.Join(domain.ConnID(fmt.Sprintf("c%d", i)), "r1").Role
		}()
	}
	wg.Wait()

	hosts := 0
	for _, r := range roles {
		if r == domain.RoleHost {
			hosts++
		}
	}
	if hosts != 1 {
		t.Fatalf("hosts=%d, want 1", hosts)
	}
	members := m.MembersOf("r1")
	if len(members) != n {
		t.Fatalf("members=%d, want %d", len(members), n)
	}
	if role, _ := m.RoleOf(members[0]); role != domain.RoleHost {
		t.Fatalf("first inserted member role=%s, want host", role)
	}
}

func TestRoomManager_List(t *testing.T) {
	m := NewRoomManager()
	m.Join("a", "beta")
	m.Join("b", "alpha")
	m.Join("c", "alpha")

	got := m.List()
	if len(got) != 2 || got[0].ID != "alpha" || got[0].MemberCount != 2 || got[1].ID != "beta" || got[1].MemberCount != 1 {
		t.Fatalf("List=%+v", got)
	}
}
