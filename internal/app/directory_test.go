package app

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDirectory_ListActiveRooms(t *testing.T) {
	reg, groups := newTestRegistry()
	dir := NewDirectory(reg, groups)
	reg.Connect("a", nopSignal{}, nil)
	reg.Connect("b", nopSignal{}, nil)

	assert.Empty(t, dir.ListActiveRooms(), "private groups are filtered")

	reg.Join("a", "lobby")
	reg.Join("b", "games")
	assert.Equal(t, []domain.RoomName{"games", "lobby"}, dir.ListActiveRooms())

	reg.Leave("b", "games")
	assert.Equal(t, []domain.RoomName{"lobby"}, dir.ListActiveRooms(), "empty room disappears")

	reg.Disconnect("a")
	assert.Empty(t, dir.ListActiveRooms())
}

func TestDirectory_ListActiveRoomsDuringChurn(t *testing.T) {
	reg, groups := newTestRegistry()
	dir := NewDirectory(reg, groups)
	reg.Connect("anchor", nopSignal{}, nil)
	reg.Join("anchor", "lobby")

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				default:
				}
				id := domain.ConnID(fmt.Sprintf("conn-%d-%d", w, i))
				reg.Connect(id, nopSignal{}, nil)
				reg.Join(id, "lobby")
				reg.Disconnect(id)
			}
		}()
	}

	var leaked domain.RoomName
	for i := 0; i < 5000 && leaked == ""; i++ {
		for _, name := range dir.ListActiveRooms() {
			if name != "lobby" {
				leaked = name
			}
		}
		_ = dir.Stats()
		_ = dir.ProfilesOf("lobby")
	}
	close(stop)
	wg.Wait()

	assert.Empty(t, leaked, "a private group was listed as a room")
	assert.Equal(t, []domain.RoomName{"lobby"}, dir.ListActiveRooms())
	assert.Equal(t, []domain.ConnID{"anchor"}, dir.MembersOf("lobby"))
	assert.Equal(t, 1, reg.Len())
}

func TestDirectory_ProfilesOf(t *testing.T) {
	reg, groups := newTestRegistry()
	dir := NewDirectory(reg, groups)
	reg.Connect("a", nopSignal{}, nil)
	reg.Connect("b", nopSignal{}, nil)
	reg.SetProfile("a", domain.Profile{Name: "alice", AvatarURL: "a.png"})
	reg.SetProfile("b", domain.Profile{Name: "bob"})
	reg.Join("a", "lobby")
	reg.Join("b", "lobby")
	// An edge without a registry entry, as seen mid-disconnect.
	groups.Add("stale", "lobby")

	assert.Equal(t, []core.MemberDTO{
		{ID: "a", Name: "alice", AvatarURL: "a.png"},
		{ID: "b", Name: "bob"},
	}, dir.ProfilesOf("lobby"))
	assert.Equal(t, []domain.ConnID{"a", "b", "stale"}, dir.MembersOf("lobby"))
}

func TestDirectory_UnknownRoom(t *testing.T) {
	reg, groups := newTestRegistry()
	dir := NewDirectory(reg, groups)

	assert.Empty(t, dir.MembersOf("nowhere"))
	assert.Empty(t, dir.ProfilesOf("nowhere"))
	info := dir.RoomInfo("nowhere")
	assert.Equal(t, domain.RoomName("nowhere"), info.RoomName)
	assert.NotNil(t, info.Users)
}

func TestDirectory_Stats(t *testing.T) {
	reg, groups := newTestRegistry()
	dir := NewDirectory(reg, groups)
	reg.Connect("a", nopSignal{}, nil)
	reg.Connect("b", nopSignal{}, nil)
	reg.Join("a", "lobby")

	assert.Equal(t, Stats{Rooms: 1, Connections: 2}, dir.Stats())
}

func TestPolicyFromString(t *testing.T) {
	p, err := PolicyFromString("kick")
	assert.NoError(t, err)
	assert.Equal(t, KickMember, p.OnBackPressure("a", core.EventMessage))

	p, err = PolicyFromString("drop")
	assert.NoError(t, err)
	assert.Equal(t, DropFrame, p.OnBackPressure("a", core.EventMessage))

	_, err = PolicyFromString("bogus")
	assert.Error(t, err)
}
