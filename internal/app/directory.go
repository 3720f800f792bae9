package app

import (
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
)

// Directory is the query side of room membership. Nothing is cached:
// a room exists iff Groups reports at least one member for it.
type Directory struct {
	reg    *Registry
	groups core.Groups
}

func NewDirectory(reg *Registry, groups core.Groups) *Directory {
	return &Directory{reg: reg, groups: groups}
}

// ListActiveRooms returns non-empty groups that are not a connection's private group.
func (d *Directory) ListActiveRooms() []domain.RoomName {
	return d.reg.ActiveRooms()
}

func (d *Directory) MembersOf(name domain.RoomName) []domain.ConnID {
	return d.groups.Members(name)
}

func (d *Directory) MemberCount(name domain.RoomName) int {
	return d.groups.MemberCount(name)
}

// ProfilesOf skips members whose registry entry is already gone.
func (d *Directory) ProfilesOf(name domain.RoomName) []core.MemberDTO {
	members := d.groups.Members(name)
	out := make([]core.MemberDTO, 0, len(members))
	for _, id := range members {
		p, ok := d.reg.Profile(id)
		if !ok {
			continue
		}
		out = append(out, core.MemberDTO{ID: id, Name: p.Name, AvatarURL: p.AvatarURL})
	}
	return out
}

func (d *Directory) RoomInfo(name domain.RoomName) core.RoomInfo {
	return core.RoomInfo{RoomName: name, Users: d.ProfilesOf(name)}
}

type Stats struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}

func (d *Directory) Stats() Stats {
	return Stats{Rooms: len(d.ListActiveRooms()), Connections: d.reg.Len()}
}
