package core

import "github.com/dkeye/Lobby/internal/domain"

// Groups is the authoritative connection<->group edge table.
// A group exists iff it has at least one member.
type Groups interface {
	// Add reports whether a new edge was created.
	Add(id domain.ConnID, group domain.RoomName) bool
	// Remove reports whether an edge was deleted.
	Remove(id domain.ConnID, group domain.RoomName) bool
	// RemoveAll drops every edge of id and returns the groups it was in.
	RemoveAll(id domain.ConnID) []domain.RoomName

	Has(id domain.ConnID, group domain.RoomName) bool
	// Members is ordered by join time; unknown groups yield an empty slice.
	Members(group domain.RoomName) []domain.ConnID
	MemberCount(group domain.RoomName) int
	// GroupsOf is sorted by name.
	GroupsOf(id domain.ConnID) []domain.RoomName
	// Names is sorted and contains only non-empty groups.
	Names() []domain.RoomName
}
