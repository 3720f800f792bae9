package core

import "github.com/dkeye/Lobby/internal/domain"

type AudienceKind int

const (
	// AudienceConn addresses a single connection.
	AudienceConn AudienceKind = iota
	// AudienceRoom addresses the current members of a room, minus Except.
	AudienceRoom
	// AudienceAll addresses every registered connection.
	AudienceAll
)

type Audience struct {
	Kind   AudienceKind
	Conn   domain.ConnID
	Room   domain.RoomName
	Except domain.ConnID
}

func ToConn(id domain.ConnID) Audience { return Audience{Kind: AudienceConn, Conn: id} }

func ToRoom(name domain.RoomName) Audience { return Audience{Kind: AudienceRoom, Room: name} }

// ToRoomExcept addresses the room without the given member.
func ToRoomExcept(name domain.RoomName, except domain.ConnID) Audience {
	return Audience{Kind: AudienceRoom, Room: name, Except: except}
}

func ToAll() Audience { return Audience{Kind: AudienceAll} }

// Notification is one outbound event produced by a state transition.
// Audiences are resolved at delivery time against current membership.
type Notification struct {
	To      Audience
	Event   string
	Payload any
}
