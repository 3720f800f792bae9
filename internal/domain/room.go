package domain

import (
	"errors"
	"strings"
)

const MaxRoomNameLen = 64

var (
	ErrRoomNameEmpty   = errors.New("room name empty")
	ErrRoomNameTooLong = errors.New("room name too long")

	// ErrRoomNameReserved marks a name that is a live connection's private group.
	ErrRoomNameReserved = errors.New("room name reserved")
)

// RoomName identifies a room. A room has no identity beyond its current members.
type RoomName string

func NewRoomName(raw string) (RoomName, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrRoomNameEmpty
	}
	if len(name) > MaxRoomNameLen {
		return "", ErrRoomNameTooLong
	}
	return RoomName(name), nil
}

// PrivateGroup is the group every connection is placed in on connect.
// It shares the room namespace, so listings must filter it out.
func PrivateGroup(id ConnID) RoomName { return RoomName(id) }
