package core

import "github.com/dkeye/Lobby/internal/domain"

// Inbound events (client -> server).
const (
	EventSetUserInfo = "setUserInfo"
	EventGetRooms    = "getRooms"
	EventCreateRoom  = "createRoom"
	EventJoinRoom    = "joinRoom"
	EventLeaveRoom   = "leaveRoom"
	EventPing        = "ping"
	EventWhoAmI      = "whoami"
)

// Outbound events (server -> client).
const (
	EventRoomList      = "roomList"
	EventRoomInfo      = "roomInfo"
	EventNewUserJoined = "NewUserJoined"
	EventUserLeft      = "user-left"
	EventPong          = "pong"
)

// EventMessage is used in both directions.
const EventMessage = "message"

// MemberDTO is a read-only view of a room member (no transport fields).
type MemberDTO struct {
	ID        domain.ConnID `json:"id"`
	Name      string        `json:"name"`
	AvatarURL string        `json:"avatarUrl"`
}

type RoomInfo struct {
	RoomName domain.RoomName `json:"roomName"`
	Users    []MemberDTO     `json:"users"`
}

type UserJoined struct {
	Name      string        `json:"name"`
	AvatarURL string        `json:"avatarUrl"`
	ID        domain.ConnID `json:"id"`
}

// ChatMessage carries sender fields exactly as the client supplied them.
type ChatMessage struct {
	Sender    string `json:"sender"`
	AvatarURL string `json:"avatarUrl"`
	Message   string `json:"message"`
}

type WhoAmI struct {
	ID        domain.ConnID     `json:"id"`
	Name      string            `json:"name"`
	AvatarURL string            `json:"avatarUrl"`
	Rooms     []domain.RoomName `json:"rooms"`
}

// Inbound payloads.

type UserInfoPayload struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

type MessagePayload struct {
	RoomName  string `json:"roomName"`
	Sender    string `json:"sender"`
	AvatarURL string `json:"avatarUrl"`
	Message   string `json:"message"`
}
