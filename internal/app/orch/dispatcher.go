package orch

import (
	"context"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

// Dispatcher turns inbound events into state changes and the notifications
// they cause, in emission order. It never talks to the transport.
// Callers must serialize calls; Orchestrator does.
type Dispatcher struct {
	Registry *app.Registry
	Rooms    *app.Directory
}

func (d *Dispatcher) roomList() core.Notification {
	return core.Notification{To: core.ToAll(), Event: core.EventRoomList, Payload: d.Rooms.ListActiveRooms()}
}

func (d *Dispatcher) roomInfo(to core.Audience, name domain.RoomName) core.Notification {
	return core.Notification{To: to, Event: core.EventRoomInfo, Payload: d.Rooms.RoomInfo(name)}
}

func (d *Dispatcher) userJoined(id domain.ConnID, name domain.RoomName) core.Notification {
	p, _ := d.Registry.Profile(id)
	return core.Notification{
		To:      core.ToRoomExcept(name, id),
		Event:   core.EventNewUserJoined,
		Payload: core.UserJoined{Name: p.Name, AvatarURL: p.AvatarURL, ID: id},
	}
}

func userLeft(id domain.ConnID, name domain.RoomName) core.Notification {
	return core.Notification{To: core.ToRoom(name), Event: core.EventUserLeft, Payload: string(id)}
}

// roomName validates a raw room name. Names of live connections are reserved:
// they address private groups, which clients may neither join nor message.
func (d *Dispatcher) roomName(raw string) (domain.RoomName, error) {
	name, err := domain.NewRoomName(raw)
	if err != nil {
		return "", err
	}
	if d.Registry.Has(domain.ConnID(name)) {
		return "", domain.ErrRoomNameReserved
	}
	return name, nil
}

// roomFor validates a raw room name for a known connection.
func (d *Dispatcher) roomFor(id domain.ConnID, event, raw string) (domain.RoomName, bool) {
	name, err := d.roomName(raw)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("id", string(id)).Str("event", event).Msg("invalid room name, ignored")
		return "", false
	}
	if !d.Registry.Has(id) {
		log.Debug().Str("module", "orch").Str("id", string(id)).Str("event", event).Msg("unknown connection, ignored")
		return "", false
	}
	return name, true
}

// Connect registers the connection and pushes the current room list to it.
func (d *Dispatcher) Connect(id domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) []core.Notification {
	if !d.Registry.Connect(id, sig, cancel) {
		return nil
	}
	return []core.Notification{
		{To: core.ToConn(id), Event: core.EventRoomList, Payload: d.Rooms.ListActiveRooms()},
	}
}

// Disconnect leaves every room, deletes the entry, then announces the new room list.
func (d *Dispatcher) Disconnect(id domain.ConnID) []core.Notification {
	if !d.Registry.Has(id) {
		return nil
	}
	left := d.Registry.Disconnect(id)
	notes := make([]core.Notification, 0, 2*len(left)+1)
	for _, name := range left {
		notes = append(notes, userLeft(id, name), d.roomInfo(core.ToRoom(name), name))
	}
	log.Info().Str("module", "orch").Str("id", string(id)).Int("rooms", len(left)).Msg("disconnected")
	return append(notes, d.roomList())
}

func (d *Dispatcher) SetUserInfo(id domain.ConnID, p core.UserInfoPayload) []core.Notification {
	profile, err := domain.NewProfile(p.Name, p.AvatarURL)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("id", string(id)).Msg("invalid profile, ignored")
		return nil
	}
	if !d.Registry.SetProfile(id, profile) {
		log.Debug().Str("module", "orch").Str("id", string(id)).Msg("setUserInfo for unknown connection, ignored")
	}
	return nil
}

func (d *Dispatcher) GetRooms(id domain.ConnID) []core.Notification {
	return []core.Notification{
		{To: core.ToConn(id), Event: core.EventRoomList, Payload: d.Rooms.ListActiveRooms()},
	}
}

// CreateRoom joins the room, creating it implicitly.
func (d *Dispatcher) CreateRoom(id domain.ConnID, raw string) []core.Notification {
	name, ok := d.roomFor(id, core.EventCreateRoom, raw)
	if !ok {
		return nil
	}
	joined := d.Registry.Join(id, name)
	log.Info().Str("module", "orch").Str("id", string(id)).Str("room", string(name)).Bool("joined", joined).Msg("create room")
	notes := []core.Notification{
		d.roomList(),
		d.roomInfo(core.ToConn(id), name),
	}
	if joined && d.Rooms.MemberCount(name) > 1 {
		notes = append(notes, d.userJoined(id, name))
	}
	return notes
}

func (d *Dispatcher) JoinRoom(id domain.ConnID, raw string) []core.Notification {
	name, ok := d.roomFor(id, core.EventJoinRoom, raw)
	if !ok {
		return nil
	}
	joined := d.Registry.Join(id, name)
	log.Info().Str("module", "orch").Str("id", string(id)).Str("room", string(name)).Bool("joined", joined).Msg("join room")
	notes := []core.Notification{d.roomInfo(core.ToConn(id), name)}
	if !joined {
		return notes
	}
	return append(notes, d.userJoined(id, name), d.roomList())
}

// LeaveRoom is a no-op when the connection is not in the room.
func (d *Dispatcher) LeaveRoom(id domain.ConnID, raw string) []core.Notification {
	name, ok := d.roomFor(id, core.EventLeaveRoom, raw)
	if !ok {
		return nil
	}
	if !d.Registry.Leave(id, name) {
		return nil
	}
	log.Info().Str("module", "orch").Str("id", string(id)).Str("room", string(name)).Msg("leave room")
	return []core.Notification{
		userLeft(id, name),
		d.roomList(),
		d.roomInfo(core.ToRoom(name), name),
	}
}

// Message relays to every member of the room, sender included.
// Sender fields are taken from the payload as-is and membership is not checked.
func (d *Dispatcher) Message(id domain.ConnID, p core.MessagePayload) []core.Notification {
	name, err := d.roomName(p.RoomName)
	if err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("id", string(id)).Msg("message to invalid room, ignored")
		return nil
	}
	if d.Rooms.MemberCount(name) == 0 {
		log.Debug().Str("module", "orch").Str("id", string(id)).Str("room", string(name)).Msg("message to empty room")
		return nil
	}
	log.Debug().Str("module", "orch").Str("id", string(id)).Str("room", string(name)).Msg("message")
	return []core.Notification{{
		To:      core.ToRoom(name),
		Event:   core.EventMessage,
		Payload: core.ChatMessage{Sender: p.Sender, AvatarURL: p.AvatarURL, Message: p.Message},
	}}
}

func (d *Dispatcher) WhoAmI(id domain.ConnID) []core.Notification {
	p, ok := d.Registry.Profile(id)
	if !ok {
		return nil
	}
	return []core.Notification{{
		To:      core.ToConn(id),
		Event:   core.EventWhoAmI,
		Payload: core.WhoAmI{ID: id, Name: p.Name, AvatarURL: p.AvatarURL, Rooms: d.Registry.Rooms(id)},
	}}
}

func (d *Dispatcher) Ping(id domain.ConnID) []core.Notification {
	return []core.Notification{{To: core.ToConn(id), Event: core.EventPong, Payload: nil}}
}
