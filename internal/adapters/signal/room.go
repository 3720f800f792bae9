package signal

import (
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleCreateRoom(id domain.ConnID, env Envelope) {
	name, err := env.RoomName()
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("bad createRoom payload")
		return
	}
	ctl.Orch.CreateRoom(id, name)
}

func (ctl *SignalWSController) handleJoinRoom(id domain.ConnID, env Envelope) {
	name, err := env.RoomName()
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("bad joinRoom payload")
		return
	}
	ctl.Orch.JoinRoom(id, name)
}

// handleLeaveRoom leaves one room; the connection stays open.
func (ctl *SignalWSController) handleLeaveRoom(id domain.ConnID, env Envelope) {
	name, err := env.RoomName()
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("bad leaveRoom payload")
		return
	}
	ctl.Orch.LeaveRoom(id, name)
}

func (ctl *SignalWSController) handleMessage(id domain.ConnID, env Envelope) {
	var p core.MessagePayload
	if err := env.Decode(&p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("bad message payload")
		return
	}
	ctl.Orch.Message(id, p)
}
