package signal

import (
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleSetUserInfo(id domain.ConnID, env Envelope) {
	var p core.UserInfoPayload
	if err := env.Decode(&p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("bad setUserInfo payload")
		return
	}
	ctl.Orch.SetUserInfo(id, p)
}
