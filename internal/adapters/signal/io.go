package signal

import (
	"context"
	"errors"
	"time"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump ping error")
				return
			}
		}
	}
}

// readPump owns the connection lifetime: its exit is the disconnect signal.
func (ctl *SignalWSController) readPump(ctx context.Context, id domain.ConnID, c *WsSignalConn, kill func()) {
	defer func() {
		log.Info().Str("module", "signal").Str("id", string(id)).Msg("readPump closing")
		ctl.Orch.OnDisconnect(id)
		kill()
	}()

	c.conn.SetReadLimit(ctl.opts.ReadLimit)
	if err := c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait)); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("readPump set deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("id", string(id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				logReadError(id, err)
				return
			}
			ctl.handleSignal(id, data)
		}
	}
}

func logReadError(id domain.ConnID, err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		log.Warn().Err(err).Str("module", "signal").Str("id", string(id)).Msg("frame exceeds read limit")
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		log.Info().Str("module", "signal").Str("id", string(id)).Msg("client closed")
	default:
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("readPump read error")
	}
}

func (ctl *SignalWSController) handleSignal(id domain.ConnID, data []byte) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("bad frame")
		return
	}

	switch env.Event {
	case core.EventSetUserInfo:
		ctl.handleSetUserInfo(id, env)
	case core.EventGetRooms:
		ctl.Orch.GetRooms(id)
	case core.EventCreateRoom:
		ctl.handleCreateRoom(id, env)
	case core.EventJoinRoom:
		ctl.handleJoinRoom(id, env)
	case core.EventLeaveRoom:
		ctl.handleLeaveRoom(id, env)
	case core.EventMessage:
		ctl.handleMessage(id, env)
	case core.EventPing:
		ctl.Orch.Ping(id)
	case core.EventWhoAmI:
		ctl.Orch.WhoAmI(id)
	default:
		log.Warn().Str("module", "signal").Str("event", env.Event).Msg("unknown signal")
	}
}
