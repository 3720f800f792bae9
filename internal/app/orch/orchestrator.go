package orch

import (
	"context"
	"errors"
	"sync"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

// Encoder renders one outbound event into a wire frame.
type Encoder func(event string, payload any) (core.Frame, error)

// PublishResult reports delivery stats/backpressure for one notification.
type PublishResult struct {
	SendTo  int
	Dropped []domain.ConnID
}

// Orchestrator serializes every inbound event behind one mutex. Notifications
// are enqueued before the mutex is released, so every client observes
// presence changes in the order they were applied.
type Orchestrator struct {
	Dispatcher *Dispatcher
	Registry   *app.Registry
	Rooms      *app.Directory
	Policy     app.Policy
	Encode     Encoder

	mu sync.Mutex
}

func NewOrchestrator(reg *app.Registry, rooms *app.Directory, policy app.Policy, enc Encoder) *Orchestrator {
	return &Orchestrator{
		Dispatcher: &Dispatcher{Registry: reg, Rooms: rooms},
		Registry:   reg,
		Rooms:      rooms,
		Policy:     policy,
		Encode:     enc,
	}
}

func (o *Orchestrator) run(transition func() []core.Notification) {
	o.mu.Lock()
	defer o.mu.Unlock()
	notes := transition()
	if len(notes) == 0 {
		return
	}
	total := PublishResult{}
	for _, n := range notes {
		res := o.publish(n)
		total.SendTo += res.SendTo
		total.Dropped = append(total.Dropped, res.Dropped...)
	}
	log.Debug().Str("module", "orch").Int("notifications", len(notes)).Int("sent_to", total.SendTo).Int("dropped", len(total.Dropped)).Msg("publish result")
}

func (o *Orchestrator) OnConnect(id domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) {
	o.run(func() []core.Notification { return o.Dispatcher.Connect(id, sig, cancel) })
}

func (o *Orchestrator) OnDisconnect(id domain.ConnID) {
	o.run(func() []core.Notification { return o.Dispatcher.Disconnect(id) })
}

func (o *Orchestrator) SetUserInfo(id domain.ConnID, p core.UserInfoPayload) {
	o.run(func() []core.Notification { return o.Dispatcher.SetUserInfo(id, p) })
}

func (o *Orchestrator) GetRooms(id domain.ConnID) {
	o.run(func() []core.Notification { return o.Dispatcher.GetRooms(id) })
}

func (o *Orchestrator) CreateRoom(id domain.ConnID, name string) {
	o.run(func() []core.Notification { return o.Dispatcher.CreateRoom(id, name) })
}

func (o *Orchestrator) JoinRoom(id domain.ConnID, name string) {
	o.run(func() []core.Notification { return o.Dispatcher.JoinRoom(id, name) })
}

func (o *Orchestrator) LeaveRoom(id domain.ConnID, name string) {
	o.run(func() []core.Notification { return o.Dispatcher.LeaveRoom(id, name) })
}

func (o *Orchestrator) Message(id domain.ConnID, p core.MessagePayload) {
	o.run(func() []core.Notification { return o.Dispatcher.Message(id, p) })
}

func (o *Orchestrator) WhoAmI(id domain.ConnID) {
	o.run(func() []core.Notification { return o.Dispatcher.WhoAmI(id) })
}

func (o *Orchestrator) Ping(id domain.ConnID) {
	o.run(func() []core.Notification { return o.Dispatcher.Ping(id) })
}

// Recipients resolves an audience against current membership.
func (o *Orchestrator) Recipients(to core.Audience) []domain.ConnID {
	switch to.Kind {
	case core.AudienceConn:
		return []domain.ConnID{to.Conn}
	case core.AudienceRoom:
		members := o.Rooms.MembersOf(to.Room)
		out := members[:0]
		for _, id := range members {
			if id != to.Except {
				out = append(out, id)
			}
		}
		return out
	case core.AudienceAll:
		return o.Registry.IDs()
	}
	return nil
}

func (o *Orchestrator) publish(n core.Notification) PublishResult {
	res := PublishResult{}
	recipients := o.Recipients(n.To)
	if len(recipients) == 0 {
		return res
	}
	frame, err := o.Encode(n.Event, n.Payload)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("event", n.Event).Msg("encode notification")
		return res
	}
	for _, id := range recipients {
		sig, ok := o.Registry.Signal(id)
		if !ok {
			continue
		}
		if err := sig.TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, id)
			if errors.Is(err, core.ErrConnClosed) {
				log.Debug().Str("module", "orch").Str("id", string(id)).Str("event", n.Event).Msg("skip closed connection")
				continue
			}
			o.onBackPressure(id, n.Event, err)
			continue
		}
		res.SendTo++
	}
	return res
}

func (o *Orchestrator) onBackPressure(id domain.ConnID, event string, err error) {
	if o.Policy == nil {
		return
	}
	switch o.Policy.OnBackPressure(id, event) {
	case app.KickMember:
		log.Warn().Err(err).Str("module", "orch").Str("id", string(id)).Str("event", event).Msg("slow consumer kicked")
		o.Registry.Cancel(id)
	case app.DropFrame:
		log.Warn().Err(err).Str("module", "orch").Str("id", string(id)).Str("event", event).Msg("frame dropped")
	case app.NoAction:
	}
}
