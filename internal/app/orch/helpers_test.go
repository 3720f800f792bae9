package orch

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/dkeye/Lobby/internal/app"
	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/stretchr/testify/require"
)

var errFull = errors.New("full")

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func testEncode(event string, payload any) (core.Frame, error) {
	return json.Marshal(struct {
		Event string `json:"event"`
		Data  any    `json:"data"`
	}{event, payload})
}

type recorder struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
	closed bool
}

func (r *recorder) TrySend(f core.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return core.ErrConnClosed
	}
	if r.full {
		return errFull
	}
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) Close() {}

func (r *recorder) events(t *testing.T) []envelope {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]envelope, 0, len(r.frames))
	for _, f := range r.frames {
		var e envelope
		require.NoError(t, json.Unmarshal(f, &e))
		out = append(out, e)
	}
	return out
}

func (r *recorder) names(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, e := range r.events(t) {
		out = append(out, e.Event)
	}
	return out
}

func (r *recorder) last(t *testing.T, event string) (envelope, bool) {
	t.Helper()
	evs := r.events(t)
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].Event == event {
			return evs[i], true
		}
	}
	return envelope{}, false
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}

func newTestOrchestrator(policy app.Policy) *Orchestrator {
	groups := core.NewGroups()
	reg := app.NewRegistry(groups)
	return NewOrchestrator(reg, app.NewDirectory(reg, groups), policy, testEncode)
}

func connect(o *Orchestrator, id domain.ConnID) *recorder {
	rec := &recorder{}
	o.OnConnect(id, rec, nil)
	return rec
}

func decode[T any](t *testing.T, e envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(e.Data, &v))
	return v
}
