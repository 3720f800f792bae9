package app

import (
	"context"
	"slices"
	"sync"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

type connEntry struct {
	Profile domain.Profile
	Signal  core.SignalConnection
	Cancel  context.CancelFunc
}

// Registry holds per-connection state. Room membership is never stored here;
// it is always read from the Groups table.
type Registry struct {
	mu     sync.RWMutex
	conns  map[domain.ConnID]*connEntry
	groups core.Groups
}

func NewRegistry(groups core.Groups) *Registry {
	return &Registry{
		conns:  make(map[domain.ConnID]*connEntry),
		groups: groups,
	}
}

// Connect inserts a fresh entry and places the connection in its private group.
// It refuses to overwrite a live entry with the same id.
func (r *Registry) Connect(id domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; ok {
		log.Warn().Str("module", "app.registry").Str("id", string(id)).Msg("duplicate connect ignored")
		return false
	}
	r.conns[id] = &connEntry{Signal: sig, Cancel: cancel}
	r.groups.Add(id, domain.PrivateGroup(id))
	log.Info().Str("module", "app.registry").Str("id", string(id)).Msg("connection registered")
	return true
}

// Disconnect removes id from every group and deletes its entry.
// It returns the rooms the connection was in; unknown ids yield an empty slice.
func (r *Registry) Disconnect(id domain.ConnID) []domain.RoomName {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return []domain.RoomName{}
	}
	left := slices.DeleteFunc(r.groups.RemoveAll(id), func(name domain.RoomName) bool {
		return name == domain.PrivateGroup(id)
	})
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("id", string(id)).Int("rooms", len(left)).Msg("connection removed")
	return left
}

func (r *Registry) Has(id domain.ConnID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[id]
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// IDs returns every live connection id, sorted.
func (r *Registry) IDs() []domain.ConnID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ConnID, 0, len(r.conns))
	for id := range r.conns {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SetProfile replaces the profile wholesale. Unknown ids are ignored.
func (r *Registry) SetProfile(id domain.ConnID, p domain.Profile) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		return false
	}
	e.Profile = p
	log.Info().Str("module", "app.registry").Str("id", string(id)).Str("name", p.Name).Msg("updated profile")
	return true
}

func (r *Registry) Profile(id domain.ConnID) (domain.Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok {
		return e.Profile, true
	}
	return domain.Profile{}, false
}

func (r *Registry) Signal(id domain.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok && e.Signal != nil {
		return e.Signal, true
	}
	return nil, false
}

// Join adds a known connection to a room and reports whether membership changed.
func (r *Registry) Join(id domain.ConnID, name domain.RoomName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.conns[id]; !ok {
		return false
	}
	return r.groups.Add(id, name)
}

// Leave removes a known connection from a room and reports whether membership changed.
func (r *Registry) Leave(id domain.ConnID, name domain.RoomName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.conns[id]; !ok || name == domain.PrivateGroup(id) {
		return false
	}
	return r.groups.Remove(id, name)
}

// ActiveRooms lists non-empty groups minus live private groups. Connect and
// Disconnect change both tables under r.mu, so reading them under one RLock
// never observes a private group whose owner is half gone.
func (r *Registry) ActiveRooms() []domain.RoomName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.DeleteFunc(r.groups.Names(), func(name domain.RoomName) bool {
		_, ok := r.conns[domain.ConnID(name)]
		return ok
	})
}

// Rooms lists the rooms id belongs to, excluding its private group.
func (r *Registry) Rooms(id domain.ConnID) []domain.RoomName {
	return slices.DeleteFunc(r.groups.GroupsOf(id), func(name domain.RoomName) bool {
		return name == domain.PrivateGroup(id)
	})
}

// Cancel asks the adapter to tear the connection down.
// The regular disconnect path performs the cleanup.
func (r *Registry) Cancel(id domain.ConnID) bool {
	r.mu.RLock()
	e, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("id", string(id)).Msg("canceled connection")
	return true
}
