package core

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dkeye/Lobby/internal/domain"
	"github.com/rs/zerolog/log"
)

// groupsImpl is a threadsafe in-memory edge table indexed from both sides.
type groupsImpl struct {
	mu      sync.RWMutex
	seq     uint64
	byGroup map[domain.RoomName]map[domain.ConnID]uint64
	byConn  map[domain.ConnID]map[domain.RoomName]struct{}
}

func NewGroups() Groups {
	return &groupsImpl{
		byGroup: make(map[domain.RoomName]map[domain.ConnID]uint64),
		byConn:  make(map[domain.ConnID]map[domain.RoomName]struct{}),
	}
}

func (g *groupsImpl) Add(id domain.ConnID, group domain.RoomName) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	members, ok := g.byGroup[group]
	if !ok {
		members = make(map[domain.ConnID]uint64)
		g.byGroup[group] = members
	}
	if _, ok := members[id]; ok {
		return false
	}
	g.seq++
	members[id] = g.seq

	groups, ok := g.byConn[id]
	if !ok {
		groups = make(map[domain.RoomName]struct{})
		g.byConn[id] = groups
	}
	groups[group] = struct{}{}
	log.Debug().Str("module", "core.groups").Str("id", string(id)).Str("group", string(group)).Msg("member added")
	return true
}

func (g *groupsImpl) Remove(id domain.ConnID, group domain.RoomName) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.removeLocked(id, group) {
		return false
	}
	log.Debug().Str("module", "core.groups").Str("id", string(id)).Str("group", string(group)).Msg("member removed")
	return true
}

func (g *groupsImpl) RemoveAll(id domain.ConnID) []domain.RoomName {
	g.mu.Lock()
	defer g.mu.Unlock()
	groups := g.byConn[id]
	out := make([]domain.RoomName, 0, len(groups))
	for group := range groups {
		out = append(out, group)
	}
	slices.Sort(out)
	for _, group := range out {
		g.removeLocked(id, group)
	}
	log.Debug().Str("module", "core.groups").Str("id", string(id)).Int("groups", len(out)).Msg("member removed from all groups")
	return out
}

func (g *groupsImpl) removeLocked(id domain.ConnID, group domain.RoomName) bool {
	members, ok := g.byGroup[group]
	if !ok {
		return false
	}
	if _, ok := members[id]; !ok {
		return false
	}
	delete(members, id)
	if len(members) == 0 {
		delete(g.byGroup, group)
	}
	if groups, ok := g.byConn[id]; ok {
		delete(groups, group)
		if len(groups) == 0 {
			delete(g.byConn, id)
		}
	}
	return true
}

func (g *groupsImpl) Has(id domain.ConnID, group domain.RoomName) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.byGroup[group][id]
	return ok
}

func (g *groupsImpl) Members(group domain.RoomName) []domain.ConnID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	members := g.byGroup[group]
	out := make([]domain.ConnID, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b domain.ConnID) int {
		return cmp.Compare(members[a], members[b])
	})
	return out
}

func (g *groupsImpl) MemberCount(group domain.RoomName) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.byGroup[group])
}

func (g *groupsImpl) GroupsOf(id domain.ConnID) []domain.RoomName {
	g.mu.RLock()
	defer g.mu.RUnlock()
	groups := g.byConn[id]
	out := make([]domain.RoomName, 0, len(groups))
	for group := range groups {
		out = append(out, group)
	}
	slices.Sort(out)
	return out
}

func (g *groupsImpl) Names() []domain.RoomName {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.RoomName, 0, len(g.byGroup))
	for group := range g.byGroup {
		out = append(out, group)
	}
	slices.Sort(out)
	return out
}
