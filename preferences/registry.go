// Package preferences keeps the latest scoring preferences per user.
package preferences

import (
	"slices"
	"sync"

	"dealfeed/types"
)

// Registry is a concurrency-safe map of user id to preferences
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]types.Preferences
}

// NewRegistry seeds the default user with empty preferences
func NewRegistry() *Registry {
	return &Registry{
		byUser: map[string]types.Preferences{
			types.DefaultUserID: types.DefaultPreferences(),
		},
	}
}

// Get returns a copy of the user's preferences, or empty preferences for unknown users
func (r *Registry) Get(userID string) types.Preferences {
	r.mu.RLock()
	p, ok := r.byUser[userID]
	r.mu.RUnlock()
	if !ok {
		return types.Preferences{UserID: userID}
	}
	return clone(p)
}

// Set stores preferences under their user id; an empty id means the default user
func (r *Registry) Set(p types.Preferences) types.Preferences {
	if p.UserID == "" {
		p.UserID = types.DefaultUserID
	}
	p = clone(p)

	r.mu.Lock()
	r.byUser[p.UserID] = p
	r.mu.Unlock()
	return clone(p)
}

func clone(p types.Preferences) types.Preferences {
	p.Keywords = slices.Clone(p.Keywords)
	p.Firms = slices.Clone(p.Firms)
	p.Sectors = slices.Clone(p.Sectors)
	p.Geos = slices.Clone(p.Geos)
	return p
}
