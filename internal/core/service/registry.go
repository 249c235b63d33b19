package service

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sumit221292/zzeep/internal/core/domain"
	"github.com/sumit221292/zzeep/internal/core/port"
)

// Registry maps each claimed user identity to its single live connection.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]port.Client // userID -> connection
	users    map[port.Client]string // connection -> userID
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]port.Client),
		users:    make(map[port.Client]string),
	}
}

// Claim binds userID to c. A claim for an identity already bound to a
// different live connection fails with ErrDuplicateSession and leaves the
// incumbent binding untouched. A connection re-claiming under a new identity
// supersedes its previous binding.
func (r *Registry) Claim(userID string, c port.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.sessions[userID]; ok && cur != c {
		return domain.ErrDuplicateSession
	}
	if prev, ok := r.users[c]; ok && prev != userID {
		delete(r.sessions, prev)
	}
	r.sessions[userID] = c
	r.users[c] = userID
	return nil
}

// Resolve looks up the live connection for userID. No mutation.
func (r *Registry) Resolve(userID string) (port.Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[userID]
	return c, ok
}

// Release removes the binding owned by c and reports which identity it held.
// Idempotent: a connection that never claimed, or was already released,
// yields ("", false). A connection refused as a duplicate never owned a
// binding, so releasing it cannot evict the incumbent.
func (r *Registry) Release(c port.Client) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.users[c]
	if !ok {
		return "", false
	}
	delete(r.users, c)
	if cur, ok := r.sessions[userID]; ok && cur == c {
		delete(r.sessions, userID)
	}
	return userID, true
}

// Broadcast sends ev to every bound connection except the one holding
// exceptUserID. The recipient set is snapshotted under the lock; sends
// happen outside it.
func (r *Registry) Broadcast(ev domain.Event, exceptUserID string) {
	r.mu.RLock()
	clients := make([]port.Client, 0, len(r.sessions))
	for userID, c := range r.sessions {
		if userID == exceptUserID {
			continue
		}
		clients = append(clients, c)
	}
	r.mu.RUnlock()

	for _, c := range clients {
		if err := c.Send(ev); err != nil {
			log.Warn().Err(err).Str("event", ev.Name).Msg("Error broadcasting event")
		}
	}
}
