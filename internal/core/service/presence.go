package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sumit221292/zzeep/internal/core/domain"
	"github.com/sumit221292/zzeep/internal/core/port"
)

// Publisher persists presence changes and fans them out to everyone else.
type Publisher struct {
	store    port.PresenceStore
	registry *Registry
}

func NewPublisher(store port.PresenceStore, registry *Registry) *Publisher {
	return &Publisher{
		store:    store,
		registry: registry,
	}
}

// Publish writes the status to the store, then broadcasts the change to all
// connections except the user's own. The broadcast payload is captured before
// the store write, and a failed write never suppresses the broadcast.
func (p *Publisher) Publish(ctx context.Context, userID, status string) {
	ev := domain.NewPresenceUpdate(userID, status)

	if err := p.store.Set(ctx, userID, status); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Presence store write failed")
	}

	p.registry.Broadcast(ev, userID)
}

// Status reports the last-known presence for userID.
func (p *Publisher) Status(ctx context.Context, userID string) (string, error) {
	return p.store.Get(ctx, userID)
}
