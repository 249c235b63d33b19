package port

import "context"

// PresenceStore persists last-known presence per user. Writes are best
// effort from the caller's perspective; Get reports StatusOffline for users
// the store has never seen.
type PresenceStore interface {
	Set(ctx context.Context, userID, status string) error
	Get(ctx context.Context, userID string) (string, error)
	Close() error
}
