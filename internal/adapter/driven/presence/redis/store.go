package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sumit221292/zzeep/internal/core/domain"
)

// Store is a Redis-backed PresenceStore. Statuses live under
// user:<id>:status with no expiry; last write wins per key.
type Store struct {
	client *goredis.Client
}

func NewStore(addr, password string) *Store {
	return &Store{
		client: goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Ping verifies connectivity. Called once at startup; presence writes stay
// best effort afterwards.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Set(ctx context.Context, userID, status string) error {
	return s.client.Set(ctx, statusKey(userID), status, 0).Err()
}

func (s *Store) Get(ctx context.Context, userID string) (string, error) {
	status, err := s.client.Get(ctx, statusKey(userID)).Result()
	if errors.Is(err, goredis.Nil) {
		return domain.StatusOffline, nil
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func statusKey(userID string) string {
	return "user:" + userID + ":status"
}
