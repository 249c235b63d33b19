package port

import "github.com/sumit221292/zzeep/internal/core/domain"

// Client is one live signaling connection. Implementations must be safe for
// concurrent Send calls: presence broadcasts arrive from other connections'
// goroutines.
type Client interface {
	Send(ev domain.Event) error
	Close() error
}
