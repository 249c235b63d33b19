package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sumit221292/zzeep/internal/core/domain"
)

// WSClient adapts a gorilla connection to port.Client. The write mutex is
// required: broadcasts and routed signals arrive from other goroutines while
// this connection's own read loop may be sending replies.
type WSClient struct {
	connID string
	mu     sync.Mutex
	conn   *websocket.Conn
}

func (c *WSClient) Send(ev domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(ev)
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}

	client := &WSClient{
		connID: uuid.New().String(),
		conn:   conn,
	}

	l := log.With().Str("conn_id", client.connID).Logger()
	l.Info().Msg("New client connected")

	defer func() {
		l.Info().Msg("Client disconnected")
		// The request context dies with this handler; cleanup gets its own.
		h.Coordinator.Disconnect(context.Background(), client)
		conn.Close()
	}()

	for {
		var req struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}

		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		if err := h.dispatch(r.Context(), client, req.Event, req.Data); err != nil {
			l.Error().Err(err).Str("event", req.Event).Msg("Failed to handle event")
		}
	}
}

func (h *Handler) dispatch(ctx context.Context, client *WSClient, event string, data json.RawMessage) error {
	switch event {
	case domain.EventUpdateStatus:
		var upd domain.StatusUpdate
		if err := json.Unmarshal(data, &upd); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return h.Coordinator.UpdateStatus(ctx, client, upd)

	case domain.EventCallInvite:
		var inv domain.CallInvite
		if err := json.Unmarshal(data, &inv); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return h.Coordinator.CallInvite(client, inv)

	case domain.EventCallAccepted:
		var acc domain.CallAnswer
		if err := json.Unmarshal(data, &acc); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return h.Coordinator.CallAccepted(acc)

	case domain.EventICECandidate:
		var cand domain.ICECandidate
		if err := json.Unmarshal(data, &cand); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return h.Coordinator.ICECandidate(cand)

	case domain.EventCallRejected:
		var rej domain.CallRejection
		if err := json.Unmarshal(data, &rej); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return h.Coordinator.CallRejected(rej)

	case domain.EventEndCall:
		var end domain.CallEnd
		if err := json.Unmarshal(data, &end); err != nil {
			return fmt.Errorf("decode %s: %w", event, err)
		}
		return h.Coordinator.EndCall(end)

	default:
		// Unknown events are ignored, not fatal to the connection.
		log.Debug().Str("event", event).Msg("Ignoring unknown event")
		return nil
	}
}
