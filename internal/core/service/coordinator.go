package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sumit221292/zzeep/internal/core/domain"
	"github.com/sumit221292/zzeep/internal/core/port"
)

const duplicateSessionMessage = "User already logged in from another browser"

// Coordinator routes call signaling between exactly two parties and tracks
// which users are paired in an active call. Routing always resolves the
// target's own connection, never broadcasts, so call metadata stays between
// the two involved parties.
//
// One mutex serializes every event handler, giving each event
// run-to-completion semantics over the session and pairing state. Busy
// detection is a lookup in the pairing map, so "busy" and "in a call" cannot
// drift apart.
type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
	presence *Publisher
	pairings map[string]string // userID -> peer userID, kept symmetric
}

func NewCoordinator(registry *Registry, presence *Publisher) *Coordinator {
	return &Coordinator{
		registry: registry,
		presence: presence,
		pairings: make(map[string]string),
	}
}

// UpdateStatus claims the session for the sending connection and publishes
// the new status. The losing side of a duplicate claim is notified and its
// connection closed; the incumbent binding stays as it was.
func (c *Coordinator) UpdateStatus(ctx context.Context, client port.Client, upd domain.StatusUpdate) error {
	c.mu.Lock()
	err := c.registry.Claim(upd.UserID, client)
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSession) {
			if sendErr := client.Send(domain.NewDuplicateSession(duplicateSessionMessage)); sendErr != nil {
				log.Warn().Err(sendErr).Str("user_id", upd.UserID).Msg("Error notifying duplicate session")
			}
			_ = client.Close()
		}
		return fmt.Errorf("claim session for %q: %w", upd.UserID, err)
	}

	c.presence.Publish(ctx, upd.UserID, upd.Status)
	return nil
}

// CallInvite forwards an offer to the target, or tells the caller why it
// cannot: user_offline when the target has no connection, user_busy when the
// target already has an active call.
func (c *Coordinator) CallInvite(caller port.Client, inv domain.CallInvite) error {
	c.mu.Lock()
	target, online := c.registry.Resolve(inv.TargetUserID)
	_, busy := c.pairings[inv.TargetUserID]
	c.mu.Unlock()

	if !online {
		return caller.Send(domain.NewUserOffline(inv.TargetUserID))
	}
	if busy {
		return caller.Send(domain.NewUserBusy(inv.TargetUserID))
	}
	return target.Send(domain.NewIncomingCall(inv.CallerID, inv.TargetUserID, inv.Offer))
}

// CallAccepted pairs the two users and routes the answer back to the caller.
// If the caller vanished mid-handshake the event is dropped and no pairing
// is created. The target identity is taken from the payload as-is; there is
// no check that the caller actually invited it.
func (c *Coordinator) CallAccepted(acc domain.CallAnswer) error {
	c.mu.Lock()
	caller, ok := c.registry.Resolve(acc.CallerID)
	if ok {
		c.pairings[acc.CallerID] = acc.TargetUserID
		c.pairings[acc.TargetUserID] = acc.CallerID
	}
	c.mu.Unlock()

	if !ok {
		return nil
	}
	return caller.Send(domain.NewCallAccepted(acc.Answer))
}

// ICECandidate relays a candidate to the target, dropping it silently when
// the target is gone. Candidates may legitimately arrive before the
// corresponding call_accepted; they are delivered as-is.
func (c *Coordinator) ICECandidate(cand domain.ICECandidate) error {
	target, ok := c.registry.Resolve(cand.TargetUserID)
	if !ok {
		return nil
	}
	return target.Send(domain.NewICECandidate(cand.Candidate))
}

// CallRejected tells the caller the invite was declined. Dropped silently
// when the caller is gone.
func (c *Coordinator) CallRejected(rej domain.CallRejection) error {
	caller, ok := c.registry.Resolve(rej.CallerID)
	if !ok {
		return nil
	}
	return caller.Send(domain.NewCallEnded(domain.ReasonRejected))
}

// EndCall tears down the initiator's pairing, both sides, and notifies the
// peer if still connected. No-op when the initiator has no active call.
func (c *Coordinator) EndCall(end domain.CallEnd) error {
	c.mu.Lock()
	peerID, paired := c.pairings[end.CallerID]
	var peer port.Client
	var peerOnline bool
	if paired {
		delete(c.pairings, end.CallerID)
		delete(c.pairings, peerID)
		peer, peerOnline = c.registry.Resolve(peerID)
	}
	c.mu.Unlock()

	if !paired || !peerOnline {
		return nil
	}
	return peer.Send(domain.NewCallEnded(domain.ReasonEnded))
}

// Disconnect is the transport-level cleanup path: release the session
// binding, tear down any active pairing, notify the abandoned peer and
// publish the user as offline. Safe to call more than once per connection;
// only the call that actually releases a binding does any work, so a
// connection refused as a duplicate disconnects without touching the
// incumbent's session, pairing or presence.
func (c *Coordinator) Disconnect(ctx context.Context, client port.Client) {
	c.mu.Lock()
	userID, owned := c.registry.Release(client)
	var peer port.Client
	var notifyPeer bool
	if owned {
		if peerID, paired := c.pairings[userID]; paired {
			delete(c.pairings, userID)
			delete(c.pairings, peerID)
			peer, notifyPeer = c.registry.Resolve(peerID)
		}
	}
	c.mu.Unlock()

	if !owned {
		return
	}
	if notifyPeer {
		if err := peer.Send(domain.NewCallEnded(domain.ReasonDisconnected)); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Error notifying peer of disconnect")
		}
	}
	c.presence.Publish(ctx, userID, domain.StatusOffline)
}

// Peer reports the identity userID is currently paired with, if any.
func (c *Coordinator) Peer(userID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	peerID, ok := c.pairings[userID]
	return peerID, ok
}
