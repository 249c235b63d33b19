package domain

import "encoding/json"

// Inbound event names.
const (
	EventUpdateStatus = "update_status"
	EventCallInvite   = "call_invite"
	EventCallRejected = "call_rejected"
	EventEndCall      = "end_call"
)

// Outbound event names.
const (
	EventDuplicateSession = "duplicate_session"
	EventPresenceUpdate   = "presence_update"
	EventIncomingCall     = "incoming_call"
	EventUserOffline      = "user_offline"
	EventUserBusy         = "user_busy"
	EventCallEnded        = "call_ended"
)

// Event names used in both directions.
const (
	EventCallAccepted = "call_accepted"
	EventICECandidate = "ice_candidate"
)

// Event is the wire envelope for outbound messages.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

// StatusUpdate is the payload of an inbound update_status event. It doubles
// as a session claim: the first successful one binds the connection to UserID.
type StatusUpdate struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// CallInvite carries an opaque SDP offer from caller to target.
type CallInvite struct {
	CallerID     string          `json:"callerId"`
	TargetUserID string          `json:"targetUserId"`
	Offer        json.RawMessage `json:"offer"`
}

// CallAnswer is the payload of an inbound call_accepted event. The answer is
// routed back to the caller and the pair becomes an active call.
type CallAnswer struct {
	CallerID     string          `json:"callerId"`
	TargetUserID string          `json:"targetUserId"`
	Answer       json.RawMessage `json:"answer"`
}

// ICECandidate carries an opaque candidate to the target peer.
type ICECandidate struct {
	TargetUserID string          `json:"targetUserId"`
	Candidate    json.RawMessage `json:"candidate"`
}

// CallRejection is the payload of an inbound call_rejected event.
type CallRejection struct {
	CallerID     string `json:"callerId"`
	TargetUserID string `json:"targetUserId"`
}

// CallEnd is the payload of an inbound end_call event.
type CallEnd struct {
	CallerID     string `json:"callerId"`
	TargetUserID string `json:"targetUserId"`
}

// EndReason says why a call_ended event was sent.
type EndReason string

const (
	ReasonRejected     EndReason = "rejected"
	ReasonEnded        EndReason = "ended"
	ReasonDisconnected EndReason = "disconnected"
)

func NewDuplicateSession(message string) Event {
	return Event{Name: EventDuplicateSession, Data: map[string]string{"message": message}}
}

func NewPresenceUpdate(userID, status string) Event {
	return Event{Name: EventPresenceUpdate, Data: map[string]string{"userId": userID, "status": status}}
}

func NewIncomingCall(callerID, targetUserID string, offer json.RawMessage) Event {
	return Event{Name: EventIncomingCall, Data: map[string]any{
		"callerId":     callerID,
		"targetUserId": targetUserID,
		"offer":        offer,
	}}
}

func NewUserOffline(targetUserID string) Event {
	return Event{Name: EventUserOffline, Data: map[string]string{"targetUserId": targetUserID}}
}

func NewUserBusy(targetUserID string) Event {
	return Event{Name: EventUserBusy, Data: map[string]string{"targetUserId": targetUserID}}
}

func NewCallAccepted(answer json.RawMessage) Event {
	return Event{Name: EventCallAccepted, Data: map[string]any{"answer": answer}}
}

func NewICECandidate(candidate json.RawMessage) Event {
	return Event{Name: EventICECandidate, Data: map[string]any{"candidate": candidate}}
}

func NewCallEnded(reason EndReason) Event {
	return Event{Name: EventCallEnded, Data: map[string]EndReason{"reason": reason}}
}
