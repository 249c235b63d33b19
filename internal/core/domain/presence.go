package domain

// Presence statuses are opaque client-supplied strings. Only "offline" has
// server-side meaning: it is forced on disconnect and is the default for
// users the store has never seen.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)
