package ports

// EmailMessage is an outbound HTML email.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// RealtimeEvent is pushed to a user's private channel (user:<id>).
type RealtimeEvent struct {
	Channel string
	Name    string
	Payload map[string]any
}

// Notification bundles the deliveries triggered by one state transition.
// RecipientKey shards delivery so per-recipient ordering holds.
type Notification struct {
	RecipientKey string
	Email        *EmailMessage
	Event        *RealtimeEvent
}

// Notifier is the fire-and-forget side-effect port. Delivery failures are
// logged by the implementation and never reach the caller; a state transition
// is complete even if its notification is dropped.
type Notifier interface {
	Notify(n Notification)
}
