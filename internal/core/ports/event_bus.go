package ports

import "context"

// EventBus publishes realtime events to interested live clients.
// Publishing is best effort: delivery failures are logged by the
// implementation and never surfaced to the business flow.
type EventBus interface {
	// Publish emits an event to every subscriber of the scope.
	// Scope names a subscriber group ("couriers", or an order room id),
	// event is the event name and payload its JSON-serializable body.
	Publish(ctx context.Context, scope string, event string, payload any) error
}
