package ports

import (
	"context"

	"dispatch/internal/core/domain/model/alert"
	"dispatch/internal/core/domain/model/kernel"
)

// ChannelTokens holds an actor's registered push tokens in fallback
// order. Either field may be empty when the actor never registered
// that channel.
type ChannelTokens struct {
	Primary   string
	Secondary string
}

// TokenDirectory resolves the push tokens registered for an actor.
type TokenDirectory interface {
	ChannelTokens(ctx context.Context, actorID kernel.UUID) (ChannelTokens, error)
}

// TokenRegistrar stores an actor's push tokens, replacing any prior
// registration.
type TokenRegistrar interface {
	Register(ctx context.Context, actorID kernel.UUID, tokens ChannelTokens) error
}

// ChannelProvider sends a push notification over a single channel.
// Implementations decide whether a token belongs to them via Supports,
// so the fan-out can route each token without knowing channel formats.
type ChannelProvider interface {
	// Supports reports whether the token is addressable by this channel.
	Supports(token string) bool

	// Send delivers the notification. A non-nil error means this
	// channel failed and the caller may fall back to another.
	Send(ctx context.Context, token string, title string, body string, data map[string]string) error
}

// AlertRepository defines the persistence contract for alert records.
type AlertRepository interface {
	// Add persists a new alert.
	Add(ctx context.Context, aggregate *alert.Alert) error

	// GetForTarget retrieves alerts addressed to the actor, newest
	// first, including broadcast alerts.
	GetForTarget(ctx context.Context, targetID kernel.UUID) ([]*alert.Alert, error)

	// Get retrieves an alert by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error)

	// Update persists changes to an existing alert.
	Update(ctx context.Context, aggregate *alert.Alert) error
}
