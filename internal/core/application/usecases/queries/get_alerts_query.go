package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAlertsQueryIsNotConstructed = errors.New(
	"GetAlertsQuery must be created via NewGetAlertsQuery constructor",
)

// GetAlertsQuery retrieves the alerts visible to an actor: those
// addressed to them plus broadcasts, newest first.
type GetAlertsQuery struct { //nolint:recvcheck //using for validation
	targetID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAlertsQuery creates an alerts query for the actor.
func NewGetAlertsQuery(targetID kernel.UUID) (GetAlertsQuery, error) {
	q := GetAlertsQuery{guard: guard.NewConstructorGuard()}

	if err := targetID.Validate(); err != nil {
		return GetAlertsQuery{}, err
	}
	q.targetID = targetID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAlertsQuery) Validate() error {
	return q.guard.Validate(ErrGetAlertsQueryIsNotConstructed)
}

// TargetID returns the actor whose alerts are requested.
func (q GetAlertsQuery) TargetID() kernel.UUID {
	return q.targetID
}

// AlertResponse represents one alert.
type AlertResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Broadcast bool      `json:"broadcast"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
