// Package alert contains the persisted notification record created as a
// side effect of order transitions. Alerts are append-only; the only
// mutation after creation is marking them read.
package alert

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAlertIsNotConstructed is returned when using an Alert that did not
// come from NewAlert or RestoreAlert.
var ErrAlertIsNotConstructed = errors.New("Alert must be created via NewAlert or RestoreAlert constructor")

// Type classifies what an alert is about.
type Type int

const (
	// TypeUnknown catches uninitialized Type values.
	TypeUnknown Type = iota
	// TypeOrderUpdate notifies an actor about a lifecycle change on one of
	// their orders.
	TypeOrderUpdate
	// TypeOrderAvailable broadcasts a new unassigned order to couriers.
	TypeOrderAvailable
	// TypeOrderClaimed informs customer and vendor that a courier took the
	// order.
	TypeOrderClaimed
	// TypeOrderCancelled informs the interested actors about cancellation.
	TypeOrderCancelled
)

// getTypeStrings returns the map of Type values to wire names.
func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:        "unknown",
		TypeOrderUpdate:    "order_update",
		TypeOrderAvailable: "order_available",
		TypeOrderClaimed:   "order_claimed",
		TypeOrderCancelled: "order_cancelled",
	}
}

// Validate checks that the Type is one of the defined kinds.
func (t Type) Validate() error {
	if t != TypeOrderUpdate && t != TypeOrderAvailable && t != TypeOrderClaimed && t != TypeOrderCancelled {
		return errs.NewValueIsInvalidErrorWithCause("alert type",
			fmt.Errorf("%d is not a valid alert type", t))
	}
	return nil
}

// String returns the wire name of the type. Implements fmt.Stringer.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Alert is a persisted notification record. A nil target means the alert
// is a broadcast to every eligible actor of a role (currently only the
// courier role uses broadcasts, for newly available orders).
type Alert struct {
	id        kernel.UUID
	targetID  *kernel.UUID
	title     string
	message   string
	alertType Type
	read      bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewAlert creates an unread alert. A nil targetID creates a broadcast.
func NewAlert(id kernel.UUID, targetID *kernel.UUID, title, message string, alertType Type, now time.Time) (*Alert, error) {
	a := &Alert{
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setTarget(targetID),
		a.setContent(title, message),
		alertType.Validate(),
	); err != nil {
		return nil, err
	}

	a.alertType = alertType
	return a, nil
}

// RestoreAlert reconstructs an alert from persistence.
func RestoreAlert(
	id kernel.UUID,
	targetID *kernel.UUID,
	title, message string,
	alertType Type,
	read bool,
	createdAt time.Time,
) (*Alert, error) {
	a, err := NewAlert(id, targetID, title, message, alertType, createdAt)
	if err != nil {
		return nil, err
	}
	a.read = read
	return a, nil
}

// Validate ensures the Alert was properly constructed.
func (a *Alert) Validate() error {
	if a == nil || a.guard.Validate(ErrAlertIsNotConstructed) != nil {
		return ErrAlertIsNotConstructed
	}
	return nil
}

// ID returns the alert identifier.
func (a *Alert) ID() kernel.UUID { return a.id }

// Target returns the addressed actor, or nil for a broadcast.
func (a *Alert) Target() *kernel.UUID { return a.targetID }

// IsBroadcast reports whether the alert addresses all actors of a role.
func (a *Alert) IsBroadcast() bool { return a.targetID == nil }

// Title returns the alert title.
func (a *Alert) Title() string { return a.title }

// Message returns the alert body.
func (a *Alert) Message() string { return a.message }

// AlertType returns the alert classification.
func (a *Alert) AlertType() Type { return a.alertType }

// Read reports whether the alert was marked read.
func (a *Alert) Read() bool { return a.read }

// CreatedAt returns the creation timestamp.
func (a *Alert) CreatedAt() time.Time { return a.createdAt }

// MarkRead flags the alert as read. This is the only mutation an alert
// supports after creation.
func (a *Alert) MarkRead() {
	a.read = true
}

func (a *Alert) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Alert) setTarget(targetID *kernel.UUID) error {
	if targetID == nil {
		return nil
	}
	if err := targetID.Validate(); err != nil {
		return err
	}
	tID := *targetID
	a.targetID = &tID
	return nil
}

func (a *Alert) setContent(title, message string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	a.title = title
	a.message = message
	return nil
}
