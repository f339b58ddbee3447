// Package courier contains the Courier aggregate: account standing (which
// gates claim eligibility) and the surge opt-in toggle that feeds the
// fleet-wide surge signal of the fare engine.
package courier

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// SurgeWindow is how long a courier's surge opt-in counts towards the
// fleet-wide surge signal after being toggled on.
const SurgeWindow = 30 * time.Minute

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when creating a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// AccountStatus is the courier's standing with the marketplace.
// Only Active couriers may claim orders.
type AccountStatus int

const (
	// StatusUnknown catches uninitialized AccountStatus values.
	StatusUnknown AccountStatus = iota
	// Active couriers may claim and deliver orders.
	Active
	// Inactive couriers are registered but currently off the platform.
	Inactive
	// Suspended couriers are blocked from claiming orders.
	Suspended
)

// getAccountStatusStrings returns the map of AccountStatus values to wire names.
func getAccountStatusStrings() map[AccountStatus]string {
	return map[AccountStatus]string{
		StatusUnknown: "unknown",
		Active:        "active",
		Inactive:      "inactive",
		Suspended:     "suspended",
	}
}

// Validate checks that the AccountStatus is one of the defined states.
func (s AccountStatus) Validate() error {
	if s != Active && s != Inactive && s != Suspended {
		return errs.NewValueIsInvalidErrorWithCause("courier status",
			fmt.Errorf("%d is not a valid courier status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s AccountStatus) String() string {
	if str, ok := getAccountStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Courier is the aggregate root for a delivery courier. The dispatch core
// only cares about two things: whether the courier is eligible to claim
// orders, and the surge opt-in state that contributes to fleet-wide surge
// pricing. Profile data lives outside this core.
type Courier struct {
	id             kernel.UUID
	name           string
	status         AccountStatus
	surgeEnabled   bool
	surgeToggledAt time.Time
	guard          guard.ConstructorGuard
}

// NewCourier creates an Active courier with surge opt-in disabled.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		status: Active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setID(id), c.setName(name)); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a courier aggregate from persistence.
func RestoreCourier(
	id kernel.UUID,
	name string,
	status AccountStatus,
	surgeEnabled bool,
	surgeToggledAt time.Time,
) (*Courier, error) {
	c := &Courier{
		surgeEnabled:   surgeEnabled,
		surgeToggledAt: surgeToggledAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setID(id), c.setName(name), status.Validate()); err != nil {
		return nil, err
	}

	c.status = status
	return c, nil
}

// Validate ensures the Courier was properly constructed.
func (c *Courier) Validate() error {
	if c == nil || c.guard.Validate(ErrCourierIsNotConstructed) != nil {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Status returns the courier's account standing.
func (c *Courier) Status() AccountStatus { return c.status }

// SurgeEnabled reports whether the courier has surge opt-in switched on.
func (c *Courier) SurgeEnabled() bool { return c.surgeEnabled }

// SurgeToggledAt returns when the surge opt-in was last toggled.
func (c *Courier) SurgeToggledAt() time.Time { return c.surgeToggledAt }

// IsEligible reports whether the courier may claim orders. Eligibility is
// checked once at claim time; later transitions on an already claimed
// order do not re-validate it.
func (c *Courier) IsEligible() bool {
	return c.status == Active
}

// Suspend blocks the courier from claiming orders.
func (c *Courier) Suspend() {
	c.status = Suspended
}

// Activate returns the courier to active standing.
func (c *Courier) Activate() {
	c.status = Active
}

// Deactivate marks the courier as off the platform.
func (c *Courier) Deactivate() {
	c.status = Inactive
}

// EnableSurge switches the courier's surge opt-in on at the given time.
func (c *Courier) EnableSurge(now time.Time) {
	c.surgeEnabled = true
	c.surgeToggledAt = now
}

// DisableSurge switches the courier's surge opt-in off at the given time.
func (c *Courier) DisableSurge(now time.Time) {
	c.surgeEnabled = false
	c.surgeToggledAt = now
}

// SurgeActive reports whether this courier currently contributes to the
// fleet-wide surge signal: opt-in enabled and toggled within SurgeWindow.
func (c *Courier) SurgeActive(now time.Time) bool {
	return c.surgeEnabled && now.Sub(c.surgeToggledAt) <= SurgeWindow
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
