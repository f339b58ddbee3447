package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrGetFareQuoteQueryIsNotConstructed = errors.New(
	"GetFareQuoteQuery must be created via NewGetFareQuoteQuery constructor",
)

// GetFareQuoteQuery prices a prospective delivery without creating an
// order. The fleet surge signal is read live, so two identical queries
// can differ when couriers toggle surge in between.
type GetFareQuoteQuery struct { //nolint:recvcheck //using for validation
	origin     kernel.GeoPoint
	dest       kernel.GeoPoint
	etaMinutes float64
	surgeFlags services.SurgeFlags

	guard guard.ConstructorGuard
}

// NewGetFareQuoteQuery creates a fare quote query.
func NewGetFareQuoteQuery(
	origin kernel.GeoPoint,
	dest kernel.GeoPoint,
	etaMinutes float64,
	surgeFlags services.SurgeFlags,
) (GetFareQuoteQuery, error) {
	q := GetFareQuoteQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(origin.Validate(), dest.Validate()); err != nil {
		return GetFareQuoteQuery{}, err
	}

	q.origin = origin
	q.dest = dest
	q.etaMinutes = etaMinutes
	q.surgeFlags = surgeFlags

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetFareQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetFareQuoteQueryIsNotConstructed)
}

// Origin returns the pickup point.
func (q GetFareQuoteQuery) Origin() kernel.GeoPoint {
	return q.origin
}

// Dest returns the drop point.
func (q GetFareQuoteQuery) Dest() kernel.GeoPoint {
	return q.dest
}

// ETAMinutes returns the estimated transit time.
func (q GetFareQuoteQuery) ETAMinutes() float64 {
	return q.etaMinutes
}

// SurgeFlags returns the surge conditions supplied by the caller.
func (q GetFareQuoteQuery) SurgeFlags() services.SurgeFlags {
	return q.surgeFlags
}

// GetFareQuoteQueryResponse represents a priced quote with its breakdown.
type GetFareQuoteQueryResponse struct {
	Fee       int                    `json:"fee"`
	Breakdown services.FareBreakdown `json:"breakdown"`
}
