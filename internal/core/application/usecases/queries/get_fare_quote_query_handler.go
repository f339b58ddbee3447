package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetFareQuoteQueryHandler prices deliveries. The calculation itself is
// pure; only the fleet surge signal comes from the database.
type GetFareQuoteQueryHandler struct {
	db   *gorm.DB
	fare services.FareCalculator
}

// NewGetFareQuoteQueryHandler creates a handler for fare quote queries.
func NewGetFareQuoteQueryHandler(db *gorm.DB, fare services.FareCalculator) GetFareQuoteQueryHandler {
	return GetFareQuoteQueryHandler{db: db, fare: fare}
}

// Handle executes the query.
func (h GetFareQuoteQueryHandler) Handle(
	ctx context.Context,
	query GetFareQuoteQuery,
) (GetFareQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFareQuoteQueryResponse{}, err
	}

	fleetSurge, err := h.fleetSurgeActive(ctx)
	if err != nil {
		return GetFareQuoteQueryResponse{}, err
	}

	quote, err := h.fare.Quote(
		query.Origin(), query.Dest(), query.ETAMinutes(), query.SurgeFlags(), fleetSurge,
	)
	if err != nil {
		return GetFareQuoteQueryResponse{}, err
	}

	return GetFareQuoteQueryResponse{
		Fee:       quote.Fee,
		Breakdown: quote.Breakdown,
	}, nil
}

// fleetSurgeActive reports whether any courier toggled surge on within
// the surge window.
func (h GetFareQuoteQueryHandler) fleetSurgeActive(ctx context.Context) (bool, error) {
	var count int64

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM couriers
		WHERE surge_enabled = true AND surge_toggled_at >= ?
	`, time.Now().Add(-courier.SurgeWindow)).Scan(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
