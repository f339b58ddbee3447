package services

import (
	"fmt"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Fare pricing constants. Fees are whole currency units (₹).
const (
	// freeTransitMinutes is how many estimated transit minutes are included
	// in the base fare before the per-minute adjustment kicks in.
	freeTransitMinutes = 20
	// feePerExtraMinute is charged for every estimated minute beyond the
	// free allowance.
	feePerExtraMinute = 1

	surgePeakPercent     = 0.30
	surgeRainPercent     = 0.20
	surgeFestivalPercent = 0.20
	surgeFleetPercent    = 0.20
)

// distanceSlab is one row of the base fare table: any distance up to
// upToMeters (inclusive) prices at fare.
type distanceSlab struct {
	upToMeters float64
	fare       int
}

// baseFareSlabs is the distance-banded base fare table.
//
// TODO: the 2000-3000m and >3000m bands collapse to the same fare as the
// 1000-2000m band; confirm with pricing whether the longer bands were ever
// meant to differ before touching these numbers.
func baseFareSlabs() []distanceSlab {
	return []distanceSlab{
		{upToMeters: 500, fare: 45},
		{upToMeters: 1000, fare: 40},
		{upToMeters: 2000, fare: 30},
		{upToMeters: 3000, fare: 30},
	}
}

// fareBeyondLastSlab prices every distance beyond the last table row.
const fareBeyondLastSlab = 30

// SurgeFlags are the per-quote demand conditions supplied by the caller.
type SurgeFlags struct {
	Peak     bool
	Rain     bool
	Festival bool
}

// FareBreakdown itemizes how a fee was computed. Returning the full
// breakdown is a hard requirement for fare auditability, not incidental
// logging.
type FareBreakdown struct {
	DistanceMeters float64  `json:"distanceMeters"`
	BaseFare       int      `json:"baseFare"`
	TimeAdjustment int      `json:"timeAdjustment"`
	SurgePercent   float64  `json:"surgePercent"`
	Reasons        []string `json:"reasons"`
}

// FareQuote is the priced result of a quote request.
type FareQuote struct {
	Fee       int           `json:"fee"`
	Breakdown FareBreakdown `json:"breakdown"`
}

// FareCalculator computes delivery fees. It is a pure domain service: two
// calls with the same inputs always produce the same quote.
type FareCalculator struct{}

// NewFareCalculator creates a FareCalculator.
func NewFareCalculator() FareCalculator {
	return FareCalculator{}
}

// Quote prices a delivery.
//
// The fee is built in three steps:
//  1. base fare from the great-circle pickup-to-drop distance, by slab
//  2. time adjustment of ₹1 per estimated transit minute beyond 20
//  3. an additive surge percentage: +30% peak, +20% rain, +20% festival,
//     and +20% when the courier fleet's surge opt-in signal is active
//
// Final fee = round((base + timeAdjustment) * (1 + surge)), floored at 0.
// fleetSurge is derived outside this pure function (any courier with surge
// opt-in toggled within the last 30 minutes).
func (FareCalculator) Quote(
	origin kernel.GeoPoint,
	dest kernel.GeoPoint,
	etaMinutes float64,
	flags SurgeFlags,
	fleetSurge bool,
) (FareQuote, error) {
	if etaMinutes < 0 {
		return FareQuote{}, errs.NewValueIsInvalidErrorWithCause("etaMinutes",
			fmt.Errorf("%f is negative", etaMinutes))
	}

	distance, err := origin.DistanceMeters(dest)
	if err != nil {
		return FareQuote{}, err
	}

	base := baseFareForDistance(distance)

	timeAdjustment := (int(math.Round(etaMinutes)) - freeTransitMinutes) * feePerExtraMinute
	if timeAdjustment < 0 {
		timeAdjustment = 0
	}

	surge := 0.0
	reasons := make([]string, 0, 4)
	if flags.Peak {
		surge += surgePeakPercent
		reasons = append(reasons, "peak hours +30%")
	}
	if flags.Rain {
		surge += surgeRainPercent
		reasons = append(reasons, "rain +20%")
	}
	if flags.Festival {
		surge += surgeFestivalPercent
		reasons = append(reasons, "festival +20%")
	}
	if fleetSurge {
		surge += surgeFleetPercent
		reasons = append(reasons, "courier surge opt-in +20%")
	}

	fee := int(math.Round(float64(base+timeAdjustment) * (1 + surge)))
	if fee < 0 {
		fee = 0
	}

	return FareQuote{
		Fee: fee,
		Breakdown: FareBreakdown{
			DistanceMeters: distance,
			BaseFare:       base,
			TimeAdjustment: timeAdjustment,
			SurgePercent:   surge,
			Reasons:        reasons,
		},
	}, nil
}

// baseFareForDistance resolves the slab table for the given distance.
func baseFareForDistance(meters float64) int {
	for _, slab := range baseFareSlabs() {
		if meters <= slab.upToMeters {
			return slab.fare
		}
	}
	return fareBeyondLastSlab
}
