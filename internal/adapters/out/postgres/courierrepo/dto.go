// Package courierrepo provides data transfer objects and mapping
// functions for courier persistence.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. The surge columns are indexed together because the fleet
// surge check filters on both.
type CourierDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string
	Status         int
	SurgeEnabled   bool      `gorm:"index:idx_couriers_surge"`
	SurgeToggledAt time.Time `gorm:"index:idx_couriers_surge"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Status:         int(aggregate.Status()),
		SurgeEnabled:   aggregate.SurgeEnabled(),
		SurgeToggledAt: aggregate.SurgeToggledAt(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id, dto.Name, courier.AccountStatus(dto.Status),
		dto.SurgeEnabled, dto.SurgeToggledAt,
	)
}
