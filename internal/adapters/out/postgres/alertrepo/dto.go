// Package alertrepo provides data transfer objects and mapping
// functions for alert persistence.
package alertrepo

import (
	"time"

	"dispatch/internal/core/domain/model/alert"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AlertDTO represents the database structure for persisting alerts.
// TargetID is null for broadcast alerts.
type AlertDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TargetID  *uuid.UUID `gorm:"type:uuid;index"`
	Title     string
	Message   string
	AlertType int
	Read      bool
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for alert entities.
func (AlertDTO) TableName() string {
	return "alerts"
}

// fromDomain converts an alert domain aggregate to its database representation.
func fromDomain(aggregate *alert.Alert) AlertDTO {
	var targetID *uuid.UUID
	if id := aggregate.Target(); id != nil {
		raw := id.Bytes()
		targetID = &raw
	}

	return AlertDTO{
		ID:        aggregate.ID().Bytes(),
		TargetID:  targetID,
		Title:     aggregate.Title(),
		Message:   aggregate.Message(),
		AlertType: int(aggregate.AlertType()),
		Read:      aggregate.Read(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an alert domain aggregate.
func toDomain(dto AlertDTO) (*alert.Alert, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var targetID *kernel.UUID
	if dto.TargetID != nil {
		tID, targetErr := kernel.UUIDFromBytes((*dto.TargetID)[:])
		if targetErr != nil {
			return nil, targetErr
		}
		targetID = &tID
	}

	return alert.RestoreAlert(
		id, targetID, dto.Title, dto.Message,
		alert.Type(dto.AlertType), dto.Read, dto.CreatedAt,
	)
}
