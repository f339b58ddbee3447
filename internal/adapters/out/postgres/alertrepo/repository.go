package alertrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/alert"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAlertRepository implements ports.AlertRepository using GORM.
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GORM alert repository.
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// Add saves a new alert to the database.
func (r *GormAlertRepository) Add(ctx context.Context, aggregate *alert.Alert) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an alert by ID.
func (r *GormAlertRepository) Get(ctx context.Context, id kernel.UUID) (*alert.Alert, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AlertDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("alert", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForTarget retrieves alerts addressed to the actor, broadcast
// alerts included, newest first.
func (r *GormAlertRepository) GetForTarget(ctx context.Context, targetID kernel.UUID) ([]*alert.Alert, error) {
	if err := targetID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AlertDTO
	err := r.db.WithContext(ctx).
		Where("target_id = ? OR target_id IS NULL", targetID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	alerts := make([]*alert.Alert, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		alerts = append(alerts, aggregate)
	}

	return alerts, nil
}

// Update saves an existing alert to the database.
func (r *GormAlertRepository) Update(ctx context.Context, aggregate *alert.Alert) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AlertDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{"read": dto.Read})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("alert", aggregate.ID().String())
	}

	return nil
}
