// Package devicerepo persists the push tokens actors register for
// their devices and implements the token directory consulted by the
// notification dispatcher.
package devicerepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceTokensDTO represents an actor's registered push tokens.
// Primary and secondary keep the fallback ordering chosen at
// registration time; either may be empty.
type DeviceTokensDTO struct {
	ActorID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PrimaryToken   string
	SecondaryToken string
	UpdatedAt      time.Time
}

// TableName specifies the database table name for device tokens.
func (DeviceTokensDTO) TableName() string {
	return "device_tokens"
}

// GormTokenDirectory implements ports.TokenDirectory using GORM.
type GormTokenDirectory struct {
	db *gorm.DB
}

// NewGormTokenDirectory creates a new GORM token directory.
func NewGormTokenDirectory(db *gorm.DB) *GormTokenDirectory {
	return &GormTokenDirectory{db: db}
}

// ChannelTokens resolves the actor's registered tokens. An actor with
// no registration gets empty tokens, not an error; push is optional.
func (r *GormTokenDirectory) ChannelTokens(ctx context.Context, actorID kernel.UUID) (ports.ChannelTokens, error) {
	if err := actorID.Validate(); err != nil {
		return ports.ChannelTokens{}, err
	}

	var dto DeviceTokensDTO
	err := r.db.WithContext(ctx).First(&dto, "actor_id = ?", actorID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ChannelTokens{}, nil
		}
		return ports.ChannelTokens{}, err
	}

	return ports.ChannelTokens{
		Primary:   dto.PrimaryToken,
		Secondary: dto.SecondaryToken,
	}, nil
}

// Register upserts the actor's tokens, replacing any prior registration.
func (r *GormTokenDirectory) Register(ctx context.Context, actorID kernel.UUID, tokens ports.ChannelTokens) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	dto := DeviceTokensDTO{
		ActorID:        actorID.Bytes(),
		PrimaryToken:   tokens.Primary,
		SecondaryToken: tokens.Secondary,
		UpdatedAt:      time.Now(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"primary_token", "secondary_token", "updated_at"}),
	}).Create(&dto).Error
}
