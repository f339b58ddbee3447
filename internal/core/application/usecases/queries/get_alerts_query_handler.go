package queries

import (
	"context"

	"dispatch/internal/core/domain/model/alert"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAlertsQueryHandler reads an actor's alerts from the database.
type GetAlertsQueryHandler struct {
	db *gorm.DB
}

// NewGetAlertsQueryHandler creates a handler for alert queries.
func NewGetAlertsQueryHandler(db *gorm.DB) GetAlertsQueryHandler {
	return GetAlertsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAlertsQueryHandler) Handle(
	ctx context.Context,
	query GetAlertsQuery,
) ([]AlertResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	alerts := make([]AlertResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			target_id,
			title,
			message,
			alert_type,
			read,
			created_at
		FROM alerts
		WHERE target_id = ? OR target_id IS NULL
		ORDER BY created_at DESC
	`, query.TargetID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var targetID *uuid.UUID
		var alertType int
		var resp AlertResponse

		err = rows.Scan(&id, &targetID, &resp.Title, &resp.Message, &alertType, &resp.Read, &resp.CreatedAt)
		if err != nil {
			return nil, err
		}

		resp.ID = id.String()
		resp.Broadcast = targetID == nil
		resp.Type = alert.Type(alertType).String()

		alerts = append(alerts, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return alerts, nil
}
