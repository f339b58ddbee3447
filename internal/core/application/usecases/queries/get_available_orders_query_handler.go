package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler reads the claimable pool straight from
// the database, oldest first so long-waiting orders surface on top.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for claimable pool queries.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]AvailableOrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]AvailableOrderResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			vendor_id,
			status,
			total_amount,
			delivery_fee
		FROM orders
		WHERE courier_id IS NULL AND status IN ?
		ORDER BY created_at
	`, []int{int(order.Pending), int(order.Confirmed), int(order.Preparing)}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, vendorID uuid.UUID
		var status int
		var resp AvailableOrderResponse

		err = rows.Scan(&id, &vendorID, &status, &resp.TotalAmount, &resp.DeliveryFee)
		if err != nil {
			return nil, err
		}

		resp.ID = id.String()
		resp.VendorID = vendorID.String()
		resp.Status = order.Status(status).String()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
