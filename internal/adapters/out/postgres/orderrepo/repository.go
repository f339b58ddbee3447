package orderrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// claimableStatuses are the statuses a courier may claim an order in.
func claimableStatuses() []int {
	return []int{int(order.Pending), int(order.Confirmed), int(order.Preparing)}
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing order unconditionally. Order lines are
// immutable after creation and are not rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(mutableColumns(aggregate))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return nil
}

// UpdateInStatus saves the order only if the stored row is still in the
// expected status. Zero rows affected means a concurrent writer moved
// the order first and the caller gets ports.ErrOrderModified.
func (r *GormOrderRepository) UpdateInStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(expected)).
		Updates(mutableColumns(aggregate))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderModified
	}

	return nil
}

// Get retrieves an order by ID, order lines included.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnassigned retrieves the claimable pool: orders with no courier
// in a claimable status, oldest first.
func (r *GormOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("courier_id IS NULL AND status IN ?", claimableStatuses()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetStalePending retrieves pending orders created before the cutoff.
func (r *GormOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND created_at < ?", int(order.Pending), cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Claim atomically assigns the courier. The single conditional UPDATE
// is the whole race: under read-committed isolation concurrent claims
// serialize on the row lock and only the first matches the
// courier_id IS NULL predicate.
func (r *GormOrderRepository) Claim(
	ctx context.Context,
	orderID kernel.UUID,
	courierID kernel.UUID,
) (bool, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return false, err
	}

	courierRaw := courierID.Bytes()
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND courier_id IS NULL AND status IN ?", orderID.Bytes(), claimableStatuses()).
		Updates(map[string]any{
			"courier_id": courierRaw,
			"status":     int(order.Confirmed),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	// Lost the race or the order never existed; look to tell them apart.
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, errs.NewObjectNotFoundError("order", orderID.String())
	}

	return false, nil
}

// mutableColumns lists the columns lifecycle changes may touch.
func mutableColumns(aggregate *order.Order) map[string]any {
	columns := map[string]any{
		"status":           int(aggregate.Status()),
		"vendor_confirmed": aggregate.VendorConfirmed(),
		"updated_at":       aggregate.UpdatedAt(),
	}

	if id := aggregate.Courier(); id != nil {
		columns["courier_id"] = id.Bytes()
	}
	if snapshot := aggregate.CourierLocation(); snapshot != nil {
		columns["courier_loc_lat"] = snapshot.Point.Lat()
		columns["courier_loc_lng"] = snapshot.Point.Lng()
		columns["courier_loc_at"] = snapshot.At
	}

	return columns
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
