// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the repository pattern for the
// order aggregate, including the conditional updates that carry the
// claim-race and transition concurrency guarantees.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed by status and courier assignment because the
// claimable pool and the claim update both filter on those columns.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	VendorID        uuid.UUID  `gorm:"type:uuid;index"`
	RouteID         uuid.UUID  `gorm:"type:uuid"`
	CourierID       *uuid.UUID `gorm:"type:uuid;index"`
	Status          int        `gorm:"index"`
	VendorConfirmed bool
	TotalAmount     int
	DeliveryFee     int

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CustomerLocation SnapshotDTO `gorm:"embedded;embeddedPrefix:customer_loc_"`
	VendorLocation   SnapshotDTO `gorm:"embedded;embeddedPrefix:vendor_loc_"`
	CourierLocation  SnapshotDTO `gorm:"embedded;embeddedPrefix:courier_loc_"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents a persisted order line.
type ItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Quantity  int
	UnitPrice int
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// SnapshotDTO represents an optional embedded location snapshot.
// All fields are nil when the snapshot was never recorded.
type SnapshotDTO struct {
	Lat *float64
	Lng *float64
	At  *time.Time
}

func snapshotFromDomain(s *order.LocationSnapshot) SnapshotDTO {
	if s == nil {
		return SnapshotDTO{}
	}

	lat := s.Point.Lat()
	lng := s.Point.Lng()
	at := s.At
	return SnapshotDTO{Lat: &lat, Lng: &lng, At: &at}
}

func (s SnapshotDTO) toDomain() (kernel.GeoPoint, time.Time, bool, error) {
	if s.Lat == nil || s.Lng == nil || s.At == nil {
		return kernel.GeoPoint{}, time.Time{}, false, nil
	}

	point, err := kernel.NewGeoPoint(*s.Lat, *s.Lng)
	if err != nil {
		return kernel.GeoPoint{}, time.Time{}, false, err
	}
	return point, *s.At, true, nil
}

// fromDomain converts an order domain aggregate to its database
// representation, order lines included.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		VendorID:         aggregate.VendorID().Bytes(),
		RouteID:          aggregate.RouteID().Bytes(),
		CourierID:        courierID,
		Status:           int(aggregate.Status()),
		VendorConfirmed:  aggregate.VendorConfirmed(),
		TotalAmount:      aggregate.TotalAmount(),
		DeliveryFee:      aggregate.DeliveryFee(),
		Items:            items,
		CustomerLocation: snapshotFromDomain(aggregate.CustomerLocation()),
		VendorLocation:   snapshotFromDomain(aggregate.VendorLocation()),
		CourierLocation:  snapshotFromDomain(aggregate.CourierLocation()),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which re-validates the status/courier invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}
	routeID, err := kernel.UUIDFromBytes(dto.RouteID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	aggregate, err := order.RestoreOrder(
		id, customerID, vendorID, routeID,
		order.Status(dto.Status), courierID, dto.VendorConfirmed,
		items, dto.DeliveryFee, dto.CreatedAt, dto.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err = restoreSnapshot(dto.CustomerLocation, aggregate.SetCustomerLocation); err != nil {
		return nil, err
	}
	if err = restoreSnapshot(dto.VendorLocation, aggregate.SetVendorLocation); err != nil {
		return nil, err
	}
	if err = restoreSnapshot(dto.CourierLocation, aggregate.SetCourierLocation); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func restoreSnapshot(dto SnapshotDTO, set func(kernel.GeoPoint, time.Time) error) error {
	point, at, ok, err := dto.toDomain()
	if err != nil || !ok {
		return err
	}
	return set(point, at)
}
