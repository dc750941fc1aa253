// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column carries the optimistic concurrency token: every update
// must name the version it loaded, and a mismatch means another actor won
// the write.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"uniqueIndex"`
	BranchID     uuid.UUID `gorm:"type:uuid;index"`
	RequesterID  uuid.UUID `gorm:"type:uuid;index"`
	Status       string    `gorm:"index"`
	Substage     string
	Remarks      string
	ManagerReply string
	TrackingID   string
	TrackingLink string
	RequestedAt  time.Time
	ApprovedAt   *time.Time
	ConfirmedAt  *time.Time
	DispatchedAt *time.Time
	ReceivedAt   *time.Time
	ClosedAt     *time.Time
	Version      int
	Items        []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Lines are created with their order and
// amended in place; they are never deleted.
type ItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	QtyRequested int
	QtyApproved  *int
	UnitPrice    int64
	Resolved     bool
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:           item.ID().Bytes(),
			OrderID:      aggregate.ID().Bytes(),
			QtyRequested: item.QtyRequested(),
			QtyApproved:  item.QtyApproved(),
			UnitPrice:    item.UnitPrice(),
			Resolved:     item.IsResolved(),
		})
	}

	stamps := aggregate.Stamps()
	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Number:       aggregate.Number(),
		BranchID:     aggregate.BranchID().Bytes(),
		RequesterID:  aggregate.RequesterID().Bytes(),
		Status:       aggregate.Status().String(),
		Substage:     aggregate.Substage().String(),
		Remarks:      aggregate.Remarks(),
		ManagerReply: aggregate.ManagerReply(),
		TrackingID:   aggregate.TrackingID(),
		TrackingLink: aggregate.TrackingLink(),
		RequestedAt:  stamps.RequestedAt,
		ApprovedAt:   stamps.ApprovedAt,
		ConfirmedAt:  stamps.ConfirmedAt,
		DispatchedAt: stamps.DispatchedAt,
		ReceivedAt:   stamps.ReceivedAt,
		ClosedAt:     stamps.ClosedAt,
		Version:      aggregate.Version(),
		Items:        items,
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, re-running the aggregate's consistency checks against the
// stored row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	branchID, err := kernel.UUIDFromBytes(dto.BranchID[:])
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	substage, err := order.ParseSubstage(dto.Substage)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.RestoreItem(
			itemID, itemDTO.QtyRequested, itemDTO.QtyApproved, itemDTO.UnitPrice, itemDTO.Resolved)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, dto.Number, branchID, requesterID,
		status, substage, items,
		dto.Remarks, dto.ManagerReply, dto.TrackingID, dto.TrackingLink,
		order.Stamps{
			RequestedAt:  dto.RequestedAt,
			ApprovedAt:   dto.ApprovedAt,
			ConfirmedAt:  dto.ConfirmedAt,
			DispatchedAt: dto.DispatchedAt,
			ReceivedAt:   dto.ReceivedAt,
			ClosedAt:     dto.ClosedAt,
		},
		dto.Version,
	)
}
