// Package queries contains read operations over the persistence model.
// Query handlers bypass the aggregates and read projections directly,
// per the CQRS split; they never modify state.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with all of its items.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderItemResponse is one order line in the order view.
type GetOrderItemResponse struct {
	ID           kernel.UUID
	QtyRequested int
	QtyApproved  *int
	UnitPrice    int64
	Resolved     bool
}

// GetOrderQueryResponse is the full order view returned to the transport
// layer.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	Number       string
	BranchID     kernel.UUID
	RequesterID  kernel.UUID
	Status       string
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
	Items        []GetOrderItemResponse
}
