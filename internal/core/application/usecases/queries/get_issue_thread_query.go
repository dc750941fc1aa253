package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetIssueThreadQueryIsNotConstructed = errors.New(
	"GetIssueThreadQuery must be created via NewGetIssueThreadQuery constructor",
)

// GetIssueThreadQuery retrieves an order's negotiation ledger, oldest entry
// first.
type GetIssueThreadQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetIssueThreadQuery creates a query over one order's ledger.
func NewGetIssueThreadQuery(orderID kernel.UUID) (GetIssueThreadQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetIssueThreadQuery{}, err
	}

	return GetIssueThreadQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetIssueThreadQuery) Validate() error {
	return q.guard.Validate(ErrGetIssueThreadQueryIsNotConstructed)
}

// OrderID returns the order whose ledger to fetch.
func (q GetIssueThreadQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetIssueThreadQueryResponse is one ledger entry in the thread view.
type GetIssueThreadQueryResponse struct {
	ID          kernel.UUID
	ItemID      *kernel.UUID
	SenderID    kernel.UUID
	SenderRole  string
	Text        string
	ProposedQty *int
	CreatedAt   time.Time
}
