package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/issue"
	"fulfillment/internal/core/domain/model/kernel"
)

// IssueRepository defines the persistence contract for the negotiation
// ledger. Entries are append-only: there is no update or delete.
type IssueRepository interface {
	// Add appends a new ledger entry.
	Add(ctx context.Context, message *issue.Message) error

	// GetThread retrieves all ledger entries of an order, ordered oldest
	// first.
	GetThread(ctx context.Context, orderID kernel.UUID) (issue.Thread, error)
}
