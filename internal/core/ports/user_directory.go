package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// UserDirectory resolves role audiences to concrete users. The fan-out
// router addresses notices to roles; this port turns a role into the user
// IDs that hold it for a given branch.
type UserDirectory interface {
	// UserIDsByRole retrieves the IDs of all users holding the given role
	// with visibility of the given branch.
	UserIDsByRole(ctx context.Context, role order.Role, branchID kernel.UUID) ([]kernel.UUID, error)
}
