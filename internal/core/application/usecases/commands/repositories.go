// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// IssueRepoFactory provides access to the negotiation ledger within a transaction.
	IssueRepoFactory interface {
		IssueRepository() ports.IssueRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderIssueUoW manages transactions that touch an order together with
	// its negotiation ledger. The ledger entry and the state change commit
	// or roll back as one.
	OrderIssueUoW interface {
		TxManager
		OrderRepoFactory
		IssueRepoFactory
	}

	// OrderIssueUoWFactory creates new order+ledger unit of work instances.
	OrderIssueUoWFactory interface {
		Create() OrderIssueUoW
	}

	// NotificationUoW manages transactions for notification-only operations.
	// The fan-out runs in its own transaction after the state change has
	// committed, so a notification failure never rolls a transition back.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
