package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Edge names a transition of the order lifecycle graph. Edges are stable
// identifiers: the fan-out router keys its recipient and template tables on
// them, and notifications carry them as their type tag.
type Edge string

const (
	// EdgeRequest is the creation edge: a branch user submits a new order.
	EdgeRequest Edge = "order.requested"

	// EdgeApprove moves Requested to ManagerApproved with per-item quantities.
	EdgeApprove Edge = "order.manager_approved"

	// EdgeConfirm moves ManagerApproved to Confirmed (requester accepts).
	EdgeConfirm Edge = "order.confirmed"

	// EdgeRaiseIssue moves ManagerApproved to IssueRaised (requester disputes).
	EdgeRaiseIssue Edge = "order.issue_raised"

	// EdgeReply moves IssueRaised back to ManagerApproved (manager replies,
	// optionally revising approved quantities).
	EdgeReply Edge = "order.issue_replied"

	// EdgeArrangingStarted enters the Arranging status.
	EdgeArrangingStarted Edge = "order.arranging"

	// EdgeArranged advances the arranging substage to Arranged.
	EdgeArranged Edge = "order.arranged"

	// EdgeSentForPackaging advances the arranging substage to SentForPackaging.
	EdgeSentForPackaging Edge = "order.sent_for_packaging"

	// EdgeStartPackaging moves the order to UnderPackaging.
	EdgeStartPackaging Edge = "order.under_packaging"

	// EdgeCompletePackaging moves the order to PackagingCompleted.
	EdgeCompletePackaging Edge = "order.packaging_completed"

	// EdgeDispatch moves the order to InTransit with tracking details.
	EdgeDispatch Edge = "order.in_transit"

	// EdgeConfirmReceived moves the order to Received (branch confirms receipt).
	EdgeConfirmReceived Edge = "order.received"

	// EdgeClose moves the order to Closed, by a manager/admin or the system.
	EdgeClose Edge = "order.closed"
)

// getAllowedRoles returns the static role table of the lifecycle graph:
// for every edge, the roles allowed to initiate it. The table is the single
// authority consulted by the aggregate's transition methods; no transition
// outside it is reachable.
func getAllowedRoles() map[Edge][]Role {
	return map[Edge][]Role{
		EdgeRequest:           {RoleBranchUser},
		EdgeApprove:           {RoleManager, RoleAdmin},
		EdgeConfirm:           {RoleBranchUser},
		EdgeRaiseIssue:        {RoleBranchUser},
		EdgeReply:             {RoleManager, RoleAdmin},
		EdgeArrangingStarted:  {RoleManager, RoleAdmin},
		EdgeArranged:          {RoleManager, RoleAdmin},
		EdgeSentForPackaging:  {RoleManager, RoleAdmin},
		EdgeStartPackaging:    {RolePackager, RoleManager, RoleAdmin},
		EdgeCompletePackaging: {RolePackager, RoleManager, RoleAdmin},
		EdgeDispatch:          {RoleDispatcher, RoleManager, RoleAdmin},
		EdgeConfirmReceived:   {RoleBranchUser},
		EdgeClose:             {RoleSystem, RoleManager, RoleAdmin},
	}
}

// AllEdges returns every edge of the lifecycle graph.
// Used by exhaustive transition tests and by the fan-out routing table.
func AllEdges() []Edge {
	return []Edge{
		EdgeRequest,
		EdgeApprove,
		EdgeConfirm,
		EdgeRaiseIssue,
		EdgeReply,
		EdgeArrangingStarted,
		EdgeArranged,
		EdgeSentForPackaging,
		EdgeStartPackaging,
		EdgeCompletePackaging,
		EdgeDispatch,
		EdgeConfirmReceived,
		EdgeClose,
	}
}

// ArrangingEdge returns the edge that advances an order into the given
// arranging substage. The second return is false if the substage is not an
// arranging substage.
func ArrangingEdge(s Substage) (Edge, bool) {
	edge, ok := arrangingEdges()[s]
	return edge, ok
}

// IsAllowedFor reports whether the given role is among the allowed
// initiators of this edge.
func (e Edge) IsAllowedFor(role Role) bool {
	for _, allowed := range getAllowedRoles()[e] {
		if allowed == role {
			return true
		}
	}
	return false
}

// TransitionOutcome describes a successfully validated transition.
// The aggregate returns it from every transition method; after the commit
// the fan-out router consumes it to build and deliver notifications.
type TransitionOutcome struct {
	Edge        Edge
	OrderID     kernel.UUID
	OrderNumber string
	From        Status
	To          Status
	Substage    Substage
	ActorID     kernel.UUID
	ActorRole   Role
	OccurredAt  time.Time
}
