package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a stock requisition order.
// It implements a state machine with defined transitions to ensure orders
// follow the fulfillment workflow.
//
// State transitions (happy path):
//
//	Requested ──> ManagerApproved ──> Confirmed ──> Arranging ──> UnderPackaging
//	                  │    ▲                                           │
//	                  ▼    │                                           ▼
//	              IssueRaised                                 PackagingCompleted
//	                                                                   │
//	     Closed <── Received <── InTransit <───────────────────────────┘
//
// The ManagerApproved <-> IssueRaised loop is the only backward edge: the
// requester may raise an issue instead of confirming, and the manager's reply
// returns the order to ManagerApproved ("awaiting re-confirmation"). The loop
// is an open negotiation with no programmed iteration cap.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusRequested is the initial status when a branch user submits an order.
	StatusRequested

	// StatusManagerApproved indicates the manager has set per-item approved
	// quantities. The order is awaiting branch confirmation; the requester
	// either confirms or raises an issue.
	StatusManagerApproved

	// StatusIssueRaised indicates the requester disputed the approved
	// quantities and the order has returned to manager attention.
	StatusIssueRaised

	// StatusConfirmed indicates the requester accepted the approved quantities.
	StatusConfirmed

	// StatusArranging indicates stock is being arranged. Finer-grained
	// progress within this status is tracked by Substage.
	StatusArranging

	// StatusUnderPackaging indicates the packaging team is packing the order.
	StatusUnderPackaging

	// StatusPackagingCompleted indicates packaging has finished and the order
	// awaits dispatch.
	StatusPackagingCompleted

	// StatusInTransit indicates the order has been dispatched with tracking
	// details to the branch.
	StatusInTransit

	// StatusReceived indicates the branch confirmed physical receipt.
	// Item-level issue threads remain open for post-delivery discrepancies.
	StatusReceived

	// StatusClosed is the final state. Reached automatically after a grace
	// period or explicitly by a manager/admin.
	StatusClosed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:            "Unknown",
		StatusRequested:          "Requested",
		StatusManagerApproved:    "ManagerApproved",
		StatusIssueRaised:        "IssueRaised",
		StatusConfirmed:          "Confirmed",
		StatusArranging:          "Arranging",
		StatusUnderPackaging:     "UnderPackaging",
		StatusPackagingCompleted: "PackagingCompleted",
		StatusInTransit:          "InTransit",
		StatusReceived:           "Received",
		StatusClosed:             "Closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusRequested:          "Requested",
		StatusManagerApproved:    "ManagerApproved",
		StatusIssueRaised:        "IssueRaised",
		StatusConfirmed:          "Confirmed",
		StatusArranging:          "Arranging",
		StatusUnderPackaging:     "UnderPackaging",
		StatusPackagingCompleted: "PackagingCompleted",
		StatusInTransit:          "InTransit",
		StatusReceived:           "Received",
		StatusClosed:             "Closed",
	}
}

// AllStatuses returns every valid status. Used by exhaustive transition tests.
func AllStatuses() []Status {
	return []Status{
		StatusRequested,
		StatusManagerApproved,
		StatusIssueRaised,
		StatusConfirmed,
		StatusArranging,
		StatusUnderPackaging,
		StatusPackagingCompleted,
		StatusInTransit,
		StatusReceived,
		StatusClosed,
	}
}

// ParseStatus converts a stored string representation into a Status.
// Returns an error for unrecognized values.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusClosed
}

// PermitsMessaging reports whether issue messages may be appended while the
// order is in this status. Messaging opens once the manager has acted on the
// order and never closes again afterwards, so item-level discrepancy threads
// stay usable after receipt.
func (s Status) PermitsMessaging() bool {
	return s != StatusUnknown && s != StatusRequested
}
