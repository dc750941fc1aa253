package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// QuantityApproval pairs an order item with the quantity the manager approves
// for it. Used by Approve (all items) and Reply (revisions of selected items).
type QuantityApproval struct {
	ItemID kernel.UUID
	Qty    int
}

// Stamps holds the timestamp for each lifecycle stage the order has reached.
// RequestedAt is set at creation; every other field stays nil until the
// corresponding stage is reached.
type Stamps struct {
	RequestedAt  time.Time
	ApprovedAt   *time.Time
	ConfirmedAt  *time.Time
	DispatchedAt *time.Time
	ReceivedAt   *time.Time
	ClosedAt     *time.Time
}

// Order is the aggregate root of the fulfillment domain. It holds the
// canonical order status, the per-item approved quantities, and the
// fulfillment substage, and validates every requested transition against
// the current state, the actor's role, and the payload.
//
// Order follows these invariants:
//   - Status transitions are monotonic along the lifecycle graph; the only
//     backward edges are the issue-raise negotiation loop
//   - Every transition method checks, in this exact sequence: actor role,
//     source state, payload completeness
//   - For every item, 0 <= qtyApproved <= qtyRequested after every
//     approval and re-approval
//   - A transition either fully applies (state, substage, timestamp) or
//     leaves the aggregate untouched
//   - Can only be created through NewOrder or RestoreOrder
//
// Each successful transition returns a TransitionOutcome which, once the new
// state is committed, drives notification fan-out.
type Order struct {
	id          kernel.UUID
	number      string
	branchID    kernel.UUID
	requesterID kernel.UUID

	status   Status
	substage Substage
	items    []*Item

	remarks      string
	managerReply string
	trackingID   string
	trackingLink string

	stamps  Stamps
	version int

	isConstructed bool
}

// NewNumber derives a human-readable order number from the order's UUID.
func NewNumber(id kernel.UUID) string {
	return "REQ-" + strings.ToUpper(id.String()[:8])
}

// NewOrder creates a new Order in Requested status. This is the creation edge
// of the lifecycle graph and is only available to branch users; the acting
// branch user becomes the order's requester.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - number: Human-readable order number (must not be empty)
//   - branchID: The branch the stock is requested for
//   - requester: The acting branch user
//   - items: At least one order line, created atomically with the order
//   - remarks: Optional free-text note from the requester
//
// Returns the order together with the creation TransitionOutcome used to
// notify the manager, or a validation error.
func NewOrder(
	id kernel.UUID,
	number string,
	branchID kernel.UUID,
	requester Actor,
	items []*Item,
	remarks string,
) (*Order, TransitionOutcome, error) {
	if err := errors.Join(id.Validate(), branchID.Validate(), requester.Role.Validate(), requester.ID.Validate()); err != nil {
		return nil, TransitionOutcome{}, err
	}
	if !EdgeRequest.IsAllowedFor(requester.Role) {
		return nil, TransitionOutcome{}, errs.NewForbiddenTransitionError(string(EdgeRequest), requester.Role.String())
	}
	if number == "" {
		return nil, TransitionOutcome{}, errs.NewValueIsRequiredError("number")
	}
	if len(items) == 0 {
		return nil, TransitionOutcome{}, errs.NewValidationError("items")
	}

	seen := make(map[kernel.UUID]bool, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, TransitionOutcome{}, err
		}
		if seen[item.ID()] {
			return nil, TransitionOutcome{}, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("duplicate item %s", item.ID()))
		}
		seen[item.ID()] = true
	}

	now := time.Now().UTC()
	o := &Order{
		id:            id,
		number:        number,
		branchID:      branchID,
		requesterID:   requester.ID,
		status:        StatusRequested,
		substage:      SubstageNone,
		items:         items,
		remarks:       remarks,
		stamps:        Stamps{RequestedAt: now},
		version:       1,
		isConstructed: true,
	}

	return o, o.outcomeFor(EdgeRequest, StatusUnknown, requester, now), nil
}

// RestoreOrder reconstructs an order from persistence. All state is validated
// but no creation-time side effects run and no outcome is produced.
func RestoreOrder(
	id kernel.UUID,
	number string,
	branchID kernel.UUID,
	requesterID kernel.UUID,
	status Status,
	substage Substage,
	items []*Item,
	remarks, managerReply, trackingID, trackingLink string,
	stamps Stamps,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		branchID.Validate(),
		requesterID.Validate(),
		status.Validate(),
		substage.Validate(),
	); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if (status == StatusArranging) != (substage != SubstageNone) {
		return nil, errs.NewValueIsInvalidErrorWithCause("substage",
			fmt.Errorf("%s does not fit status %s", substage, status))
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("version")
	}

	return &Order{
		id:            id,
		number:        number,
		branchID:      branchID,
		requesterID:   requesterID,
		status:        status,
		substage:      substage,
		items:         items,
		remarks:       remarks,
		managerReply:  managerReply,
		trackingID:    trackingID,
		trackingLink:  trackingLink,
		stamps:        stamps,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// BranchID returns the branch the stock is requested for.
func (o *Order) BranchID() kernel.UUID {
	return o.branchID
}

// RequesterID returns the branch user who created the order.
func (o *Order) RequesterID() kernel.UUID {
	return o.requesterID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Substage returns the current arranging substage.
// Returns SubstageNone in every status other than Arranging.
func (o *Order) Substage() Substage {
	return o.substage
}

// Items returns the order lines.
func (o *Order) Items() []*Item {
	return o.items
}

// Remarks returns the requester's free-text note.
func (o *Order) Remarks() string {
	return o.remarks
}

// ManagerReply returns the manager's latest negotiation reply.
func (o *Order) ManagerReply() string {
	return o.managerReply
}

// TrackingID returns the transit tracking identifier, set at dispatch.
func (o *Order) TrackingID() string {
	return o.trackingID
}

// TrackingLink returns the transit tracking link, set at dispatch.
func (o *Order) TrackingLink() string {
	return o.trackingLink
}

// Stamps returns the timestamps of the stages reached so far.
func (o *Order) Stamps() Stamps {
	return o.stamps
}

// Version returns the optimistic concurrency version of the aggregate.
// The repository's conditional write guards on it, giving every order the
// single-writer discipline the lifecycle requires.
func (o *Order) Version() int {
	return o.version
}

// TotalItems returns the number of order lines.
func (o *Order) TotalItems() int {
	return len(o.items)
}

// TotalValue returns the sum of approved line totals in minor currency units.
// Unapproved lines contribute 0.
func (o *Order) TotalValue() int64 {
	var total int64
	for _, item := range o.items {
		total += item.TotalPrice()
	}
	return total
}

// PermitsMessaging reports whether issue messages may currently be appended.
func (o *Order) PermitsMessaging() bool {
	return o.status.PermitsMessaging()
}

// Approve moves the order from Requested to ManagerApproved, setting the
// approved quantity of every item.
//
// Rules enforced:
//   - Only managers and admins may approve
//   - The order must be in Requested status
//   - Every item must receive a quantity within [0, qtyRequested]
//
// All approvals are validated before any is applied, so a rejected request
// leaves the aggregate untouched.
func (o *Order) Approve(actor Actor, approvals []QuantityApproval) (TransitionOutcome, error) {
	if err := o.guardEdge(EdgeApprove, actor, StatusRequested); err != nil {
		return TransitionOutcome{}, err
	}
	if err := o.checkApprovals(approvals, true); err != nil {
		return TransitionOutcome{}, err
	}

	o.applyApprovals(approvals)
	from := o.status
	o.status = StatusManagerApproved
	now := time.Now().UTC()
	if o.stamps.ApprovedAt == nil {
		o.stamps.ApprovedAt = &now
	}

	return o.outcomeFor(EdgeApprove, from, actor, now), nil
}

// Confirm moves the order from ManagerApproved to Confirmed. Only the
// original requester may confirm. Confirming marks every item resolved and
// closes the current negotiation round; the issue ledger is retained.
func (o *Order) Confirm(actor Actor) (TransitionOutcome, error) {
	if err := o.guardRequesterEdge(EdgeConfirm, actor, StatusManagerApproved); err != nil {
		return TransitionOutcome{}, err
	}

	from := o.status
	o.status = StatusConfirmed
	now := time.Now().UTC()
	o.stamps.ConfirmedAt = &now
	for _, item := range o.items {
		item.markResolved()
	}

	return o.outcomeFor(EdgeConfirm, from, actor, now), nil
}

// RaiseIssue moves the order from ManagerApproved to IssueRaised, returning
// it to manager attention. Only the original requester may raise an issue,
// and a non-empty message is required; the caller appends the message to the
// issue ledger within the same commit.
func (o *Order) RaiseIssue(actor Actor, message string) (TransitionOutcome, error) {
	if err := o.guardRequesterEdge(EdgeRaiseIssue, actor, StatusManagerApproved); err != nil {
		return TransitionOutcome{}, err
	}
	if strings.TrimSpace(message) == "" {
		return TransitionOutcome{}, errs.NewValidationError("message")
	}

	from := o.status
	o.status = StatusIssueRaised
	now := time.Now().UTC()

	return o.outcomeFor(EdgeRaiseIssue, from, actor, now), nil
}

// Reply moves the order from IssueRaised back to ManagerApproved. A non-empty
// manager reply is required; the manager may also revise approved quantities
// of individual items. Each revision is bounded by the item's original
// requested quantity and clears the item's resolved flag, so the requester
// sees it as pending re-confirmation. The negotiation loop has no iteration
// cap: it stays open until the requester confirms.
func (o *Order) Reply(actor Actor, reply string, revisions []QuantityApproval) (TransitionOutcome, error) {
	if err := o.guardEdge(EdgeReply, actor, StatusIssueRaised); err != nil {
		return TransitionOutcome{}, err
	}
	if strings.TrimSpace(reply) == "" {
		return TransitionOutcome{}, errs.NewValidationError("managerReply")
	}
	if err := o.checkApprovals(revisions, false); err != nil {
		return TransitionOutcome{}, err
	}

	o.applyApprovals(revisions)
	o.managerReply = reply
	from := o.status
	o.status = StatusManagerApproved
	now := time.Now().UTC()

	return o.outcomeFor(EdgeReply, from, actor, now), nil
}

// SetArrangingStage enters the Arranging status or advances its substage.
// Managers and admins may move a Confirmed order into any arranging substage
// or advance the substage of an Arranging order; substages never move
// backwards. Reaching Arranged or SentForPackaging requires proof-of-stage
// media (hasMedia).
func (o *Order) SetArrangingStage(actor Actor, target Substage, hasMedia bool) (TransitionOutcome, error) {
	edge, ok := arrangingEdges()[target]
	if !ok {
		return TransitionOutcome{}, errs.NewValueIsInvalidErrorWithCause("substage",
			fmt.Errorf("%s is not an arranging substage", target))
	}
	if err := o.guardEdge(edge, actor, StatusConfirmed, StatusArranging); err != nil {
		return TransitionOutcome{}, err
	}
	if o.status == StatusArranging && target <= o.substage {
		return TransitionOutcome{}, errs.NewInvalidStateError(string(edge), o.describeState())
	}
	if target.requiresMedia() && !hasMedia {
		return TransitionOutcome{}, errs.NewValidationError("stageMedia")
	}

	from := o.status
	o.status = StatusArranging
	o.substage = target
	now := time.Now().UTC()

	return o.outcomeFor(edge, from, actor, now), nil
}

// StartPackaging moves the order to UnderPackaging. The order must have been
// sent for packaging, and proof-of-stage media is required.
func (o *Order) StartPackaging(actor Actor, hasMedia bool) (TransitionOutcome, error) {
	if err := o.guardEdge(EdgeStartPackaging, actor, StatusArranging); err != nil {
		return TransitionOutcome{}, err
	}
	if o.substage != SubstageSentForPackaging {
		return TransitionOutcome{}, errs.NewInvalidStateError(string(EdgeStartPackaging), o.describeState())
	}
	if !hasMedia {
		return TransitionOutcome{}, errs.NewValidationError("packagingMedia")
	}

	from := o.status
	o.status = StatusUnderPackaging
	o.substage = SubstageNone
	now := time.Now().UTC()

	return o.outcomeFor(EdgeStartPackaging, from, actor, now), nil
}

// CompletePackaging moves the order from UnderPackaging to
// PackagingCompleted. Proof-of-stage media is required.
func (o *Order) CompletePackaging(actor Actor, hasMedia bool) (TransitionOutcome, error) {
	if err := o.guardEdge(EdgeCompletePackaging, actor, StatusUnderPackaging); err != nil {
		return TransitionOutcome{}, err
	}
	if !hasMedia {
		return TransitionOutcome{}, errs.NewValidationError("packagingMedia")
	}

	from := o.status
	o.status = StatusPackagingCompleted
	now := time.Now().UTC()

	return o.outcomeFor(EdgeCompletePackaging, from, actor, now), nil
}

// Dispatch moves the order from PackagingCompleted to InTransit.
// A tracking identifier, a tracking link, and transit media are all
// mandatory; the returned ValidationError names every missing field so the
// caller can re-prompt for exactly what is absent.
func (o *Order) Dispatch(actor Actor, trackingID, trackingLink string, hasMedia bool) (TransitionOutcome, error) {
	if err := o.guardEdge(EdgeDispatch, actor, StatusPackagingCompleted); err != nil {
		return TransitionOutcome{}, err
	}

	var missing []string
	if strings.TrimSpace(trackingID) == "" {
		missing = append(missing, "trackingId")
	}
	if strings.TrimSpace(trackingLink) == "" {
		missing = append(missing, "trackingLink")
	}
	if !hasMedia {
		missing = append(missing, "transitMedia")
	}
	if len(missing) > 0 {
		return TransitionOutcome{}, errs.NewValidationError(missing...)
	}

	o.trackingID = trackingID
	o.trackingLink = trackingLink
	from := o.status
	o.status = StatusInTransit
	now := time.Now().UTC()
	o.stamps.DispatchedAt = &now

	return o.outcomeFor(EdgeDispatch, from, actor, now), nil
}

// ConfirmReceived moves the order from InTransit to Received. Only the
// original requester may confirm receipt, and receipt media is required.
// Item-level issue threads stay open afterwards for delivery discrepancies.
func (o *Order) ConfirmReceived(actor Actor, hasMedia bool) (TransitionOutcome, error) {
	if err := o.guardRequesterEdge(EdgeConfirmReceived, actor, StatusInTransit); err != nil {
		return TransitionOutcome{}, err
	}
	if !hasMedia {
		return TransitionOutcome{}, errs.NewValidationError("receiptMedia")
	}

	from := o.status
	o.status = StatusReceived
	now := time.Now().UTC()
	o.stamps.ReceivedAt = &now

	return o.outcomeFor(EdgeConfirmReceived, from, actor, now), nil
}

// Close moves the order from Received to Closed, the terminal state.
// Available to managers, admins, and the system actor used by the
// automatic-close job.
func (o *Order) Close(actor Actor) (TransitionOutcome, error) {
	if err := o.guardEdge(EdgeClose, actor, StatusReceived); err != nil {
		return TransitionOutcome{}, err
	}

	from := o.status
	o.status = StatusClosed
	now := time.Now().UTC()
	o.stamps.ClosedAt = &now

	return o.outcomeFor(EdgeClose, from, actor, now), nil
}

// arrangingEdges maps each arranging substage to its lifecycle edge.
func arrangingEdges() map[Substage]Edge {
	return map[Substage]Edge{
		SubstageArrangingStarted: EdgeArrangingStarted,
		SubstageArranged:         EdgeArranged,
		SubstageSentForPackaging: EdgeSentForPackaging,
	}
}

// guardEdge rejects the transition if the actor's role is not among the
// allowed initiators for the edge, or if the current status is not a valid
// source. The role is checked before the state, per the transition contract.
func (o *Order) guardEdge(edge Edge, actor Actor, sources ...Status) error {
	if err := actor.Role.Validate(); err != nil {
		return err
	}
	if !edge.IsAllowedFor(actor.Role) {
		return errs.NewForbiddenTransitionError(string(edge), actor.Role.String())
	}
	for _, s := range sources {
		if o.status == s {
			return nil
		}
	}
	return errs.NewInvalidStateError(string(edge), o.describeState())
}

// guardRequesterEdge is guardEdge plus the original-requester identity check
// used by the edges reserved for the branch user who created the order.
func (o *Order) guardRequesterEdge(edge Edge, actor Actor, sources ...Status) error {
	if err := actor.Role.Validate(); err != nil {
		return err
	}
	if !edge.IsAllowedFor(actor.Role) || !actor.ID.IsEqual(o.requesterID) {
		return errs.NewForbiddenTransitionError(string(edge), actor.Role.String())
	}
	for _, s := range sources {
		if o.status == s {
			return nil
		}
	}
	return errs.NewInvalidStateError(string(edge), o.describeState())
}

// checkApprovals validates a set of quantity approvals without applying them.
// When complete is true, every item of the order must be covered.
func (o *Order) checkApprovals(approvals []QuantityApproval, complete bool) error {
	if complete && len(approvals) == 0 {
		return errs.NewValidationError("approvals")
	}

	covered := make(map[kernel.UUID]bool, len(approvals))
	for _, a := range approvals {
		item := o.itemByID(a.ItemID)
		if item == nil {
			return errs.NewValidationErrorWithCause(
				errs.NewObjectNotFoundError("orderItem", a.ItemID.String()), "itemId")
		}
		if a.Qty < 0 || a.Qty > item.QtyRequested() {
			return errs.NewValidationErrorWithCause(
				errs.NewValueIsOutOfRangeError("qtyApproved", a.Qty, 0, item.QtyRequested()), "qtyApproved")
		}
		covered[a.ItemID] = true
	}

	if complete {
		for _, item := range o.items {
			if !covered[item.ID()] {
				return errs.NewValidationErrorWithCause(
					fmt.Errorf("item %s has no approved quantity", item.ID()), "approvals")
			}
		}
	}

	return nil
}

// applyApprovals sets approved quantities already validated by checkApprovals.
func (o *Order) applyApprovals(approvals []QuantityApproval) {
	for _, a := range approvals {
		// checkApprovals guarantees the item exists and the quantity is in range.
		_ = o.itemByID(a.ItemID).setQtyApproved(a.Qty)
	}
}

// itemByID returns the order line with the given id, or nil.
func (o *Order) itemByID(id kernel.UUID) *Item {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item
		}
	}
	return nil
}

// describeState renders the current status (and substage, while arranging)
// for error messages.
func (o *Order) describeState() string {
	if o.status == StatusArranging {
		return fmt.Sprintf("%s(%s)", o.status, o.substage)
	}
	return o.status.String()
}

func (o *Order) outcomeFor(edge Edge, from Status, actor Actor, at time.Time) TransitionOutcome {
	return TransitionOutcome{
		Edge:        edge,
		OrderID:     o.id,
		OrderNumber: o.number,
		From:        from,
		To:          o.status,
		Substage:    o.substage,
		ActorID:     actor.ID,
		ActorRole:   actor.Role,
		OccurredAt:  at,
	}
}
