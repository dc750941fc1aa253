package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a single line of an order: one product position with a requested
// quantity and, after approval, an approved quantity.
//
// Item invariants:
//   - qtyRequested is positive and immutable after creation
//   - qtyApproved is nil until the manager approves; once set,
//     0 <= qtyApproved <= qtyRequested always holds
//   - items are created atomically with their order and never deleted,
//     only amended
//
// The resolved flag tracks the negotiation loop: it is cleared whenever the
// manager revises the approved quantity, so the requester sees the item as
// pending re-confirmation, and set when the requester confirms the order.
type Item struct {
	id           kernel.UUID
	qtyRequested int
	qtyApproved  *int
	unitPrice    int64
	resolved     bool

	isConstructed bool
}

// NewItem creates a new order line with validation.
//
// Parameters:
//   - id: Unique identifier for the item (must be valid UUID)
//   - qtyRequested: Requested quantity (must be positive)
//   - unitPrice: Price per unit in minor currency units (must not be negative)
//
// The item starts with no approved quantity and unresolved.
func NewItem(id kernel.UUID, qtyRequested int, unitPrice int64) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if qtyRequested <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("qtyRequested",
			fmt.Errorf("%d is not greater than 0", qtyRequested))
	}
	if unitPrice < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d is negative", unitPrice))
	}

	return &Item{
		id:            id,
		qtyRequested:  qtyRequested,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs an item from persistence without re-running
// creation-time side effects. The approved quantity is still bounds-checked
// to protect against corrupted rows.
func RestoreItem(id kernel.UUID, qtyRequested int, qtyApproved *int, unitPrice int64, resolved bool) (*Item, error) {
	item, err := NewItem(id, qtyRequested, unitPrice)
	if err != nil {
		return nil, err
	}
	if qtyApproved != nil {
		if setErr := item.setQtyApproved(*qtyApproved); setErr != nil {
			return nil, setErr
		}
	}
	item.resolved = resolved
	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// QtyRequested returns the originally requested quantity.
func (i *Item) QtyRequested() int {
	return i.qtyRequested
}

// QtyApproved returns the approved quantity, or nil if the manager has not
// approved this item yet.
func (i *Item) QtyApproved() *int {
	return i.qtyApproved
}

// UnitPrice returns the price per unit in minor currency units.
func (i *Item) UnitPrice() int64 {
	return i.unitPrice
}

// TotalPrice returns qtyApproved multiplied by unitPrice.
// Returns 0 while the item is unapproved.
func (i *Item) TotalPrice() int64 {
	if i.qtyApproved == nil {
		return 0
	}
	return int64(*i.qtyApproved) * i.unitPrice
}

// IsResolved reports whether the requester has confirmed the current
// approved quantity of this item.
func (i *Item) IsResolved() bool {
	return i.resolved
}

// setQtyApproved sets the approved quantity, enforcing
// 0 <= qtyApproved <= qtyRequested. A change of proposal clears the
// resolved flag so the requester sees the item as pending re-confirmation.
func (i *Item) setQtyApproved(qty int) error {
	if qty < 0 || qty > i.qtyRequested {
		return errs.NewValueIsOutOfRangeError("qtyApproved", qty, 0, i.qtyRequested)
	}
	i.qtyApproved = &qty
	i.resolved = false
	return nil
}

// markResolved records the requester's acceptance of the approved quantity.
func (i *Item) markResolved() {
	i.resolved = true
}
