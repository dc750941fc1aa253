// Package issue contains the negotiation ledger of an order.
//
// While an order sits in the approval loop, the requester and the manager
// exchange messages about it. Every exchange is recorded as an immutable
// Message, either order-level or scoped to a single order line with an
// optional quantity proposal. The ledger is append-only; read back it forms
// a Thread ordered oldest first.
package issue
