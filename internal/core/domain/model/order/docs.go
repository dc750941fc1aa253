// Package order provides domain entities and business logic for the stock
// requisition lifecycle. It implements the Order aggregate root with
// role-aware state transitions and per-item quantity negotiation.
//
// The package includes:
//   - Order: The aggregate root that manages identity, items, and lifecycle
//   - Item: An order line with requested and approved quantities
//   - Status / Substage: State machines for the macro status and the
//     arranging substages
//   - Role / Actor: The initiating identity checked on every edge
//   - Edge / TransitionOutcome: Stable transition identifiers consumed by
//     the notification fan-out
//
// Key business rules:
//   - Every transition is validated against actor role, source state, and
//     payload completeness, in that sequence
//   - Approved quantities always satisfy 0 <= qtyApproved <= qtyRequested
//   - The ManagerApproved/IssueRaised negotiation loop is the only backward
//     path and stays open until the requester confirms
//   - Dispatch requires tracking details; the arranging, packaging, transit,
//     and receipt stages require proof-of-stage media
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
