// Package order provides domain entities and business logic for order
// fulfillment. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - StatusChange: An append-only history record of a single transition
//   - Actor: A value object identifying who performed a transition
//
// Key business rules:
//   - Orders follow the workflow ReadyForPickup -> Collected -> QCPassed ->
//     InTransit -> Delivered -> Completed, with the branch Collected ->
//     QCFailed -> ReturningToGarage when quality inspection fails
//   - A driver can only be dispatched to the customer once inspection passed
//   - Every status transition produces a StatusChange record, persisted in the
//     same transaction as the order itself
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
