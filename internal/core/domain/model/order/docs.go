// Package order provides the domain model of the kitchen board's order
// lifecycle. It implements the Order aggregate root with its line items and
// the state machine governing every mutation.
//
// The package includes:
//   - Order: The aggregate root owning identity, items, rider assignment,
//     photo evidence and timestamps
//   - Item: One line entry of an order (name, unit price, quantity)
//   - State: A state machine with an explicit forward edge table
//
// Key business rules:
//   - Orders are created PENDING with a non-empty item list and keep at
//     least one item at every observable point
//   - The lifecycle is PENDING -> IN_PROGRESS -> READY -> DELIVERED, one
//     edge at a time; DELIVERED -> PENDING exists only as explicit recovery
//   - Pickup is legal solely from READY and records the rider; recovery
//     clears it. A rider is set if and only if the order is DELIVERED
//   - The item set can be replaced only while PENDING or IN_PROGRESS
//
// Transition legality lives here in the aggregate rather than in callers,
// so no request path can deliver an unfinished order.
package order
