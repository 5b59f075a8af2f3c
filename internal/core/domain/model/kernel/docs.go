// Package kernel provides shared value objects used across the kitchen board
// domain model. These are the building blocks the order aggregate is
// composed of.
//
// The package includes:
//   - UUID: A wrapper around github.com/google/uuid providing validation
//     and immutability for entity identifiers
//   - Money: A positive decimal amount in a single ISO currency, used for
//     item unit prices
//
// All value objects follow the same construct-and-validate pattern: the zero
// value is invalid, construction goes through a factory function that
// enforces invariants, and Validate() detects values that bypassed it.
package kernel
