// Package errs provides standardized error types for the kitchen board
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidStateError: For operations illegal in the current lifecycle state
//   - InvalidTransitionError: For lifecycle edges that do not exist
//   - StorageUnavailableError: For transient storage failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach makes error classification uniform across the
// application: the caller-facing layer maps each sentinel to a stable HTTP
// status and never exposes raw storage error text to clients.
package errs
