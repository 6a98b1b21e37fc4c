// Package errs provides standardized error types for the parcel tracking engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for four failure categories:
//   - Validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError, ObjectAlreadyExistsError
//   - ResourceUnavailableError: an operation aborted because a queue, pool or route was empty
//   - CapacityExceededError: a fixed-size structure refused an entry
//   - InvariantViolationError: the operation is not allowed in the current state
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Domain packages declare their own sentinels with these constructors, for example
//
//	var ErrQueueEmpty = errs.NewResourceUnavailableError("dispatch queue")
//
// so a caller can match either the specific failure (errors.Is(err, ErrQueueEmpty))
// or its category (errors.Is(err, errs.ErrResourceUnavailable)).
package errs
