// Package guard provides ConstructorGuard, a marker that lets value objects and
// aggregates detect whether they were built through their validating constructor
// or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not usable.
// Constructors set it with NewConstructorGuard; Validate methods check it.
//
// Example:
//
//	var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
//
//	type Rider struct {
//	    name  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (r *Rider) Validate() error {
//	    return r.guard.Validate(ErrRiderIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. For a zero value it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
