// Package guard implements the constructor-guard pattern used by domain
// value objects and commands to detect zero-value instances that bypassed
// their designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// constructor. Embedding a zero-value guard (the result of direct struct
// initialization) fails validation, which keeps domain invariants intact
// when objects are reconstructed from untrusted sources.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the host object as properly
// constructed. Call it in every constructor of a guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the host object went through its constructor.
// It returns validationError for zero-value guards, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
