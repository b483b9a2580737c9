package core

import (
	"errors"
)

// Sentinel errors for the core's semantic error taxonomy. Returned as plain
// errors (wrapped with %w where context helps), never panicked for
// user-reachable failures. Internal invariant violations that should never
// happen on valid input panic instead, since those are bugs, not recoverable
// conditions.
var (
	// ErrIO covers a persistence file that is missing, unreadable, or
	// malformed (wrong magic number or truncated size).
	ErrIO = errors.New("io error")
	// ErrParse covers malformed input surfaced from an external parsing
	// collaborator (e.g. a broken OBJ file handed to the mesh importer).
	ErrParse = errors.New("parse error")
	// ErrOversizedTexture is returned when a texture exceeds the atlas
	// page dimension on either axis.
	ErrOversizedTexture = errors.New("texture exceeds atlas page size")
	// ErrBudgetExhausted names a bounded structure needing to exceed its
	// fixed capacity. The mesh traversal stack in engine/trace does not
	// return it: a traversal-stack overflow there panics as an invariant
	// violation.
	ErrBudgetExhausted = errors.New("budget exhausted")
)
