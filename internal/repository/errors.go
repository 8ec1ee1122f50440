// Package repository implements all database access for the
// registration platform.  Repositories are thin structs over *sql.DB;
// statements that must run under the event row lock are exposed as
// ...Tx variants taking a caller-owned transaction.  Sentinel errors
// defined here let handlers distinguish failure scenarios without
// inspecting SQL errors.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else, such as cancelling another user's
// registration.  Handlers should translate this into an HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// the resource's current state, such as cancelling a registration that
// is already cancelled or an illegal event status transition.
// Handlers should translate this into an HTTP 409.
var ErrConflict = errors.New("conflict")
