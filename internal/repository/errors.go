// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the booking scheduler to distinguish between different
// failure scenarios. For example, ErrOverlap signals that an insert
// would violate the non-overlap invariant on a court's timeline, while
// ErrForbidden indicates that the current user does not own the record
// they are trying to change.
package repository

import "errors"

// ErrOverlap is returned when a booking or match cannot be created
// because a non-cancelled booking or match already occupies an
// overlapping window on the same court. Handlers should translate
// this into an HTTP 409 response.
var ErrOverlap = errors.New("time slot already booked")

// ErrForbidden is returned when the caller attempts an operation on a
// record they do not own. Handlers should translate this into an HTTP
// 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrCourtNotFound is returned when a referenced court does not exist.
var ErrCourtNotFound = errors.New("court not found")

// ErrStarted is returned when a cancellation targets a booking or
// match whose window has already begun. Handlers should translate
// this into an HTTP 409 response.
var ErrStarted = errors.New("already started")
