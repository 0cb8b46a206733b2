// Package ledger implements the booking ledger: seat-count
// validation, deterministic seat assignment and the availability
// bookkeeping that keeps a flight's cached seat counter consistent
// with its set of active bookings. These sentinel values let the
// handler layer translate failures into HTTP statuses without
// string matching. Errors carrying extra detail (such as the
// remaining seat count) wrap a sentinel with fmt.Errorf("%w: ...")
// so errors.Is still classifies them.
package ledger

import "errors"

// ErrFlightNotFound indicates the referenced flight does not exist.
var ErrFlightNotFound = errors.New("flight not found")

// ErrBookingNotFound indicates the referenced booking does not
// exist, including a booking that was already cancelled.
var ErrBookingNotFound = errors.New("booking not found")

// ErrInsufficientCapacity indicates the requested seat count exceeds
// the flight's remaining seats. Wrapped messages include the number
// of seats actually left. Deterministic: retrying cannot succeed
// until a cancellation frees seats.
var ErrInsufficientCapacity = errors.New("insufficient capacity")

// ErrInvalidInput indicates a non-positive seat count or a missing
// identifier.
var ErrInvalidInput = errors.New("invalid input")

// ErrPermissionDenied indicates a non-admin caller attempted a
// privileged operation such as cancelling a booking.
var ErrPermissionDenied = errors.New("permission denied")

// ErrConflict indicates a concurrent modification was detected while
// committing seat state. Callers may retry.
var ErrConflict = errors.New("conflict")
