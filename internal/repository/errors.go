// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrConflict signals that a delete cannot proceed because
// dependent records exist (a flight with bookings, an airline with
// flights), while the per-entity not-found sentinels map to 404
// responses. Ledger-facing errors (flight/booking not found,
// conflict on the availability counter) live in the ledger package;
// the flight and booking repositories return those so the ledger
// can classify failures without importing this package's sentinels.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a route that still has flights. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
