package model

import "time"

// Flight represents a scheduled flight on a route, flown by an
// airline. TotalSeats is fixed at creation; AvailableSeats is a
// cached counter kept consistent with the set of active bookings
// and must only be mutated through the booking ledger (or
// recomputed from bookings on flight edit). The invariant
// 0 <= AvailableSeats <= TotalSeats holds at all times.
//
// NOTE: DepartsAt is stored in DB format "2006-01-02 15:04:05" (UTC).
type Flight struct {
    ID             uint64    // flights.id
    AirlineID      uint64    // flights.airline_id
    RouteID        uint64    // flights.route_id
    FlightNumber   string    // flights.flight_number
    DepartsAt      string    // flights.departs_at ("YYYY-MM-DD HH:MM:SS" UTC)
    TotalSeats     int       // flights.total_seats
    AvailableSeats int       // flights.available_seats
    PriceCents     uint32    // flights.price_cents (per seat)
    CreatedAt      time.Time // flights.created_at
}
