package model

import "time"

// Payment status values for a booking. Payment state is orthogonal
// to seat allocation: transitions never touch seat labels or the
// flight's availability counter.
const (
    PaymentPending   = "PENDING"
    PaymentCompleted = "COMPLETED"
    PaymentFailed    = "FAILED"
)

// Booking records seats sold on one flight to one user. Seat labels
// are assigned exactly once, at creation, and are disjoint from the
// labels of every other active booking on the same flight. The
// ticket code is a human-facing identifier generated at creation
// and never changed. TotalPriceCents is fixed at seat count times
// the flight price at the time of booking.
//
// Fields:
//  ID              – primary key identifier.
//  TicketCode      – unique opaque code, "TICKET-XXXXXXXX".
//  FlightID        – flight being booked.
//  UserID          – user who made the booking.
//  SeatCount       – number of seats booked (positive).
//  SeatLabels      – exactly SeatCount labels, e.g. ["Seat-1","Seat-2"].
//  TotalPriceCents – immutable total in cents.
//  PaymentStatus   – PENDING, COMPLETED or FAILED.
//  CreatedAt       – creation timestamp.
type Booking struct {
    ID              uint64    // bookings.id
    TicketCode      string    // bookings.ticket_code
    FlightID        uint64    // bookings.flight_id
    UserID          uint64    // bookings.user_id
    SeatCount       int       // bookings.seat_count
    SeatLabels      []string  // bookings.seat_labels (JSON array)
    TotalPriceCents uint32    // bookings.total_price_cents
    PaymentStatus   string    // bookings.payment_status
    CreatedAt       time.Time // bookings.created_at
}
