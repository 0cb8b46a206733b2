// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// Event types carried in BookingEvent.Type.
const (
    EventBookingCreated   = "booking.created"
    EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published when a booking is created or cancelled.
// It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary
// database.
type BookingEvent struct {
    Type            string   `json:"type"`
    TicketCode      string   `json:"ticket_code"`
    FlightID        uint64   `json:"flight_id"`
    FlightNumber    string   `json:"flight_number"`
    Origin          string   `json:"origin"`
    Destination     string   `json:"destination"`
    SeatLabels      []string `json:"seats"`
    SeatCount       int      `json:"seat_count"`
    TotalPriceCents uint32   `json:"total_price_cents"`
    UserID          uint64   `json:"user_id"`
    OccurredAt      string   `json:"occurred_at"`
}

// Now returns the timestamp format events carry.
func Now() string {
    return time.Now().UTC().Format(time.RFC3339)
}
