package ledger

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/airtik/flight-reservation/internal/model"
    "github.com/airtik/flight-reservation/internal/utils"
)

// FlightStore is the flight record store the ledger reads and
// updates. Get returns ErrFlightNotFound when the flight does not
// exist. UpdateAvailable performs a compare-and-set: it moves the
// available counter from observed to next and returns ErrConflict
// when the stored value no longer equals observed, so a writer that
// bypassed the ledger's flight lock still surfaces instead of
// silently corrupting the counter.
type FlightStore interface {
    Get(ctx context.Context, id uint64) (*model.Flight, error)
    UpdateAvailable(ctx context.Context, id uint64, observed, next int) error
}

// BookingStore is the ledger of seat assignments. Get and Delete
// return ErrBookingNotFound when the booking does not exist.
// FindActiveByFlight returns every active (non-cancelled) booking
// for a flight; cancelled bookings are deleted rows and never
// appear.
type BookingStore interface {
    Create(ctx context.Context, b *model.Booking) error
    Get(ctx context.Context, id uint64) (*model.Booking, error)
    FindActiveByFlight(ctx context.Context, flightID uint64) ([]model.Booking, error)
    Delete(ctx context.Context, id uint64) error
    UpdatePaymentStatus(ctx context.Context, id uint64, status string) error
}

// maxCreateRetries bounds internal retries when a concurrent
// modification is detected during the availability compare-and-set.
const maxCreateRetries = 3

// Ledger validates seat counts, assigns seat labels and keeps each
// flight's available counter equal to total minus the sum of active
// bookings' seat counts. The seat-pool recompute and the subsequent
// persistence form a critical section per flight: a mutex keyed by
// flight ID serializes creation and cancellation on the same flight
// while operations on different flights proceed in parallel. Seat
// selection is a pure in-memory computation, so the lock hold time
// is short and bounded.
type Ledger struct {
    flights  FlightStore
    bookings BookingStore
    locks    sync.Map // flight ID -> *sync.Mutex
}

// New returns a Ledger over the given stores.
func New(flights FlightStore, bookings BookingStore) *Ledger {
    if flights == nil || bookings == nil {
        panic("nil store passed to ledger.New")
    }
    return &Ledger{flights: flights, bookings: bookings}
}

func (l *Ledger) flightLock(flightID uint64) *sync.Mutex {
    v, _ := l.locks.LoadOrStore(flightID, &sync.Mutex{})
    return v.(*sync.Mutex)
}

// CreateBooking books requestedSeats seats on a flight for a user.
// Validation order:
//  1. the flight must exist;
//  2. fast pre-check against the cached available counter;
//  3. the authoritative taken set is recomputed as the union of
//     seat labels across all active bookings for the flight;
//  4. the candidate pool is Seat-1..Seat-N minus the taken set, in
//     ascending seat-number order;
//  5. the pool must hold at least requestedSeats labels;
//  6. the first requestedSeats labels are assigned, lowest numbers
//     first, so assignment is stable and reproducible.
// The total price is requestedSeats times the flight price and the
// ticket code is generated once here. After the booking row is
// persisted the available counter is compare-and-set to total minus
// the new active sum; the recomputed set is authoritative, so a
// counter that had drifted from the ledger (e.g. after a partial
// failure) is reconciled on the next successful booking. A CAS
// conflict rolls the booking back and the whole attempt is retried
// a bounded number of times before ErrConflict is reported.
func (l *Ledger) CreateBooking(ctx context.Context, flightID, userID uint64, requestedSeats int) (*model.Booking, error) {
    if requestedSeats <= 0 {
        return nil, fmt.Errorf("%w: seat count must be positive", ErrInvalidInput)
    }
    if flightID == 0 || userID == 0 {
        return nil, fmt.Errorf("%w: flight and user are required", ErrInvalidInput)
    }
    var lastErr error
    for attempt := 0; attempt < maxCreateRetries; attempt++ {
        b, err := l.createOnce(ctx, flightID, userID, requestedSeats)
        if err == nil {
            return b, nil
        }
        if !errors.Is(err, ErrConflict) {
            return nil, err
        }
        lastErr = err
    }
    return nil, lastErr
}

func (l *Ledger) createOnce(ctx context.Context, flightID, userID uint64, requestedSeats int) (*model.Booking, error) {
    mu := l.flightLock(flightID)
    mu.Lock()
    defer mu.Unlock()

    flight, err := l.flights.Get(ctx, flightID)
    if err != nil {
        return nil, err
    }
    // Fast pre-check on the cached counter before touching the
    // booking ledger.
    if requestedSeats > flight.AvailableSeats {
        return nil, fmt.Errorf("%w: only %d seats are available", ErrInsufficientCapacity, flight.AvailableSeats)
    }

    active, err := l.bookings.FindActiveByFlight(ctx, flightID)
    if err != nil {
        return nil, err
    }
    taken := make(map[string]struct{})
    for _, b := range active {
        for _, label := range b.SeatLabels {
            taken[label] = struct{}{}
        }
    }
    // Candidate pool in ascending seat-number order; iterating
    // 1..total keeps selection deterministic.
    pool := make([]string, 0, flight.TotalSeats-len(taken))
    for i := 1; i <= flight.TotalSeats; i++ {
        label := SeatLabel(i)
        if _, booked := taken[label]; !booked {
            pool = append(pool, label)
        }
    }
    if len(pool) < requestedSeats {
        return nil, fmt.Errorf("%w: only %d unbooked seats left", ErrInsufficientCapacity, len(pool))
    }

    booking := &model.Booking{
        TicketCode:      utils.NewTicketCode(),
        FlightID:        flightID,
        UserID:          userID,
        SeatCount:       requestedSeats,
        SeatLabels:      append([]string(nil), pool[:requestedSeats]...),
        TotalPriceCents: uint32(requestedSeats) * flight.PriceCents,
        PaymentStatus:   model.PaymentCompleted,
        CreatedAt:       time.Now().UTC(),
    }
    if err := l.bookings.Create(ctx, booking); err != nil {
        return nil, err
    }
    // The recomputed taken set is the source of truth for the
    // counter, not the cached value we pre-checked against.
    next := flight.TotalSeats - len(taken) - requestedSeats
    if err := l.flights.UpdateAvailable(ctx, flightID, flight.AvailableSeats, next); err != nil {
        // Never leave a booking whose seats were not deducted from
        // availability: undo the insert before reporting.
        _ = l.bookings.Delete(ctx, booking.ID)
        return nil, err
    }
    return booking, nil
}

// CancelBooking removes a booking and releases exactly its seat
// count back to the flight's available counter. Only admins may
// cancel. Repeating the call for an already-cancelled booking fails
// with ErrBookingNotFound rather than silently succeeding. Release
// is serialized against concurrent creation on the same flight by
// the flight lock; the counter is clamped at the flight total so a
// drifted counter can never exceed capacity.
func (l *Ledger) CancelBooking(ctx context.Context, bookingID uint64, requesterIsAdmin bool) (*model.Booking, error) {
    if !requesterIsAdmin {
        return nil, fmt.Errorf("%w: only admin can cancel a booking", ErrPermissionDenied)
    }
    if bookingID == 0 {
        return nil, fmt.Errorf("%w: booking is required", ErrInvalidInput)
    }
    // Resolve the flight before locking, then re-read under the lock
    // in case a concurrent cancel won the race.
    peek, err := l.bookings.Get(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    mu := l.flightLock(peek.FlightID)
    mu.Lock()
    defer mu.Unlock()

    booking, err := l.bookings.Get(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    if err := l.bookings.Delete(ctx, bookingID); err != nil {
        return nil, err
    }
    flight, err := l.flights.Get(ctx, booking.FlightID)
    if err != nil {
        return nil, err
    }
    next := flight.AvailableSeats + booking.SeatCount
    if next > flight.TotalSeats {
        next = flight.TotalSeats
    }
    if err := l.flights.UpdateAvailable(ctx, booking.FlightID, flight.AvailableSeats, next); err != nil {
        return nil, err
    }
    return booking, nil
}

// SetPaymentStatus moves a booking's payment state. The transition
// is independent of seat allocation and touches neither seat labels
// nor the availability counter.
func (l *Ledger) SetPaymentStatus(ctx context.Context, bookingID uint64, status string) (*model.Booking, error) {
    switch status {
    case model.PaymentPending, model.PaymentCompleted, model.PaymentFailed:
    default:
        return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
    }
    if err := l.bookings.UpdatePaymentStatus(ctx, bookingID, status); err != nil {
        return nil, err
    }
    return l.bookings.Get(ctx, bookingID)
}

// SeatLabel returns the label for the n-th seat of a flight,
// matching the ticket format shown to passengers.
func SeatLabel(n int) string {
    return fmt.Sprintf("Seat-%d", n)
}
