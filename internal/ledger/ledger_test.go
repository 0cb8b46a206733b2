package ledger

import (
    "context"
    "fmt"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/airtik/flight-reservation/internal/model"
)

// memFlightStore is an in-memory FlightStore whose UpdateAvailable
// performs the same compare-and-set contract as the SQL repository.
type memFlightStore struct {
    mu      sync.Mutex
    flights map[uint64]*model.Flight
}

func newMemFlightStore(flights ...*model.Flight) *memFlightStore {
    s := &memFlightStore{flights: make(map[uint64]*model.Flight)}
    for _, f := range flights {
        cp := *f
        s.flights[f.ID] = &cp
    }
    return s
}

func (s *memFlightStore) Get(_ context.Context, id uint64) (*model.Flight, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    f, ok := s.flights[id]
    if !ok {
        return nil, ErrFlightNotFound
    }
    cp := *f
    return &cp, nil
}

func (s *memFlightStore) UpdateAvailable(_ context.Context, id uint64, observed, next int) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    f, ok := s.flights[id]
    if !ok {
        return ErrFlightNotFound
    }
    if f.AvailableSeats != observed {
        return ErrConflict
    }
    f.AvailableSeats = next
    return nil
}

func (s *memFlightStore) available(id uint64) int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.flights[id].AvailableSeats
}

// memBookingStore is an in-memory BookingStore.
type memBookingStore struct {
    mu       sync.Mutex
    nextID   uint64
    bookings map[uint64]*model.Booking
}

func newMemBookingStore() *memBookingStore {
    return &memBookingStore{bookings: make(map[uint64]*model.Booking)}
}

func (s *memBookingStore) Create(_ context.Context, b *model.Booking) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.nextID++
    b.ID = s.nextID
    cp := *b
    s.bookings[b.ID] = &cp
    return nil
}

func (s *memBookingStore) Get(_ context.Context, id uint64) (*model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    b, ok := s.bookings[id]
    if !ok {
        return nil, ErrBookingNotFound
    }
    cp := *b
    return &cp, nil
}

func (s *memBookingStore) FindActiveByFlight(_ context.Context, flightID uint64) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]model.Booking, 0)
    for _, b := range s.bookings {
        if b.FlightID == flightID {
            out = append(out, *b)
        }
    }
    return out, nil
}

func (s *memBookingStore) Delete(_ context.Context, id uint64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.bookings[id]; !ok {
        return ErrBookingNotFound
    }
    delete(s.bookings, id)
    return nil
}

func (s *memBookingStore) UpdatePaymentStatus(_ context.Context, id uint64, status string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    b, ok := s.bookings[id]
    if !ok {
        return ErrBookingNotFound
    }
    b.PaymentStatus = status
    return nil
}

func newTestLedger(flight *model.Flight) (*Ledger, *memFlightStore, *memBookingStore) {
    fs := newMemFlightStore(flight)
    bs := newMemBookingStore()
    return New(fs, bs), fs, bs
}

func threeSeatFlight() *model.Flight {
    return &model.Flight{ID: 1, TotalSeats: 3, AvailableSeats: 3, PriceCents: 100}
}

func TestCreateBookingAssignsLowestSeatsFirst(t *testing.T) {
    l, fs, _ := newTestLedger(threeSeatFlight())

    b, err := l.CreateBooking(context.Background(), 1, 7, 2)
    require.NoError(t, err)
    assert.Equal(t, []string{"Seat-1", "Seat-2"}, b.SeatLabels)
    assert.Equal(t, 2, b.SeatCount)
    assert.Equal(t, uint32(200), b.TotalPriceCents)
    assert.Equal(t, model.PaymentCompleted, b.PaymentStatus)
    assert.Equal(t, 1, fs.available(1))
}

func TestCreateBookingRejectsOverCapacity(t *testing.T) {
    l, fs, _ := newTestLedger(threeSeatFlight())

    _, err := l.CreateBooking(context.Background(), 1, 7, 2)
    require.NoError(t, err)

    _, err = l.CreateBooking(context.Background(), 1, 8, 2)
    require.ErrorIs(t, err, ErrInsufficientCapacity)
    assert.Contains(t, err.Error(), "only 1")

    // A request that fits the remainder still succeeds and drains
    // the flight.
    b, err := l.CreateBooking(context.Background(), 1, 8, 1)
    require.NoError(t, err)
    assert.Equal(t, []string{"Seat-3"}, b.SeatLabels)
    assert.Equal(t, 0, fs.available(1))

    _, err = l.CreateBooking(context.Background(), 1, 9, 1)
    require.ErrorIs(t, err, ErrInsufficientCapacity)
}

func TestCreateBookingValidation(t *testing.T) {
    l, _, _ := newTestLedger(threeSeatFlight())

    _, err := l.CreateBooking(context.Background(), 1, 7, 0)
    assert.ErrorIs(t, err, ErrInvalidInput)
    _, err = l.CreateBooking(context.Background(), 1, 7, -2)
    assert.ErrorIs(t, err, ErrInvalidInput)
    _, err = l.CreateBooking(context.Background(), 0, 7, 1)
    assert.ErrorIs(t, err, ErrInvalidInput)
    _, err = l.CreateBooking(context.Background(), 1, 0, 1)
    assert.ErrorIs(t, err, ErrInvalidInput)
    _, err = l.CreateBooking(context.Background(), 42, 7, 1)
    assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestCancelReleasesSeatsAndLabels(t *testing.T) {
    l, fs, _ := newTestLedger(threeSeatFlight())
    ctx := context.Background()

    first, err := l.CreateBooking(ctx, 1, 7, 2)
    require.NoError(t, err)
    _, err = l.CreateBooking(ctx, 1, 8, 1)
    require.NoError(t, err)
    require.Equal(t, 0, fs.available(1))

    cancelled, err := l.CancelBooking(ctx, first.ID, true)
    require.NoError(t, err)
    assert.Equal(t, first.ID, cancelled.ID)
    assert.Equal(t, 2, fs.available(1))

    // The released labels are reusable by the next booking.
    again, err := l.CreateBooking(ctx, 1, 9, 2)
    require.NoError(t, err)
    assert.Equal(t, []string{"Seat-1", "Seat-2"}, again.SeatLabels)
    assert.Equal(t, 0, fs.available(1))
}

func TestCancelRequiresAdmin(t *testing.T) {
    l, _, _ := newTestLedger(threeSeatFlight())
    ctx := context.Background()

    b, err := l.CreateBooking(ctx, 1, 7, 1)
    require.NoError(t, err)

    _, err = l.CancelBooking(ctx, b.ID, false)
    assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCancelTwiceFails(t *testing.T) {
    l, fs, _ := newTestLedger(threeSeatFlight())
    ctx := context.Background()

    b, err := l.CreateBooking(ctx, 1, 7, 2)
    require.NoError(t, err)

    _, err = l.CancelBooking(ctx, b.ID, true)
    require.NoError(t, err)
    _, err = l.CancelBooking(ctx, b.ID, true)
    assert.ErrorIs(t, err, ErrBookingNotFound)
    // The second attempt must not release seats again.
    assert.Equal(t, 3, fs.available(1))
}

func TestReleaseClampsAtTotal(t *testing.T) {
    l, fs, _ := newTestLedger(threeSeatFlight())
    ctx := context.Background()

    b, err := l.CreateBooking(ctx, 1, 7, 2)
    require.NoError(t, err)

    // Simulate counter drift: availability was bumped outside the
    // ledger. Release must clamp at the flight total.
    require.NoError(t, fs.UpdateAvailable(ctx, 1, 1, 2))
    _, err = l.CancelBooking(ctx, b.ID, true)
    require.NoError(t, err)
    assert.Equal(t, 3, fs.available(1))
}

func TestPaymentStatusIsOrthogonalToSeats(t *testing.T) {
    l, fs, _ := newTestLedger(threeSeatFlight())
    ctx := context.Background()

    b, err := l.CreateBooking(ctx, 1, 7, 2)
    require.NoError(t, err)

    for _, status := range []string{model.PaymentPending, model.PaymentFailed, model.PaymentCompleted} {
        got, err := l.SetPaymentStatus(ctx, b.ID, status)
        require.NoError(t, err)
        assert.Equal(t, status, got.PaymentStatus)
        assert.Equal(t, b.SeatLabels, got.SeatLabels)
        assert.Equal(t, 1, fs.available(1))
    }

    _, err = l.SetPaymentStatus(ctx, b.ID, "REFUNDED")
    assert.ErrorIs(t, err, ErrInvalidInput)
    _, err = l.SetPaymentStatus(ctx, 99, model.PaymentFailed)
    assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestTicketCodesAreUnique(t *testing.T) {
    l, _, _ := newTestLedger(&model.Flight{ID: 1, TotalSeats: 50, AvailableSeats: 50, PriceCents: 100})
    ctx := context.Background()

    seen := make(map[string]bool)
    for i := 0; i < 50; i++ {
        b, err := l.CreateBooking(ctx, 1, uint64(i+1), 1)
        require.NoError(t, err)
        assert.Regexp(t, `^TICKET-[0-9A-F]{8}$`, b.TicketCode)
        assert.False(t, seen[b.TicketCode], "duplicate ticket code %s", b.TicketCode)
        seen[b.TicketCode] = true
    }
}

func TestConcurrentCreatesNeverOversell(t *testing.T) {
    l, fs, bs := newTestLedger(threeSeatFlight())
    ctx := context.Background()

    // Two 2-seat requests race for a 3-seat flight: exactly one can
    // win, and the winner's labels must not overlap anything else.
    var wg sync.WaitGroup
    results := make([]error, 2)
    for i := 0; i < 2; i++ {
        wg.Add(1)
        go func(n int) {
            defer wg.Done()
            _, results[n] = l.CreateBooking(ctx, 1, uint64(n+1), 2)
        }(i)
    }
    wg.Wait()

    wins := 0
    for _, err := range results {
        if err == nil {
            wins++
        } else {
            assert.ErrorIs(t, err, ErrInsufficientCapacity)
        }
    }
    assert.Equal(t, 1, wins)

    active, err := bs.FindActiveByFlight(ctx, 1)
    require.NoError(t, err)
    taken := make(map[string]bool)
    total := 0
    for _, b := range active {
        total += b.SeatCount
        for _, lab := range b.SeatLabels {
            assert.False(t, taken[lab], "seat %s assigned twice", lab)
            taken[lab] = true
        }
    }
    assert.Equal(t, 3-total, fs.available(1))
}

func TestConcurrentMixedLoadKeepsInvariant(t *testing.T) {
    flight := &model.Flight{ID: 1, TotalSeats: 20, AvailableSeats: 20, PriceCents: 50}
    l, fs, bs := newTestLedger(flight)
    ctx := context.Background()

    var wg sync.WaitGroup
    var mu sync.Mutex
    var created []uint64
    for i := 0; i < 30; i++ {
        wg.Add(1)
        go func(n int) {
            defer wg.Done()
            if b, err := l.CreateBooking(ctx, 1, uint64(n+1), 1+n%3); err == nil {
                mu.Lock()
                created = append(created, b.ID)
                mu.Unlock()
            }
        }(i)
    }
    wg.Wait()
    // Cancel half of what succeeded, concurrently.
    for i, id := range created {
        if i%2 == 0 {
            continue
        }
        wg.Add(1)
        go func(id uint64) {
            defer wg.Done()
            _, _ = l.CancelBooking(ctx, id, true)
        }(id)
    }
    wg.Wait()

    active, err := bs.FindActiveByFlight(ctx, 1)
    require.NoError(t, err)
    booked := 0
    taken := make(map[string]bool)
    for _, b := range active {
        booked += b.SeatCount
        for _, lab := range b.SeatLabels {
            require.False(t, taken[lab], "seat %s assigned twice", lab)
            taken[lab] = true
        }
    }
    assert.Equal(t, 20-booked, fs.available(1))
    assert.GreaterOrEqual(t, fs.available(1), 0)
}

func TestSeatLabelFormat(t *testing.T) {
    for _, n := range []int{1, 7, 120} {
        assert.Equal(t, fmt.Sprintf("Seat-%d", n), SeatLabel(n))
    }
}
