package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "time"

    "github.com/airtik/flight-reservation/internal/ledger"
    "github.com/airtik/flight-reservation/internal/model"
)

// BookingRepo is the persistent seat-assignment ledger.  It
// implements ledger.BookingStore: every row is an active booking
// (cancellation deletes the row), and seat labels are stored as a
// JSON array so the label set travels with the record.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a booking and populates the generated ID and the
// DB-default creation timestamp on the provided record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    labels, err := json.Marshal(b.SeatLabels)
    if err != nil {
        return err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO bookings (ticket_code, flight_id, user_id, seat_count, seat_labels, total_price_cents, payment_status)
         VALUES (?,?,?,?,?,?,?)`,
        b.TicketCode, b.FlightID, b.UserID, b.SeatCount, labels, b.TotalPriceCents, b.PaymentStatus)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the row to populate the DB timestamp.
    return r.db.QueryRowContext(ctx,
        "SELECT created_at FROM bookings WHERE id=?", b.ID).Scan(&b.CreatedAt)
}

func scanBooking(row interface{ Scan(...interface{}) error }) (model.Booking, error) {
    var (
        b      model.Booking
        labels []byte
    )
    err := row.Scan(&b.ID, &b.TicketCode, &b.FlightID, &b.UserID, &b.SeatCount,
        &labels, &b.TotalPriceCents, &b.PaymentStatus, &b.CreatedAt)
    if err != nil {
        return b, err
    }
    if err := json.Unmarshal(labels, &b.SeatLabels); err != nil {
        return b, err
    }
    return b, nil
}

const bookingColumns = "id, ticket_code, flight_id, user_id, seat_count, seat_labels, total_price_cents, payment_status, created_at"

// Get fetches a booking by id, returning ledger.ErrBookingNotFound
// when it does not exist (or was already cancelled).
func (r *BookingRepo) Get(ctx context.Context, id uint64) (*model.Booking, error) {
    b, err := scanBooking(r.db.QueryRowContext(ctx,
        "SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id))
    if err == sql.ErrNoRows {
        return nil, ledger.ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    return &b, nil
}

// FindActiveByFlight returns every active booking on a flight.  The
// ledger unions their seat labels into the authoritative taken set,
// so ordering is irrelevant but kept stable for debuggability.
func (r *BookingRepo) FindActiveByFlight(ctx context.Context, flightID uint64) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+bookingColumns+" FROM bookings WHERE flight_id=? ORDER BY id", flightID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// Delete removes a booking row.  A repeat delete observes zero
// affected rows and reports ledger.ErrBookingNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ledger.ErrBookingNotFound
    }
    return nil
}

// UpdatePaymentStatus sets the payment state of a booking.  The
// ledger validates the status value before calling.
func (r *BookingRepo) UpdatePaymentStatus(ctx context.Context, id uint64, status string) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE bookings SET payment_status=? WHERE id=?", status, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            "SELECT EXISTS(SELECT 1 FROM bookings WHERE id=?)", id).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ledger.ErrBookingNotFound
        }
    }
    return nil
}

// BookingDetail is the read-only projection returned by the listing
// endpoints: the booking joined with flight and route summary
// fields, plus the owning user for admin views.
type BookingDetail struct {
    ID              uint64   `json:"id"`
    TicketCode      string   `json:"ticket_code"`
    SeatCount       int      `json:"seat_count"`
    SeatLabels      []string `json:"seat_labels"`
    TotalPriceCents uint32   `json:"total_price_cents"`
    PaymentStatus   string   `json:"payment_status"`
    CreatedAt       string   `json:"created_at"`
    FlightID        uint64   `json:"flight_id"`
    FlightNumber    string   `json:"flight_number"`
    DepartsAt       string   `json:"departs_at"`
    AirlineName     string   `json:"airline_name"`
    Origin          string   `json:"origin"`
    Destination     string   `json:"destination"`
    UserID          uint64   `json:"user_id"`
    UserName        string   `json:"user_name,omitempty"`
    UserEmail       string   `json:"user_email,omitempty"`
}

const bookingDetailQuery = `
SELECT b.id, b.ticket_code, b.seat_count, b.seat_labels, b.total_price_cents, b.payment_status, b.created_at,
       f.id, f.flight_number, f.departs_at,
       a.name, r.origin, r.destination,
       u.id, u.name, u.email
FROM bookings b
JOIN flights f ON f.id = b.flight_id
JOIN airlines a ON a.id = f.airline_id
JOIN routes r ON r.id = f.route_id
JOIN users u ON u.id = b.user_id`

func (r *BookingRepo) listDetails(ctx context.Context, query string, args ...interface{}) ([]BookingDetail, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]BookingDetail, 0)
    for rows.Next() {
        var (
            d         BookingDetail
            labels    []byte
            createdAt sql.NullTime
        )
        if err := rows.Scan(&d.ID, &d.TicketCode, &d.SeatCount, &labels, &d.TotalPriceCents, &d.PaymentStatus, &createdAt,
            &d.FlightID, &d.FlightNumber, &d.DepartsAt,
            &d.AirlineName, &d.Origin, &d.Destination,
            &d.UserID, &d.UserName, &d.UserEmail); err != nil {
            return nil, err
        }
        if err := json.Unmarshal(labels, &d.SeatLabels); err != nil {
            return nil, err
        }
        if createdAt.Valid {
            d.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// ListAll returns every booking with flight, route and user details,
// newest first.  Admin-only view.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
    return r.listDetails(ctx, bookingDetailQuery+" ORDER BY b.created_at DESC")
}

// ListByUser returns the bookings made by one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
    return r.listDetails(ctx, bookingDetailQuery+" WHERE b.user_id=? ORDER BY b.created_at DESC", userID)
}

// Count returns the number of bookings (dashboard stat).
func (r *BookingRepo) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&n)
    return n, err
}
