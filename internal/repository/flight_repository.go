// Package repository contains data access logic for flight domain
// operations. This file holds the flight repository, which doubles
// as the ledger's FlightStore: besides CRUD it provides the
// compare-and-set availability update the booking ledger uses to
// commit seat-count changes.
package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/airtik/flight-reservation/internal/ledger"
    "github.com/airtik/flight-reservation/internal/model"
)

// DBTimeLayout is the DATETIME format flights store for DepartsAt
// ("YYYY-MM-DD HH:MM:SS" UTC).
const DBTimeLayout = "2006-01-02 15:04:05"

// FlightRepo manages persistence for flights.
type FlightRepo struct {
    db *sql.DB
}

// NewFlightRepo returns a FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *FlightRepo) DB() *sql.DB { return r.db }

// Get fetches a flight by id.  It satisfies ledger.FlightStore and
// returns ledger.ErrFlightNotFound for a missing row so the ledger
// can classify the failure.
func (r *FlightRepo) Get(ctx context.Context, id uint64) (*model.Flight, error) {
    var f model.Flight
    err := r.db.QueryRowContext(ctx,
        `SELECT id, airline_id, route_id, flight_number, departs_at, total_seats, available_seats, price_cents, created_at
         FROM flights WHERE id=? LIMIT 1`, id).Scan(
        &f.ID, &f.AirlineID, &f.RouteID, &f.FlightNumber, &f.DepartsAt,
        &f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ledger.ErrFlightNotFound
    }
    if err != nil {
        return nil, err
    }
    return &f, nil
}

// UpdateAvailable moves the cached available counter from observed
// to next, guarded by a WHERE clause on the observed value.  When
// no row matches, the flight either vanished (ErrFlightNotFound) or
// another writer raced in between (ledger.ErrConflict); the ledger
// treats the latter as retryable.
func (r *FlightRepo) UpdateAvailable(ctx context.Context, id uint64, observed, next int) error {
    res, err := r.db.ExecContext(ctx,
        "UPDATE flights SET available_seats=? WHERE id=? AND available_seats=?",
        next, id, observed)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 && observed != next {
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            "SELECT EXISTS(SELECT 1 FROM flights WHERE id=?)", id).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ledger.ErrFlightNotFound
        }
        return ledger.ErrConflict
    }
    return nil
}

// HasScheduleClash reports whether another flight on the same route
// departs within one hour of the given time.  excludeID skips the
// flight being edited.
func (r *FlightRepo) HasScheduleClash(ctx context.Context, routeID uint64, departsAt time.Time, excludeID uint64) (bool, error) {
    from := departsAt.Add(-time.Hour).UTC().Format(DBTimeLayout)
    to := departsAt.Add(time.Hour).UTC().Format(DBTimeLayout)
    var clash bool
    err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM flights WHERE route_id=? AND id<>? AND departs_at BETWEEN ? AND ?)",
        routeID, excludeID, from, to).Scan(&clash)
    return clash, err
}

// Create inserts a flight with available_seats equal to total_seats.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
    f.AvailableSeats = f.TotalSeats
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO flights (airline_id, route_id, flight_number, departs_at, total_seats, available_seats, price_cents)
         VALUES (?,?,?,?,?,?,?)`,
        f.AirlineID, f.RouteID, f.FlightNumber, f.DepartsAt, f.TotalSeats, f.AvailableSeats, f.PriceCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    f.ID = uint64(id)
    return nil
}

// Update rewrites a flight's fields inside a transaction and
// recomputes available_seats as total minus the seats of active
// bookings, so an edit can never reset availability to full while
// bookings exist.  Shrinking total below the booked sum fails with
// ErrConflict.
func (r *FlightRepo) Update(ctx context.Context, f *model.Flight) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    var booked int
    if err := tx.QueryRowContext(ctx,
        "SELECT COALESCE(SUM(seat_count),0) FROM bookings WHERE flight_id=?", f.ID).Scan(&booked); err != nil {
        return err
    }
    if f.TotalSeats < booked {
        return ErrConflict
    }
    f.AvailableSeats = f.TotalSeats - booked
    res, err := tx.ExecContext(ctx,
        `UPDATE flights SET airline_id=?, route_id=?, flight_number=?, departs_at=?, total_seats=?, available_seats=?, price_cents=?
         WHERE id=?`,
        f.AirlineID, f.RouteID, f.FlightNumber, f.DepartsAt, f.TotalSeats, f.AvailableSeats, f.PriceCents, f.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var exists bool
        if err := tx.QueryRowContext(ctx,
            "SELECT EXISTS(SELECT 1 FROM flights WHERE id=?)", f.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ledger.ErrFlightNotFound
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Delete removes a flight.  It refuses with ErrConflict while any
// booking still references the flight.
func (r *FlightRepo) Delete(ctx context.Context, id uint64) error {
    var hasBookings bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM bookings WHERE flight_id=?)", id).Scan(&hasBookings); err != nil {
        return err
    }
    if hasBookings {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, "DELETE FROM flights WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ledger.ErrFlightNotFound
    }
    return nil
}

// FlightDetail joins a flight with its airline and route summary
// fields for listings and event payloads.
type FlightDetail struct {
    ID             uint64 `json:"id"`
    FlightNumber   string `json:"flight_number"`
    DepartsAt      string `json:"departs_at"`
    TotalSeats     int    `json:"total_seats"`
    AvailableSeats int    `json:"available_seats"`
    PriceCents     uint32 `json:"price_cents"`
    AirlineID      uint64 `json:"airline_id"`
    AirlineName    string `json:"airline_name"`
    AirlineCode    string `json:"airline_code"`
    RouteID        uint64 `json:"route_id"`
    Origin         string `json:"origin"`
    Destination    string `json:"destination"`
    Duration       string `json:"duration"`
}

const flightDetailQuery = `
SELECT f.id, f.flight_number, f.departs_at, f.total_seats, f.available_seats, f.price_cents,
       a.id, a.name, a.code,
       r.id, r.origin, r.destination, r.duration
FROM flights f
JOIN airlines a ON a.id = f.airline_id
JOIN routes r ON r.id = f.route_id`

func scanFlightDetail(row interface{ Scan(...interface{}) error }, d *FlightDetail) error {
    return row.Scan(
        &d.ID, &d.FlightNumber, &d.DepartsAt, &d.TotalSeats, &d.AvailableSeats, &d.PriceCents,
        &d.AirlineID, &d.AirlineName, &d.AirlineCode,
        &d.RouteID, &d.Origin, &d.Destination, &d.Duration)
}

// Detail returns one flight joined with airline and route fields.
func (r *FlightRepo) Detail(ctx context.Context, id uint64) (*FlightDetail, error) {
    var d FlightDetail
    err := scanFlightDetail(r.db.QueryRowContext(ctx, flightDetailQuery+" WHERE f.id=?", id), &d)
    if err == sql.ErrNoRows {
        return nil, ledger.ErrFlightNotFound
    }
    if err != nil {
        return nil, err
    }
    return &d, nil
}

// List returns all flights joined with airline and route fields,
// soonest departure first.
func (r *FlightRepo) List(ctx context.Context) ([]FlightDetail, error) {
    rows, err := r.db.QueryContext(ctx, flightDetailQuery+" ORDER BY f.departs_at")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]FlightDetail, 0)
    for rows.Next() {
        var d FlightDetail
        if err := scanFlightDetail(rows, &d); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// Count returns the number of flights (dashboard stat).
func (r *FlightRepo) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM flights").Scan(&n)
    return n, err
}
