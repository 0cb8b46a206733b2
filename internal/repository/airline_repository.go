package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/airtik/flight-reservation/internal/model"
)

// ErrAirlineNotFound indicates that an airline was not located in the DB.
var ErrAirlineNotFound = errors.New("airline not found")

// ErrAirlineNameExists indicates an airline with the same name exists.
var ErrAirlineNameExists = errors.New("airline name already exists")

// ErrAirlineCodeExists indicates an airline with the same code exists.
var ErrAirlineCodeExists = errors.New("airline code already exists")

// AirlineRepo manages persistence for airlines.  Codes are stored
// uppercased and both name and code are unique, checked separately
// so callers can report which one collided.
type AirlineRepo struct {
    db *sql.DB
}

// NewAirlineRepo returns an AirlineRepo bound to the given database.
func NewAirlineRepo(db *sql.DB) *AirlineRepo { return &AirlineRepo{db: db} }

// Create inserts an airline after checking name and code uniqueness.
func (r *AirlineRepo) Create(ctx context.Context, a *model.Airline) error {
    a.Name = strings.TrimSpace(a.Name)
    a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
    var nameTaken, codeTaken bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM airlines WHERE name=?), EXISTS(SELECT 1 FROM airlines WHERE code=?)",
        a.Name, a.Code).Scan(&nameTaken, &codeTaken); err != nil {
        return err
    }
    if nameTaken {
        return ErrAirlineNameExists
    }
    if codeTaken {
        return ErrAirlineCodeExists
    }
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO airlines (name, code) VALUES (?,?)", a.Name, a.Code)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    return nil
}

// List returns all airlines ordered by name.
func (r *AirlineRepo) List(ctx context.Context) ([]model.Airline, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT id, name, code, created_at FROM airlines ORDER BY name")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Airline, 0)
    for rows.Next() {
        var a model.Airline
        if err := rows.Scan(&a.ID, &a.Name, &a.Code, &a.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    return out, rows.Err()
}

// Update rewrites an airline's name and code.
func (r *AirlineRepo) Update(ctx context.Context, a *model.Airline) error {
    a.Name = strings.TrimSpace(a.Name)
    a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
    var nameTaken, codeTaken bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM airlines WHERE name=? AND id<>?), EXISTS(SELECT 1 FROM airlines WHERE code=? AND id<>?)",
        a.Name, a.ID, a.Code, a.ID).Scan(&nameTaken, &codeTaken); err != nil {
        return err
    }
    if nameTaken {
        return ErrAirlineNameExists
    }
    if codeTaken {
        return ErrAirlineCodeExists
    }
    res, err := r.db.ExecContext(ctx,
        "UPDATE airlines SET name=?, code=? WHERE id=?", a.Name, a.Code, a.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            "SELECT EXISTS(SELECT 1 FROM airlines WHERE id=?)", a.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrAirlineNotFound
        }
    }
    return nil
}

// Delete removes an airline.  It refuses with ErrConflict while any
// flight still references the airline.
func (r *AirlineRepo) Delete(ctx context.Context, id uint64) error {
    var hasFlights bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM flights WHERE airline_id=?)", id).Scan(&hasFlights); err != nil {
        return err
    }
    if hasFlights {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, "DELETE FROM airlines WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrAirlineNotFound
    }
    return nil
}

// Count returns the number of airlines (dashboard stat).
func (r *AirlineRepo) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM airlines").Scan(&n)
    return n, err
}
