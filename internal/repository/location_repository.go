package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/airtik/flight-reservation/internal/model"
)

// ErrLocationNotFound indicates that a location was not located in the DB.
var ErrLocationNotFound = errors.New("location not found")

// ErrCityExists indicates a location with the same city name already exists.
var ErrCityExists = errors.New("city already exists")

// LocationRepo manages persistence for locations (city/country pairs
// that routes reference by name).
type LocationRepo struct {
    db *sql.DB
}

// NewLocationRepo returns a LocationRepo bound to the given database.
func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// Create inserts a location.  City names are unique; a duplicate
// results in ErrCityExists.  The generated ID is populated on the
// provided record.
func (r *LocationRepo) Create(ctx context.Context, loc *model.Location) error {
    loc.City = strings.TrimSpace(loc.City)
    loc.Country = strings.TrimSpace(loc.Country)
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO locations (city, country) VALUES (?,?)", loc.City, loc.Country)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrCityExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    loc.ID = uint64(id)
    return nil
}

// List returns all locations ordered by city name.
func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT id, city, country, created_at FROM locations ORDER BY city")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Location, 0)
    for rows.Next() {
        var l model.Location
        if err := rows.Scan(&l.ID, &l.City, &l.Country, &l.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}

// Update changes a location's city and country.  Renaming to a city
// that already exists on another row fails with ErrCityExists.
func (r *LocationRepo) Update(ctx context.Context, loc *model.Location) error {
    loc.City = strings.TrimSpace(loc.City)
    loc.Country = strings.TrimSpace(loc.Country)
    var taken bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM locations WHERE city=? AND id<>?)",
        loc.City, loc.ID).Scan(&taken); err != nil {
        return err
    }
    if taken {
        return ErrCityExists
    }
    res, err := r.db.ExecContext(ctx,
        "UPDATE locations SET city=?, country=? WHERE id=?", loc.City, loc.Country, loc.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        // Distinguish missing row from no-change update.
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            "SELECT EXISTS(SELECT 1 FROM locations WHERE id=?)", loc.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrLocationNotFound
        }
    }
    return nil
}

// Delete removes a location by ID.  Routes reference locations by
// city name, so a location that still appears as an origin or
// destination of any route refuses with ErrConflict.
func (r *LocationRepo) Delete(ctx context.Context, id uint64) error {
    var city string
    err := r.db.QueryRowContext(ctx,
        "SELECT city FROM locations WHERE id=? LIMIT 1", id).Scan(&city)
    if err == sql.ErrNoRows {
        return ErrLocationNotFound
    }
    if err != nil {
        return err
    }
    var referenced bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM routes WHERE origin=? OR destination=?)",
        city, city).Scan(&referenced); err != nil {
        return err
    }
    if referenced {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrLocationNotFound
    }
    return nil
}

// Count returns the number of locations (dashboard stat).
func (r *LocationRepo) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations").Scan(&n)
    return n, err
}
