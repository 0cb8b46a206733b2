package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/airtik/flight-reservation/internal/model"
)

// ErrRouteNotFound indicates that a route was not located in the DB.
var ErrRouteNotFound = errors.New("route not found")

// ErrRouteExists indicates a route with the same origin and
// destination already exists.
var ErrRouteExists = errors.New("route already exists")

// RouteRepo manages persistence for flight routes.
type RouteRepo struct {
    db *sql.DB
}

// NewRouteRepo returns a RouteRepo bound to the given database.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// Create inserts a route.  The (origin, destination) pair is unique;
// a duplicate results in ErrRouteExists.
func (r *RouteRepo) Create(ctx context.Context, rt *model.Route) error {
    rt.Origin = strings.TrimSpace(rt.Origin)
    rt.Destination = strings.TrimSpace(rt.Destination)
    var taken bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM routes WHERE origin=? AND destination=?)",
        rt.Origin, rt.Destination).Scan(&taken); err != nil {
        return err
    }
    if taken {
        return ErrRouteExists
    }
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO routes (origin, destination, duration, distance_km) VALUES (?,?,?,?)",
        rt.Origin, rt.Destination, rt.Duration, rt.DistanceKM)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rt.ID = uint64(id)
    return nil
}

// GetByID fetches a route by id.
func (r *RouteRepo) GetByID(ctx context.Context, id uint64) (model.Route, error) {
    var rt model.Route
    err := r.db.QueryRowContext(ctx,
        "SELECT id, origin, destination, duration, distance_km, created_at FROM routes WHERE id=? LIMIT 1",
        id).Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.Duration, &rt.DistanceKM, &rt.CreatedAt)
    if err == sql.ErrNoRows {
        return rt, ErrRouteNotFound
    }
    return rt, err
}

// List returns all routes ordered by origin then destination.
func (r *RouteRepo) List(ctx context.Context) ([]model.Route, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT id, origin, destination, duration, distance_km, created_at FROM routes ORDER BY origin, destination")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Route, 0)
    for rows.Next() {
        var rt model.Route
        if err := rows.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.Duration, &rt.DistanceKM, &rt.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, rt)
    }
    return out, rows.Err()
}

// Update rewrites a route's fields.
func (r *RouteRepo) Update(ctx context.Context, rt *model.Route) error {
    rt.Origin = strings.TrimSpace(rt.Origin)
    rt.Destination = strings.TrimSpace(rt.Destination)
    var taken bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM routes WHERE origin=? AND destination=? AND id<>?)",
        rt.Origin, rt.Destination, rt.ID).Scan(&taken); err != nil {
        return err
    }
    if taken {
        return ErrRouteExists
    }
    res, err := r.db.ExecContext(ctx,
        "UPDATE routes SET origin=?, destination=?, duration=?, distance_km=? WHERE id=?",
        rt.Origin, rt.Destination, rt.Duration, rt.DistanceKM, rt.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            "SELECT EXISTS(SELECT 1 FROM routes WHERE id=?)", rt.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrRouteNotFound
        }
    }
    return nil
}

// Delete removes a route.  It refuses with ErrConflict while any
// flight still references the route.
func (r *RouteRepo) Delete(ctx context.Context, id uint64) error {
    var hasFlights bool
    if err := r.db.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM flights WHERE route_id=?)", id).Scan(&hasFlights); err != nil {
        return err
    }
    if hasFlights {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, "DELETE FROM routes WHERE id=?", id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrRouteNotFound
    }
    return nil
}
