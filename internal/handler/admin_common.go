package handler // handler defines http handlers

import (
    "github.com/airtik/flight-reservation/internal/config"
    "github.com/airtik/flight-reservation/internal/repository"
)

// AdminHandler bundles repositories for admins to manage the catalog:
// locations, routes, airlines, flights and the user directory.
type AdminHandler struct {
    Cfg          config.Config
    LocationRepo *repository.LocationRepo
    RouteRepo    *repository.RouteRepo
    AirlineRepo  *repository.AirlineRepo
    FlightRepo   *repository.FlightRepo
    UserRepo     *repository.UserRepo
    BookingRepo  *repository.BookingRepo
}

// NewAdminHandler constructs a new AdminHandler and panics if any dependency is nil.
func NewAdminHandler(cfg config.Config, loc *repository.LocationRepo, rt *repository.RouteRepo, al *repository.AirlineRepo, fl *repository.FlightRepo, us *repository.UserRepo, bk *repository.BookingRepo) *AdminHandler {
    if loc == nil || rt == nil || al == nil || fl == nil || us == nil || bk == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{
        Cfg:          cfg,
        LocationRepo: loc,
        RouteRepo:    rt,
        AirlineRepo:  al,
        FlightRepo:   fl,
        UserRepo:     us,
        BookingRepo:  bk,
    }
}
