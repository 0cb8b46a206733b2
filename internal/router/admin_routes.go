package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/handler"
    "github.com/airtik/flight-reservation/internal/middleware"
    "github.com/airtik/flight-reservation/internal/repository"
)

// RegisterAdmin registers admin-scoped endpoints under /v1/admin.
// All routes require a valid session and the admin flag.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, b *handler.BookingHandler, jwtSecret string, sessions *repository.SessionRepo) {
    g := e.Group(
        "/v1/admin",
        middleware.SessionAuth(jwtSecret, sessions),
        middleware.RequireAdmin(),
    )

    g.GET("/dashboard", a.Dashboard)

    // ---- Locations ----
    g.POST("/locations", a.CreateLocation)
    g.GET("/locations", a.ListLocations)
    g.PUT("/locations/:id", a.UpdateLocation)
    g.DELETE("/locations/:id", a.DeleteLocation)

    // ---- Routes ----
    g.POST("/routes", a.CreateRoute)
    g.GET("/routes", a.ListRoutes)
    g.PUT("/routes/:id", a.UpdateRoute)
    g.DELETE("/routes/:id", a.DeleteRoute)

    // ---- Airlines ----
    g.POST("/airlines", a.CreateAirline)
    g.GET("/airlines", a.ListAirlines)
    g.PUT("/airlines/:id", a.UpdateAirline)
    g.DELETE("/airlines/:id", a.DeleteAirline)

    // ---- Flights ----
    g.POST("/flights", a.CreateFlight)
    g.GET("/flights", a.ListFlights)
    g.PUT("/flights/:id", a.UpdateFlight)
    g.DELETE("/flights/:id", a.DeleteFlight)

    // ---- Users ----
    g.POST("/users", a.CreateUser)
    g.GET("/users", a.ListUsers)
    g.DELETE("/users/:id", a.DeleteUser)

    // ---- Bookings (admin view) ----
    g.GET("/bookings", b.ListAll)
}
