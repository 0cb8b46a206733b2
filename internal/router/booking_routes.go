package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/handler"
    "github.com/airtik/flight-reservation/internal/middleware"
    "github.com/airtik/flight-reservation/internal/repository"
)

// RegisterBookings registers booking endpoints under /v1.  All of
// them require a valid session; cancellation additionally requires
// the admin flag, enforced inside the ledger so the rule holds for
// every caller.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, sessions *repository.SessionRepo, extra ...echo.MiddlewareFunc) {
    mws := append([]echo.MiddlewareFunc{middleware.SessionAuth(jwtSecret, sessions)}, extra...)
    g := e.Group("/v1", mws...)

    g.POST("/bookings", b.CreateBooking)
    g.GET("/bookings", b.MyBookings)
    g.DELETE("/bookings/:id", b.Cancel)
    g.PUT("/bookings/:id/payment", b.UpdatePayment)
}
