package handler // handler defines http handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Dashboard handles GET /v1/admin/dashboard and returns entity
// counts for the admin landing page.
func (h *AdminHandler) Dashboard(c echo.Context) error {
    ctx := c.Request().Context()
    flights, err := h.FlightRepo.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count flights failed"})
    }
    bookings, err := h.BookingRepo.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count bookings failed"})
    }
    airlines, err := h.AirlineRepo.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count airlines failed"})
    }
    locations, err := h.LocationRepo.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count locations failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "flights":   flights,
        "bookings":  bookings,
        "airlines":  airlines,
        "locations": locations,
    })
}
