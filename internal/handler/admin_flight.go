package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/ledger"
    "github.com/airtik/flight-reservation/internal/model"
    "github.com/airtik/flight-reservation/internal/repository"
)

type flightReq struct {
    AirlineID    uint64 `json:"airline_id"`
    RouteID      uint64 `json:"route_id"`
    FlightNumber string `json:"flight_number"`
    DepartsAt    string `json:"departs_at"` // RFC3339
    TotalSeats   int    `json:"total_seats"`
    PriceCents   uint32 `json:"price_cents"`
}

// parseFlightReq validates the payload and converts departs_at from
// RFC3339 into the DB layout.  It returns a human-readable problem
// description, empty when the payload is usable.
func parseFlightReq(body *flightReq) (departs time.Time, problem string) {
    body.FlightNumber = strings.ToUpper(strings.TrimSpace(body.FlightNumber))
    if body.AirlineID == 0 || body.RouteID == 0 || body.FlightNumber == "" {
        return time.Time{}, "airline_id, route_id and flight_number are required"
    }
    if body.TotalSeats <= 0 {
        return time.Time{}, "total_seats must be greater than zero"
    }
    if body.PriceCents == 0 {
        return time.Time{}, "price_cents must be greater than zero"
    }
    departs, err := time.Parse(time.RFC3339, body.DepartsAt)
    if err != nil {
        return time.Time{}, "departs_at must be RFC3339"
    }
    return departs.UTC(), ""
}

// CreateFlight handles POST /v1/admin/flights.  A new flight starts
// with available_seats equal to total_seats.  Flights on the same
// route may not depart within one hour of each other.
func (h *AdminHandler) CreateFlight(c echo.Context) error {
    var body flightReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    departs, problem := parseFlightReq(&body)
    if problem != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": problem})
    }
    ctx := c.Request().Context()
    if _, err := h.RouteRepo.GetByID(ctx, body.RouteID); err != nil {
        if errors.Is(err, repository.ErrRouteNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify route failed"})
    }
    clash, err := h.FlightRepo.HasScheduleClash(ctx, body.RouteID, departs, 0)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify schedule failed"})
    }
    if clash {
        return c.JSON(http.StatusConflict, echo.Map{"error": "another flight on this route departs within one hour"})
    }
    f := &model.Flight{
        AirlineID:    body.AirlineID,
        RouteID:      body.RouteID,
        FlightNumber: body.FlightNumber,
        DepartsAt:    departs.Format(repository.DBTimeLayout),
        TotalSeats:   body.TotalSeats,
        PriceCents:   body.PriceCents,
    }
    if err := h.FlightRepo.Create(ctx, f); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flight failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"flight": f})
}

// ListFlights handles GET /v1/admin/flights with airline and route
// fields joined in.
func (h *AdminHandler) ListFlights(c echo.Context) error {
    flights, err := h.FlightRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list flights failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"flights": flights})
}

// UpdateFlight handles PUT /v1/admin/flights/:id.  Availability is
// recomputed from active bookings, never reset to full; shrinking
// total_seats below the booked sum is rejected.
func (h *AdminHandler) UpdateFlight(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    var body flightReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    departs, problem := parseFlightReq(&body)
    if problem != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": problem})
    }
    ctx := c.Request().Context()
    clash, err := h.FlightRepo.HasScheduleClash(ctx, body.RouteID, departs, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify schedule failed"})
    }
    if clash {
        return c.JSON(http.StatusConflict, echo.Map{"error": "another flight on this route departs within one hour"})
    }
    f := &model.Flight{
        ID:           id,
        AirlineID:    body.AirlineID,
        RouteID:      body.RouteID,
        FlightNumber: body.FlightNumber,
        DepartsAt:    departs.Format(repository.DBTimeLayout),
        TotalSeats:   body.TotalSeats,
        PriceCents:   body.PriceCents,
    }
    if err := h.FlightRepo.Update(ctx, f); err != nil {
        switch {
        case errors.Is(err, ledger.ErrFlightNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "total_seats is below the number of booked seats"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update flight failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"flight": f})
}

// DeleteFlight handles DELETE /v1/admin/flights/:id.  A flight with
// bookings cannot be removed.
func (h *AdminHandler) DeleteFlight(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    if err := h.FlightRepo.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, ledger.ErrFlightNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "flight has bookings"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete flight failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
