package handler // handler defines http handlers

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/ledger"
    "github.com/airtik/flight-reservation/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints.
type PublicHandler struct {
    FlightRepo *repository.FlightRepo
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(fl *repository.FlightRepo) *PublicHandler {
    if fl == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{FlightRepo: fl}
}

// ListFlights handles GET /v1/flights: every flight with its airline
// and route joined in, soonest departure first.
func (h *PublicHandler) ListFlights(c echo.Context) error {
    flights, err := h.FlightRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list flights failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"flights": flights})
}

// GetFlight handles GET /v1/flights/:id.
func (h *PublicHandler) GetFlight(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    d, err := h.FlightRepo.Detail(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, ledger.ErrFlightNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load flight failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"flight": d})
}
