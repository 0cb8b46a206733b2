package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/model"
    "github.com/airtik/flight-reservation/internal/repository"
)

type airlineReq struct {
    Name string `json:"name"`
    Code string `json:"code"`
}

// CreateAirline handles POST /v1/admin/airlines.  Name and code are
// both unique; codes are stored uppercased.
func (h *AdminHandler) CreateAirline(c echo.Context) error {
    var body airlineReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.Name = strings.TrimSpace(body.Name)
    body.Code = strings.ToUpper(strings.TrimSpace(body.Code))
    if body.Name == "" || body.Code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and code are required"})
    }
    a := &model.Airline{Name: body.Name, Code: body.Code}
    if err := h.AirlineRepo.Create(c.Request().Context(), a); err != nil {
        switch {
        case errors.Is(err, repository.ErrAirlineNameExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "airline name already exists"})
        case errors.Is(err, repository.ErrAirlineCodeExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "airline code already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create airline failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"airline": a})
}

// ListAirlines handles GET /v1/admin/airlines.
func (h *AdminHandler) ListAirlines(c echo.Context) error {
    airlines, err := h.AirlineRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list airlines failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"airlines": airlines})
}

// UpdateAirline handles PUT /v1/admin/airlines/:id.
func (h *AdminHandler) UpdateAirline(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid airline id"})
    }
    var body airlineReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.Name = strings.TrimSpace(body.Name)
    body.Code = strings.ToUpper(strings.TrimSpace(body.Code))
    if body.Name == "" || body.Code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and code are required"})
    }
    a := &model.Airline{ID: id, Name: body.Name, Code: body.Code}
    if err := h.AirlineRepo.Update(c.Request().Context(), a); err != nil {
        switch {
        case errors.Is(err, repository.ErrAirlineNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "airline not found"})
        case errors.Is(err, repository.ErrAirlineNameExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "airline name already exists"})
        case errors.Is(err, repository.ErrAirlineCodeExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "airline code already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update airline failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"airline": a})
}

// DeleteAirline handles DELETE /v1/admin/airlines/:id.  An airline
// operating flights cannot be removed.
func (h *AdminHandler) DeleteAirline(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid airline id"})
    }
    if err := h.AirlineRepo.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, repository.ErrAirlineNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "airline not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "airline has scheduled flights"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete airline failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
