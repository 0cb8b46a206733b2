package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/model"
    "github.com/airtik/flight-reservation/internal/repository"
)

type locationReq struct {
    City    string `json:"city"`
    Country string `json:"country"`
}

// CreateLocation handles POST /v1/admin/locations.  City names are
// unique across the table.
func (h *AdminHandler) CreateLocation(c echo.Context) error {
    var body locationReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.City = strings.TrimSpace(body.City)
    body.Country = strings.TrimSpace(body.Country)
    if body.City == "" || body.Country == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "city and country are required"})
    }
    loc := &model.Location{City: body.City, Country: body.Country}
    if err := h.LocationRepo.Create(c.Request().Context(), loc); err != nil {
        if errors.Is(err, repository.ErrCityExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "city already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create location failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"location": loc})
}

// ListLocations handles GET /v1/admin/locations.
func (h *AdminHandler) ListLocations(c echo.Context) error {
    locs, err := h.LocationRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list locations failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"locations": locs})
}

// UpdateLocation handles PUT /v1/admin/locations/:id.
func (h *AdminHandler) UpdateLocation(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
    }
    var body locationReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.City = strings.TrimSpace(body.City)
    body.Country = strings.TrimSpace(body.Country)
    if body.City == "" || body.Country == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "city and country are required"})
    }
    loc := &model.Location{ID: id, City: body.City, Country: body.Country}
    if err := h.LocationRepo.Update(c.Request().Context(), loc); err != nil {
        switch {
        case errors.Is(err, repository.ErrLocationNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
        case errors.Is(err, repository.ErrCityExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "city already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update location failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"location": loc})
}

// DeleteLocation handles DELETE /v1/admin/locations/:id.  A location
// still referenced by a route cannot be removed.
func (h *AdminHandler) DeleteLocation(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
    }
    if err := h.LocationRepo.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, repository.ErrLocationNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "location is referenced by a route"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete location failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
