package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/model"
    "github.com/airtik/flight-reservation/internal/repository"
)

type routeReq struct {
    Origin      string `json:"origin"`
    Destination string `json:"destination"`
    Duration    string `json:"duration"`
    DistanceKM  uint32 `json:"distance_km"`
}

func (b *routeReq) validate() string {
    b.Origin = strings.TrimSpace(b.Origin)
    b.Destination = strings.TrimSpace(b.Destination)
    b.Duration = strings.TrimSpace(b.Duration)
    if b.Origin == "" || b.Destination == "" || b.Duration == "" {
        return "origin, destination and duration are required"
    }
    if strings.EqualFold(b.Origin, b.Destination) {
        return "origin and destination must differ"
    }
    return ""
}

// CreateRoute handles POST /v1/admin/routes.  The (origin,
// destination) pair is unique.
func (h *AdminHandler) CreateRoute(c echo.Context) error {
    var body routeReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    rt := &model.Route{Origin: body.Origin, Destination: body.Destination, Duration: body.Duration, DistanceKM: body.DistanceKM}
    if err := h.RouteRepo.Create(c.Request().Context(), rt); err != nil {
        if errors.Is(err, repository.ErrRouteExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "route already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create route failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"route": rt})
}

// ListRoutes handles GET /v1/admin/routes.
func (h *AdminHandler) ListRoutes(c echo.Context) error {
    routes, err := h.RouteRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list routes failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"routes": routes})
}

// UpdateRoute handles PUT /v1/admin/routes/:id.
func (h *AdminHandler) UpdateRoute(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid route id"})
    }
    var body routeReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    rt := &model.Route{ID: id, Origin: body.Origin, Destination: body.Destination, Duration: body.Duration, DistanceKM: body.DistanceKM}
    if err := h.RouteRepo.Update(c.Request().Context(), rt); err != nil {
        switch {
        case errors.Is(err, repository.ErrRouteNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        case errors.Is(err, repository.ErrRouteExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "route already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update route failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"route": rt})
}

// DeleteRoute handles DELETE /v1/admin/routes/:id.  A route with
// flights scheduled on it cannot be removed.
func (h *AdminHandler) DeleteRoute(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid route id"})
    }
    if err := h.RouteRepo.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, repository.ErrRouteNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "route has scheduled flights"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete route failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
