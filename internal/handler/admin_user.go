package handler // handler defines http handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/repository"
)

// CreateUser handles POST /v1/admin/users.  Unlike self-service
// registration it can mint admin accounts, and it opens no session
// for the created user.
func (h *AdminHandler) CreateUser(c echo.Context) error {
    var body struct {
        Name     string `json:"name"`
        Email    string `json:"email"`
        Phone    string `json:"phone"`
        Password string `json:"password"`
        IsAdmin  bool   `json:"is_admin"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.Name = strings.TrimSpace(body.Name)
    body.Email = strings.ToLower(strings.TrimSpace(body.Email))
    body.Phone = strings.TrimSpace(body.Phone)
    if body.Name == "" || body.Email == "" || body.Phone == "" || body.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/phone/password required"})
    }
    id, err := h.UserRepo.Create(c.Request().Context(), body.Name, body.Email, body.Phone, body.Password, body.IsAdmin, h.Cfg.BcryptCost)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrEmailExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
        case errors.Is(err, repository.ErrPhoneExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "phone number already in use"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "user": userPart{ID: id, Name: body.Name, Email: body.Email, Phone: body.Phone, IsAdmin: body.IsAdmin},
    })
}

// ListUsers handles GET /v1/admin/users and returns every account
// except the requesting admin's own.
func (h *AdminHandler) ListUsers(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    users, err := h.UserRepo.ListOthers(c.Request().Context(), uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
    }
    out := make([]userPart, 0, len(users))
    for _, u := range users {
        out = append(out, userPart{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, IsAdmin: u.IsAdmin})
    }
    return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// DeleteUser handles DELETE /v1/admin/users/:id.  Admins cannot
// delete themselves, and an account with bookings is kept.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    if id == uid {
        return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete your own account"})
    }
    if err := h.UserRepo.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, repository.ErrUserNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "user has bookings"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
