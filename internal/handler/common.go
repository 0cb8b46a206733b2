package handler // handler defines http handlers

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"
)

// getUserID extracts the user_id placed in the context by the session
// middleware.
func getUserID(c echo.Context) (uint64, error) {
    if v, ok := c.Get("user_id").(uint64); ok && v != 0 {
        return v, nil
    }
    return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the session middleware marked the caller
// as an admin.
func isAdmin(c echo.Context) bool {
    v, _ := c.Get("is_admin").(bool)
    return v
}

// pathID parses the :id route parameter into a positive uint64.
func pathID(c echo.Context) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}
