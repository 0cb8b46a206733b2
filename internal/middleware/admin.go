package middleware // middleware provides shared request processing for handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireAdmin returns a middleware function that enforces that the
// authenticated user carries the admin flag.  It assumes a previous
// middleware (SessionAuth) has stored the flag in the context under
// the key "is_admin".  Non-admin requests are aborted with a 403
// Forbidden response.
func RequireAdmin() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            v := c.Get("is_admin")
            isAdmin, ok := v.(bool)
            if !ok || !isAdmin {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
