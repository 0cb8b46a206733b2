package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/repository"
    "github.com/airtik/flight-reservation/internal/utils"
)

// SessionCookie is the name of the cookie carrying the session JWT.
const SessionCookie = "token"

// SessionAuth returns an Echo middleware that validates the session
// cookie and injects the caller's identity into the request context.
// The cookie holds an HS256 JWT; on top of signature verification
// the token's SHA-256 hash must still resolve to a live (non-revoked,
// non-expired) row in the sessions table, so logout takes effect
// immediately. Handlers read the identity via `c.Get("user_id")`
// (uint64) and `c.Get("is_admin")` (bool).
func SessionAuth(secret string, sessions *repository.SessionRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie, err := c.Cookie(SessionCookie)
            if err != nil || cookie.Value == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session cookie"})
            }
            userID, isAdmin, err := utils.ParseSessionToken(secret, cookie.Value)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            // The JWT alone is not enough: the session row must still
            // be live, otherwise a logged-out cookie would keep working
            // until its exp claim.
            sessUserID, err := sessions.Validate(c.Request().Context(), utils.HashSessionRaw(cookie.Value))
            if err != nil || sessUserID != userID {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
            }
            c.Set("user_id", userID)
            c.Set("is_admin", isAdmin)
            return next(c)
        }
    }
}
