package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/handler"
    "github.com/airtik/flight-reservation/internal/middleware"
    "github.com/airtik/flight-reservation/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes.  Register and login
// live under /v1/auth and need no session; logout and the
// check-auth endpoint require one so the middleware can identify
// which session to act on.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, sessions *repository.SessionRepo) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)

    p := e.Group("/v1/auth", middleware.SessionAuth(jwtSecret, sessions))
    p.POST("/logout", a.Logout)
    p.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints.
// The extra middlewares (rate limiting, response cache) are passed
// in so main can wire them only when Redis is available.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, extra ...echo.MiddlewareFunc) {
    g := e.Group("/v1", extra...)
    g.GET("/flights", p.ListFlights)
    g.GET("/flights/:id", p.GetFlight)
}
