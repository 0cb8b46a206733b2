package main // Entry point package

import (
    "context"
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/airtik/flight-reservation/internal/config"
    "github.com/airtik/flight-reservation/internal/database"
    "github.com/airtik/flight-reservation/internal/handler"
    "github.com/airtik/flight-reservation/internal/ledger"
    "github.com/airtik/flight-reservation/internal/middleware"
    "github.com/airtik/flight-reservation/internal/queue"
    "github.com/airtik/flight-reservation/internal/repository"
    "github.com/airtik/flight-reservation/internal/router"
    queuepublisher "github.com/airtik/flight-reservation/internal/service"
)

func main() {
    // Load .env when present; real deployments set the environment
    // directly and the file is absent.
    if err := godotenv.Load(); err != nil {
        log.Printf("no .env file loaded: %v", err)
    }
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Repositories.
    userRepo := repository.NewUserRepo(db)
    sessionRepo := repository.NewSessionRepo(db)
    locationRepo := repository.NewLocationRepo(db)
    routeRepo := repository.NewRouteRepo(db)
    airlineRepo := repository.NewAirlineRepo(db)
    flightRepo := repository.NewFlightRepo(db)
    bookingRepo := repository.NewBookingRepo(db)

    // The booking ledger owns all seat accounting.
    bookingLedger := ledger.New(flightRepo, bookingRepo)

    // Handlers.
    authHandler := handler.NewAuthHandler(cfg, userRepo, sessionRepo)
    adminHandler := handler.NewAdminHandler(cfg, locationRepo, routeRepo, airlineRepo, flightRepo, userRepo, bookingRepo)
    publicHandler := handler.NewPublicHandler(flightRepo)
    bookingHandler := handler.NewBookingHandler(bookingLedger, bookingRepo, flightRepo, func(evt queue.BookingEvent) error {
        return queuepublisher.PublishBookingEvent(context.Background(), evt)
    })

    e := echo.New()
    e.Use(echomw.Logger())
    e.Use(echomw.Recover())

    // Optional Redis-backed middlewares; both fail open when Redis
    // is not reachable at startup.
    var publicExtra []echo.MiddlewareFunc
    var bookingExtra []echo.MiddlewareFunc
    if rdb := config.NewRedisClient(); rdb != nil {
        rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
        publicExtra = append(publicExtra, rl, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
        bookingExtra = append(bookingExtra, rl)
    }

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authHandler, cfg.JWTSecret, sessionRepo)
    router.RegisterPublic(e, publicHandler, publicExtra...)
    router.RegisterAdmin(e, adminHandler, bookingHandler, cfg.JWTSecret, sessionRepo)
    router.RegisterBookings(e, bookingHandler, cfg.JWTSecret, sessionRepo, bookingExtra...)

    // Background consumer mirrors booking events into logs/booking.log.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
