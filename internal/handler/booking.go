package handler // handler defines http handlers

import (
    "context"
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/airtik/flight-reservation/internal/ledger"
    "github.com/airtik/flight-reservation/internal/model"
    "github.com/airtik/flight-reservation/internal/queue"
    "github.com/airtik/flight-reservation/internal/repository"
)

// BookingLedger is the slice of the ledger the booking handler
// needs; tests substitute a fake.
type BookingLedger interface {
    CreateBooking(ctx context.Context, flightID, userID uint64, requestedSeats int) (*model.Booking, error)
    CancelBooking(ctx context.Context, bookingID uint64, requesterIsAdmin bool) (*model.Booking, error)
    SetPaymentStatus(ctx context.Context, bookingID uint64, status string) (*model.Booking, error)
}

// BookingHandler serves booking endpoints.  Publish sends a booking
// event to the message queue; it may be nil when the queue is
// disabled, and failures are logged and swallowed so a broker outage
// never blocks a booking.
type BookingHandler struct {
    Ledger      BookingLedger
    BookingRepo *repository.BookingRepo
    FlightRepo  *repository.FlightRepo
    Publish     func(evt queue.BookingEvent) error
}

// NewBookingHandler constructs a BookingHandler and panics when the
// ledger or a repository is nil.
func NewBookingHandler(l BookingLedger, bk *repository.BookingRepo, fl *repository.FlightRepo, publish func(queue.BookingEvent) error) *BookingHandler {
    if l == nil || bk == nil || fl == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Ledger: l, BookingRepo: bk, FlightRepo: fl, Publish: publish}
}

type createBookingReq struct {
    FlightID uint64 `json:"flight_id"`
    Seats    int    `json:"seats"`
}

// CreateBooking handles POST /v1/bookings: validate the request,
// run it through the ledger and publish a booking.created event.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body createBookingReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    b, err := h.Ledger.CreateBooking(c.Request().Context(), body.FlightID, uid, body.Seats)
    if err != nil {
        return bookingError(c, err)
    }
    h.publishEvent(c, queue.EventBookingCreated, b, uid)
    return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// MyBookings handles GET /v1/bookings and lists the caller's
// bookings with flight details joined in.
func (h *BookingHandler) MyBookings(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    out, err := h.BookingRepo.ListByUser(c.Request().Context(), uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// ListAll handles GET /v1/admin/bookings and lists every booking
// with user and flight details.
func (h *BookingHandler) ListAll(c echo.Context) error {
    out, err := h.BookingRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Cancel handles DELETE /v1/bookings/:id.  Cancellation is an
// admin-only operation; the ledger releases the booked seats back
// to the flight.
func (h *BookingHandler) Cancel(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    b, err := h.Ledger.CancelBooking(c.Request().Context(), id, isAdmin(c))
    if err != nil {
        return bookingError(c, err)
    }
    h.publishEvent(c, queue.EventBookingCancelled, b, uid)
    return c.JSON(http.StatusOK, echo.Map{"cancelled": b})
}

type paymentReq struct {
    Status string `json:"status"`
}

// UpdatePayment handles PUT /v1/bookings/:id/payment.  Payment state
// never touches seat accounting.
func (h *BookingHandler) UpdatePayment(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body paymentReq
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    // Owners may update their own bookings; admins may update any.
    existing, err := h.BookingRepo.Get(c.Request().Context(), id)
    if err != nil {
        return bookingError(c, err)
    }
    if existing.UserID != uid && !isAdmin(c) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    b, err := h.Ledger.SetPaymentStatus(c.Request().Context(), id, strings.ToUpper(strings.TrimSpace(body.Status)))
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// bookingError maps ledger sentinels onto HTTP statuses.  Capacity
// failures carry the ledger's message so the client can show how
// many seats remain.
func bookingError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, ledger.ErrFlightNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
    case errors.Is(err, ledger.ErrBookingNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case errors.Is(err, ledger.ErrInsufficientCapacity):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, ledger.ErrInvalidInput):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    case errors.Is(err, ledger.ErrPermissionDenied):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, ledger.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking conflicted with another request, try again"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking operation failed"})
}

// publishEvent enriches the booking with flight fields and hands it
// to the queue.  Any failure is logged and dropped.
func (h *BookingHandler) publishEvent(c echo.Context, typ string, b *model.Booking, userID uint64) {
    if h.Publish == nil {
        return
    }
    evt := queue.BookingEvent{
        Type:            typ,
        TicketCode:      b.TicketCode,
        FlightID:        b.FlightID,
        SeatLabels:      b.SeatLabels,
        SeatCount:       b.SeatCount,
        TotalPriceCents: b.TotalPriceCents,
        UserID:          userID,
        OccurredAt:      queue.Now(),
    }
    if d, err := h.FlightRepo.Detail(c.Request().Context(), b.FlightID); err == nil {
        evt.FlightNumber = d.FlightNumber
        evt.Origin = d.Origin
        evt.Destination = d.Destination
    }
    if err := h.Publish(evt); err != nil {
        c.Logger().Warnf("publish %s event: %v", typ, err)
    }
}
