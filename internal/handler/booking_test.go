package handler

import (
    "context"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/airtik/flight-reservation/internal/ledger"
    "github.com/airtik/flight-reservation/internal/model"
    "github.com/airtik/flight-reservation/internal/repository"
)

// fakeLedger scripts ledger outcomes so status mapping can be tested
// without a database.
type fakeLedger struct {
    createErr error
    cancelErr error
    booking   *model.Booking
}

func (f *fakeLedger) CreateBooking(_ context.Context, flightID, userID uint64, seats int) (*model.Booking, error) {
    if f.createErr != nil {
        return nil, f.createErr
    }
    b := *f.booking
    b.FlightID = flightID
    b.UserID = userID
    b.SeatCount = seats
    return &b, nil
}

func (f *fakeLedger) CancelBooking(_ context.Context, bookingID uint64, _ bool) (*model.Booking, error) {
    if f.cancelErr != nil {
        return nil, f.cancelErr
    }
    b := *f.booking
    b.ID = bookingID
    return &b, nil
}

func (f *fakeLedger) SetPaymentStatus(_ context.Context, bookingID uint64, status string) (*model.Booking, error) {
    b := *f.booking
    b.ID = bookingID
    b.PaymentStatus = status
    return &b, nil
}

func newBookingTestHandler(l BookingLedger) *BookingHandler {
    // Repos over a nil DB are fine here: the exercised paths never
    // reach them (Publish is nil, so no flight detail lookup).
    return NewBookingHandler(l, repository.NewBookingRepo(nil), repository.NewFlightRepo(nil), nil)
}

func doRequest(h echo.HandlerFunc, method, target, body string, uid uint64, admin bool, params ...string) *httptest.ResponseRecorder {
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uid)
    c.Set("is_admin", admin)
    var names, values []string
    for i := 0; i+1 < len(params); i += 2 {
        names = append(names, params[i])
        values = append(values, params[i+1])
    }
    if len(names) > 0 {
        c.SetParamNames(names...)
        c.SetParamValues(values...)
    }
    _ = h(c)
    return rec
}

func TestCreateBookingReturns201(t *testing.T) {
    fl := &fakeLedger{booking: &model.Booking{
        ID:              1,
        TicketCode:      "TICKET-DEADBEEF",
        SeatLabels:      []string{"Seat-1", "Seat-2"},
        TotalPriceCents: 200,
        PaymentStatus:   model.PaymentCompleted,
    }}
    h := newBookingTestHandler(fl)

    rec := doRequest(h.CreateBooking, http.MethodPost, "/v1/bookings", `{"flight_id":1,"seats":2}`, 7, false)
    assert.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), "TICKET-DEADBEEF")
}

func TestCreateBookingStatusMapping(t *testing.T) {
    cases := []struct {
        err  error
        want int
    }{
        {fmt.Errorf("%w: only 1 seats are available", ledger.ErrInsufficientCapacity), http.StatusConflict},
        {fmt.Errorf("%w: seat count must be positive", ledger.ErrInvalidInput), http.StatusBadRequest},
        {ledger.ErrFlightNotFound, http.StatusNotFound},
        {ledger.ErrConflict, http.StatusConflict},
        {fmt.Errorf("boom"), http.StatusInternalServerError},
    }
    for _, tc := range cases {
        h := newBookingTestHandler(&fakeLedger{createErr: tc.err})
        rec := doRequest(h.CreateBooking, http.MethodPost, "/v1/bookings", `{"flight_id":1,"seats":2}`, 7, false)
        assert.Equal(t, tc.want, rec.Code, "error %v", tc.err)
    }
}

func TestCreateBookingCapacityMessageSurfaces(t *testing.T) {
    h := newBookingTestHandler(&fakeLedger{
        createErr: fmt.Errorf("%w: only 1 seats are available", ledger.ErrInsufficientCapacity),
    })
    rec := doRequest(h.CreateBooking, http.MethodPost, "/v1/bookings", `{"flight_id":1,"seats":2}`, 7, false)
    require.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), "only 1 seats are available")
}

func TestCreateBookingRequiresSession(t *testing.T) {
    h := newBookingTestHandler(&fakeLedger{booking: &model.Booking{}})

    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(`{"flight_id":1,"seats":1}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    _ = h.CreateBooking(e.NewContext(req, rec)) // no user_id in context
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelStatusMapping(t *testing.T) {
    cases := []struct {
        err  error
        want int
    }{
        {nil, http.StatusOK},
        {fmt.Errorf("%w: only admin can cancel a booking", ledger.ErrPermissionDenied), http.StatusForbidden},
        {ledger.ErrBookingNotFound, http.StatusNotFound},
    }
    for _, tc := range cases {
        h := newBookingTestHandler(&fakeLedger{cancelErr: tc.err, booking: &model.Booking{ID: 5, SeatCount: 2}})
        rec := doRequest(h.Cancel, http.MethodDelete, "/v1/bookings/5", "", 7, true, "id", "5")
        assert.Equal(t, tc.want, rec.Code, "error %v", tc.err)
    }
}

func TestCancelRejectsBadID(t *testing.T) {
    h := newBookingTestHandler(&fakeLedger{booking: &model.Booking{}})
    rec := doRequest(h.Cancel, http.MethodDelete, "/v1/bookings/abc", "", 7, true, "id", "abc")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
