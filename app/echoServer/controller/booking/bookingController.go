package booking

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	bs "stayneos/service/booking"
)

const dateLayout = "2006-01-02"

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/properties/:id/quote
// @Summary      Quote a stay
// @Description  Itemized price for a property and date range, no booking created
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id       path  int       true  "Property ID"
// @Param        payload  body  QuoteReq  true  "Stay dates"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/properties/{id}/quote [post]
func (h *Controller) Quote(c echo.Context) error {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || propertyID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req QuoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	pb, err := h.Svc.Quote(c.Request().Context(), propertyID, stayRequest(req.CheckIn, req.CheckOut, req.Guests))
	if err != nil {
		return h.fail(c, "quote", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"price": pb})
}

// POST /v1/bookings
// @Summary      Create booking
// @Description  Validates dates, checks availability, prices the stay and opens a payment intent
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateBookingReq  true  "Booking payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any "dates unavailable"
// @Security     BearerAuth
// @Router       /v1/bookings [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.PropertyID, stayRequest(req.CheckIn, req.CheckOut, req.Guests))
	if err != nil {
		return h.fail(c, "booking create", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":     out.BookingID,
		"booking_number": out.BookingNumber,
		"total":          out.Total,
		"currency":       out.Currency,
		"status":         "PENDING",
		"payment_status": out.PaymentStatus,
		"client_secret":  out.ClientSecret,
	})
}

// GET /v1/bookings/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.Detail(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "booking detail", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": b})
}

// GET /v1/bookings/my
func (h *Controller) My(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.MyBookings(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("my bookings", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/bookings/:id/cancel
// @Summary      Cancel booking
// @Tags         bookings
// @Param        id  path  int  true  "Booking ID"
// @Success      200  {object}  map[string]any
// @Failure      409  {object}  map[string]any "already cancelled or not cancellable"
// @Security     BearerAuth
// @Router       /v1/bookings/{id}/cancel [post]
func (h *Controller) Cancel(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CancelBookingReq
	_ = c.Bind(&req)
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Cancel(c.Request().Context(), uid, id, req.Reason); err != nil {
		return h.fail(c, "booking cancel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cancelled"})
}

// POST /v1/bookings/:id/checkin
func (h *Controller) CheckIn(c echo.Context) error {
	return h.doTransition(c, "checkin", h.Svc.CheckIn)
}

// POST /v1/bookings/:id/checkout
func (h *Controller) CheckOut(c echo.Context) error {
	return h.doTransition(c, "checkout", h.Svc.CheckOut)
}

func (h *Controller) doTransition(c echo.Context, op string, fn func(ctx context.Context, id int64) error) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := fn(c.Request().Context(), id); err != nil {
		return h.fail(c, op, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch bs.Code(err) {
	case bs.ErrInvalidDate, bs.ErrPastCheckIn, bs.ErrInvalidRange, bs.ErrBelowMinStay, bs.ErrAboveMaxStay:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": string(bs.Code(err))})
	case bs.ErrPropertyNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "property not found"})
	case bs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
	case bs.ErrNotOwner:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case bs.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": "dates unavailable"})
	case bs.ErrAlreadyCancelled, bs.ErrNotCancellable, bs.ErrNotConfirmed, bs.ErrNotCheckedIn, bs.ErrBadTransition:
		return c.JSON(http.StatusConflict, echo.Map{"message": string(bs.Code(err))})
	default:
		h.Log.Error(op, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// stayRequest parses YYYY-MM-DD dates; a malformed date becomes a zero time
// that the validator rejects as INVALID_DATE.
func stayRequest(checkIn, checkOut string, guests int) bs.StayRequest {
	ci, _ := time.Parse(dateLayout, checkIn)
	co, _ := time.Parse(dateLayout, checkOut)
	return bs.StayRequest{CheckIn: ci, CheckOut: co, Guests: guests}
}
