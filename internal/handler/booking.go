package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tennis-court-booking/internal/booking"
	"github.com/iliyamo/tennis-court-booking/internal/queue"
	"github.com/iliyamo/tennis-court-booking/internal/repository"
	"github.com/iliyamo/tennis-court-booking/internal/service"
	"github.com/iliyamo/tennis-court-booking/internal/utils"
)

// BookingHandler exposes the player booking workflow on top of the
// scheduler. All methods assume JWT authentication and role validation
// have already run in middleware.
type BookingHandler struct {
	Scheduler *booking.Scheduler
	Schedule  *repository.ScheduleRepo
	Courts    *repository.CourtRepo
}

// NewBookingHandler constructs a BookingHandler. All dependencies must
// be non-nil.
func NewBookingHandler(sched *booking.Scheduler, schedule *repository.ScheduleRepo, courts *repository.CourtRepo) *BookingHandler {
	if sched == nil || schedule == nil || courts == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Scheduler: sched, Schedule: schedule, Courts: courts}
}

type bookCourtReq struct {
	BookingTime string `json:"booking_time" form:"booking_time"`
	Duration    int    `json:"duration" form:"duration"`
}

// parseBookingTime accepts the default "2006-01-02 15:04" layout and
// falls back to RFC3339 for API clients that send zoned timestamps.
func parseBookingTime(s string) (time.Time, bool) {
	if t, ok := utils.ParseTimestamp(s, utils.TimeLayout); ok {
		return t, true
	}
	if t, ok := utils.ParseTimestamp(s, time.RFC3339); ok {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// rejectBooking translates scheduler rejections into HTTP responses.
// Unexpected errors are logged with context and surfaced as a generic
// failure message.
func rejectBooking(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidTime), errors.Is(err, booking.ErrSameOpponent):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrCourtNotFound), errors.Is(err, booking.ErrOpponentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		log.Printf("booking: request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
}

// BookCourt handles POST /v1/courts/:id/bookings. The body carries
// booking_time and duration (minutes). On success it returns 201 with
// the confirmed booking and its computed cost, and publishes a
// booking.confirmed event for downstream consumers.
func (h *BookingHandler) BookCourt(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || courtID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	var req bookCourtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, ok := parseBookingTime(req.BookingTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time"})
	}

	ctx := c.Request().Context()
	b, cost, err := h.Scheduler.BookCourt(ctx, booking.BookingRequest{
		UserID:   userID,
		CourtID:  courtID,
		Start:    start,
		Duration: req.Duration,
	})
	if err != nil {
		return rejectBooking(c, err)
	}

	// Event publication is best effort; a broker outage must not fail
	// a booking that is already persisted.
	if court, err := h.Courts.GetByID(ctx, courtID); err == nil {
		_ = service.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
			BookingID:   b.ID,
			UserID:      b.UserID,
			CourtID:     b.CourtID,
			CourtName:   court.Name,
			BookingTime: b.BookingTime.UTC().Format(time.RFC3339),
			Duration:    b.Duration,
			Cost:        cost,
			ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":   b.ID,
		"court_id":     b.CourtID,
		"booking_time": b.BookingTime.UTC().Format(time.RFC3339),
		"duration":     b.Duration,
		"status":       b.Status,
		"cost":         cost,
		"cost_display": utils.FormatPrice(cost),
	})
}

// ListMyBookings handles GET /v1/my-bookings, returning all bookings of
// the current user, newest first.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Schedule.ListBookingsByUser(c.Request().Context(), userID)
	if err != nil {
		log.Printf("booking: list for user %d failed: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CancelBooking handles DELETE /v1/bookings/:id. It marks the booking
// cancelled when it belongs to the caller and has not started yet; the
// record itself is retained.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	err = h.Schedule.CancelBooking(c.Request().Context(), bookingID, userID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrStarted):
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking already started"})
		default:
			log.Printf("booking: cancel %d failed: %v", bookingID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
