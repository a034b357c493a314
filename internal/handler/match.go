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
)

// MatchHandler exposes two-player match setup. The opponent is resolved
// by email; matches occupy the court timeline exactly like bookings.
type MatchHandler struct {
	Scheduler *booking.Scheduler
	Schedule  *repository.ScheduleRepo
	Courts    *repository.CourtRepo
}

// NewMatchHandler constructs a MatchHandler. All dependencies must be
// non-nil.
func NewMatchHandler(sched *booking.Scheduler, schedule *repository.ScheduleRepo, courts *repository.CourtRepo) *MatchHandler {
	if sched == nil || schedule == nil || courts == nil {
		panic("nil dependency passed to NewMatchHandler")
	}
	return &MatchHandler{Scheduler: sched, Schedule: schedule, Courts: courts}
}

type setupMatchReq struct {
	OpponentEmail string `json:"opponent_email" form:"opponent_email"`
	CourtID       uint64 `json:"court_id" form:"court_id"`
	MatchTime     string `json:"match_time" form:"match_time"`
	Duration      int    `json:"duration" form:"duration"`
}

// SetupMatch handles POST /v1/matches. An unknown opponent email
// rejects the request with 404 before any conflict check runs. Omitted
// duration defaults to 60 minutes.
func (h *MatchHandler) SetupMatch(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req setupMatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.OpponentEmail == "" || req.CourtID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "opponent_email and court_id required"})
	}
	start, ok := parseBookingTime(req.MatchTime)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time"})
	}

	ctx := c.Request().Context()
	m, err := h.Scheduler.SetupMatch(ctx, booking.MatchRequest{
		PlayerID:      userID,
		OpponentEmail: req.OpponentEmail,
		CourtID:       req.CourtID,
		Start:         start,
		Duration:      req.Duration,
	})
	if err != nil {
		return rejectBooking(c, err)
	}

	if court, err := h.Courts.GetByID(ctx, m.CourtID); err == nil {
		_ = service.PublishMatchScheduled(ctx, queue.MatchScheduledEvent{
			MatchID:     m.ID,
			CourtID:     m.CourtID,
			CourtName:   court.Name,
			Player1ID:   m.Player1ID,
			Player2ID:   m.Player2ID,
			MatchTime:   m.MatchTime.UTC().Format(time.RFC3339),
			Duration:    m.Duration,
			ScheduledAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"match_id":   m.ID,
		"court_id":   m.CourtID,
		"player1_id": m.Player1ID,
		"player2_id": m.Player2ID,
		"match_time": m.MatchTime.UTC().Format(time.RFC3339),
		"duration":   m.Duration,
		"status":     m.Status,
	})
}

// ListMyMatches handles GET /v1/my-matches, returning matches where the
// current user plays on either side.
func (h *MatchHandler) ListMyMatches(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Schedule.ListMatchesByUser(c.Request().Context(), userID)
	if err != nil {
		log.Printf("match: list for user %d failed: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load matches"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CancelMatch handles DELETE /v1/matches/:id. Either participant may
// cancel a match that has not started yet.
func (h *MatchHandler) CancelMatch(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || matchID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}
	err = h.Schedule.CancelMatch(c.Request().Context(), matchID, userID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrStarted):
			return c.JSON(http.StatusConflict, echo.Map{"error": "match already started"})
		default:
			log.Printf("match: cancel %d failed: %v", matchID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel match"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
