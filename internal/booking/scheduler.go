package booking

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/tennis-court-booking/internal/model"
	"github.com/iliyamo/tennis-court-booking/internal/repository"
	"github.com/iliyamo/tennis-court-booking/internal/utils"
)

// CourtStore resolves courts referenced by requests.
type CourtStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Court, error)
}

// UserDirectory resolves match opponents by email.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// TimelineStore reads and writes the shared per-court timeline of
// bookings and matches. Create operations must re-check the
// non-overlap invariant transactionally and return
// repository.ErrOverlap when a concurrent writer got there first.
type TimelineStore interface {
	CountOverlapping(ctx context.Context, courtID uint64, start, end time.Time) (int, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
	CreateMatch(ctx context.Context, m *model.Match) error
}

// Scheduler validates proposed bookings and matches, checks the court
// timeline for conflicts and persists accepted requests. Each request
// moves through Validated -> ConflictChecked -> Persisted, rejecting
// with a typed error at the first failing step.
type Scheduler struct {
	Courts   CourtStore
	Users    UserDirectory
	Timeline TimelineStore
	Opening  string // facility opening time, "15:04"
	Closing  string // facility closing time, "15:04"
	Now      func() time.Time
}

// NewScheduler constructs a Scheduler. Opening and closing default to
// the 06:00-22:00 facility hours when empty.
func NewScheduler(courts CourtStore, users UserDirectory, timeline TimelineStore, opening, closing string) *Scheduler {
	if courts == nil || users == nil || timeline == nil {
		panic("nil store passed to NewScheduler")
	}
	if opening == "" {
		opening = "06:00"
	}
	if closing == "" {
		closing = "22:00"
	}
	return &Scheduler{
		Courts:   courts,
		Users:    users,
		Timeline: timeline,
		Opening:  opening,
		Closing:  closing,
		Now:      func() time.Time { return time.Now().UTC() },
	}
}

// BookingRequest is a proposed single-user court reservation.
type BookingRequest struct {
	UserID   uint64
	CourtID  uint64
	Start    time.Time
	Duration int // minutes
}

// MatchRequest is a proposed two-player booking. Duration zero means
// the 60-minute default.
type MatchRequest struct {
	PlayerID      uint64
	OpponentEmail string
	CourtID       uint64
	Start         time.Time
	Duration      int // minutes
}

// HasConflict reports whether the half-open window
// [start, start+duration) overlaps any non-cancelled booking or match
// on the court. Any store failure is treated as a conflict so that an
// outage can never let a double-booking through.
func (s *Scheduler) HasConflict(ctx context.Context, courtID uint64, start time.Time, durationMinutes int) bool {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	n, err := s.Timeline.CountOverlapping(ctx, courtID, start, end)
	if err != nil {
		log.Printf("scheduler: overlap scan failed for court %d: %v", courtID, err)
		return true
	}
	return n > 0
}

// BookCourt runs the full booking workflow and returns the persisted
// booking and its computed cost. Rejections surface as ErrCourtNotFound,
// ErrInvalidTime or ErrConflict; anything else is an internal failure.
func (s *Scheduler) BookCourt(ctx context.Context, req BookingRequest) (*model.Booking, float64, error) {
	court, err := s.Courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, repository.ErrCourtNotFound) {
			return nil, 0, ErrCourtNotFound
		}
		return nil, 0, err
	}

	if req.Duration <= 0 || !utils.IsValidBookingWindow(req.Start, req.Duration, s.Opening, s.Closing, s.Now()) {
		return nil, 0, ErrInvalidTime
	}

	if s.HasConflict(ctx, req.CourtID, req.Start, req.Duration) {
		return nil, 0, ErrConflict
	}

	b := &model.Booking{
		UserID:      req.UserID,
		CourtID:     req.CourtID,
		BookingTime: req.Start,
		Duration:    req.Duration,
		Status:      model.BookingConfirmed,
	}
	if err := s.Timeline.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			// A concurrent request won the slot between the check and
			// the insert.
			return nil, 0, ErrConflict
		}
		return nil, 0, err
	}

	cost := utils.BookingCost(req.Duration, court.PricePerHour)
	return b, cost, nil
}

// SetupMatch resolves the opponent, validates the window and persists a
// scheduled match. The opponent lookup happens before any conflict
// check; an unknown email rejects the request without touching the
// timeline.
func (s *Scheduler) SetupMatch(ctx context.Context, req MatchRequest) (*model.Match, error) {
	opponent, err := s.Users.GetByEmail(ctx, req.OpponentEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOpponentNotFound
		}
		return nil, err
	}
	if opponent.ID == req.PlayerID {
		return nil, ErrSameOpponent
	}

	if _, err := s.Courts.GetByID(ctx, req.CourtID); err != nil {
		if errors.Is(err, repository.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	duration := req.Duration
	if duration == 0 {
		duration = model.DefaultMatchDuration
	}
	if duration < 0 || !utils.IsValidBookingWindow(req.Start, duration, s.Opening, s.Closing, s.Now()) {
		return nil, ErrInvalidTime
	}

	if s.HasConflict(ctx, req.CourtID, req.Start, duration) {
		return nil, ErrConflict
	}

	m := &model.Match{
		CourtID:   req.CourtID,
		Player1ID: req.PlayerID,
		Player2ID: opponent.ID,
		MatchTime: req.Start,
		Duration:  duration,
		Status:    model.MatchScheduled,
	}
	if err := s.Timeline.CreateMatch(ctx, m); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return m, nil
}
