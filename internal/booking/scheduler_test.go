package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tennis-court-booking/internal/model"
	"github.com/iliyamo/tennis-court-booking/internal/repository"
)

type mockCourts struct{ mock.Mock }

func (m *mockCourts) GetByID(ctx context.Context, id uint64) (*model.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Court), args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type mockTimeline struct{ mock.Mock }

func (m *mockTimeline) CountOverlapping(ctx context.Context, courtID uint64, start, end time.Time) (int, error) {
	args := m.Called(ctx, courtID, start, end)
	return args.Int(0), args.Error(1)
}

func (m *mockTimeline) CreateBooking(ctx context.Context, b *model.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 1
		b.CreatedAt = time.Now().UTC()
	}
	return args.Error(0)
}

func (m *mockTimeline) CreateMatch(ctx context.Context, mt *model.Match) error {
	args := m.Called(ctx, mt)
	if args.Error(0) == nil {
		mt.ID = 1
		mt.CreatedAt = time.Now().UTC()
	}
	return args.Error(0)
}

var testNow = time.Date(2030, 6, 14, 12, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T) (*Scheduler, *mockCourts, *mockUsers, *mockTimeline) {
	t.Helper()
	courts := &mockCourts{}
	users := &mockUsers{}
	timeline := &mockTimeline{}
	s := NewScheduler(courts, users, timeline, "06:00", "22:00")
	s.Now = func() time.Time { return testNow }
	return s, courts, users, timeline
}

func centralCourt() *model.Court {
	return &model.Court{
		ID:           1,
		Name:         "Central Tennis Club",
		Latitude:     40.7128,
		Longitude:    -74.0060,
		PricePerHour: 30.00,
	}
}

func TestBookCourt(t *testing.T) {
	tomorrow10 := time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("accepts a clean slot and prices it", func(t *testing.T) {
		s, courts, _, timeline := newTestScheduler(t)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)
		timeline.On("CountOverlapping", mock.Anything, uint64(1), tomorrow10, tomorrow10.Add(time.Hour)).Return(0, nil)
		timeline.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)

		b, cost, err := s.BookCourt(context.Background(), BookingRequest{
			UserID: 7, CourtID: 1, Start: tomorrow10, Duration: 60,
		})
		require.NoError(t, err)
		assert.Equal(t, model.BookingConfirmed, b.Status)
		assert.Equal(t, uint64(7), b.UserID)
		assert.InDelta(t, 30.00, cost, 1e-9)
		timeline.AssertExpectations(t)
	})

	t.Run("rejects unknown court", func(t *testing.T) {
		s, courts, _, timeline := newTestScheduler(t)
		courts.On("GetByID", mock.Anything, uint64(99)).Return(nil, repository.ErrCourtNotFound)

		_, _, err := s.BookCourt(context.Background(), BookingRequest{
			UserID: 7, CourtID: 99, Start: tomorrow10, Duration: 60,
		})
		assert.ErrorIs(t, err, ErrCourtNotFound)
		timeline.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		s, courts, _, timeline := newTestScheduler(t)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)

		for _, d := range []int{0, -30} {
			_, _, err := s.BookCourt(context.Background(), BookingRequest{
				UserID: 7, CourtID: 1, Start: tomorrow10, Duration: d,
			})
			assert.ErrorIs(t, err, ErrInvalidTime)
		}
		timeline.AssertNotCalled(t, "CountOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects start in the past", func(t *testing.T) {
		s, courts, _, _ := newTestScheduler(t)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)

		_, _, err := s.BookCourt(context.Background(), BookingRequest{
			UserID: 7, CourtID: 1, Start: testNow.Add(-time.Hour), Duration: 60,
		})
		assert.ErrorIs(t, err, ErrInvalidTime)
	})

	t.Run("rejects window outside operating hours", func(t *testing.T) {
		s, courts, _, _ := newTestScheduler(t)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)

		lateStart := time.Date(2030, 6, 15, 21, 30, 0, 0, time.UTC)
		_, _, err := s.BookCourt(context.Background(), BookingRequest{
			UserID: 7, CourtID: 1, Start: lateStart, Duration: 60,
		})
		assert.ErrorIs(t, err, ErrInvalidTime)
	})

	t.Run("rejects overlapping slot", func(t *testing.T) {
		s, courts, _, timeline := newTestScheduler(t)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)
		timeline.On("CountOverlapping", mock.Anything, uint64(1), tomorrow10, tomorrow10.Add(time.Hour)).Return(1, nil)

		_, _, err := s.BookCourt(context.Background(), BookingRequest{
			UserID: 7, CourtID: 1, Start: tomorrow10, Duration: 60,
		})
		assert.ErrorIs(t, err, ErrConflict)
		timeline.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("fails closed when the overlap scan errors", func(t *testing.T) {
		s, courts, _, timeline := newTestScheduler(t)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)
		timeline.On("CountOverlapping", mock.Anything, uint64(1), tomorrow10, tomorrow10.Add(time.Hour)).
			Return(0, errors.New("store unavailable"))

		_, _, err := s.BookCourt(context.Background(), BookingRequest{
			UserID: 7, CourtID: 1, Start: tomorrow10, Duration: 60,
		})
		assert.ErrorIs(t, err, ErrConflict)
		timeline.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("maps a losing race to a conflict", func(t *testing.T) {
		s, courts, _, timeline := newTestScheduler(t)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)
		timeline.On("CountOverlapping", mock.Anything, uint64(1), tomorrow10, tomorrow10.Add(time.Hour)).Return(0, nil)
		timeline.On("CreateBooking", mock.Anything, mock.Anything).Return(repository.ErrOverlap)

		_, _, err := s.BookCourt(context.Background(), BookingRequest{
			UserID: 7, CourtID: 1, Start: tomorrow10, Duration: 60,
		})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestHasConflict(t *testing.T) {
	start := time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("adjacent windows do not conflict", func(t *testing.T) {
		// The store is queried with the half-open interval; a booking
		// ending exactly at the proposed start is excluded by the
		// predicate, so the scan comes back empty.
		s, _, _, timeline := newTestScheduler(t)
		timeline.On("CountOverlapping", mock.Anything, uint64(1), start, start.Add(time.Hour)).Return(0, nil)
		assert.False(t, s.HasConflict(context.Background(), 1, start, 60))
	})

	t.Run("reports true on scan failure", func(t *testing.T) {
		s, _, _, timeline := newTestScheduler(t)
		timeline.On("CountOverlapping", mock.Anything, uint64(1), start, start.Add(time.Hour)).
			Return(0, errors.New("connection refused"))
		assert.True(t, s.HasConflict(context.Background(), 1, start, 60))
	})
}

func TestSetupMatch(t *testing.T) {
	tomorrow10 := time.Date(2030, 6, 15, 10, 0, 0, 0, time.UTC)
	opponent := &model.User{ID: 9, Username: "rival", Email: "rival@example.com"}

	t.Run("schedules a match with the default duration", func(t *testing.T) {
		s, courts, users, timeline := newTestScheduler(t)
		users.On("GetByEmail", mock.Anything, "rival@example.com").Return(opponent, nil)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)
		timeline.On("CountOverlapping", mock.Anything, uint64(1), tomorrow10, tomorrow10.Add(time.Hour)).Return(0, nil)
		timeline.On("CreateMatch", mock.Anything, mock.Anything).Return(nil)

		m, err := s.SetupMatch(context.Background(), MatchRequest{
			PlayerID: 7, OpponentEmail: "rival@example.com", CourtID: 1, Start: tomorrow10,
		})
		require.NoError(t, err)
		assert.Equal(t, 60, m.Duration)
		assert.Equal(t, uint64(7), m.Player1ID)
		assert.Equal(t, uint64(9), m.Player2ID)
		assert.Equal(t, model.MatchScheduled, m.Status)
	})

	t.Run("rejects unknown opponent before any conflict check", func(t *testing.T) {
		s, _, users, timeline := newTestScheduler(t)
		users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows)

		_, err := s.SetupMatch(context.Background(), MatchRequest{
			PlayerID: 7, OpponentEmail: "ghost@example.com", CourtID: 1, Start: tomorrow10, Duration: 60,
		})
		assert.ErrorIs(t, err, ErrOpponentNotFound)
		timeline.AssertNotCalled(t, "CountOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		timeline.AssertNotCalled(t, "CreateMatch", mock.Anything, mock.Anything)
	})

	t.Run("rejects playing against yourself", func(t *testing.T) {
		s, _, users, _ := newTestScheduler(t)
		users.On("GetByEmail", mock.Anything, "me@example.com").Return(&model.User{ID: 7}, nil)

		_, err := s.SetupMatch(context.Background(), MatchRequest{
			PlayerID: 7, OpponentEmail: "me@example.com", CourtID: 1, Start: tomorrow10, Duration: 60,
		})
		assert.ErrorIs(t, err, ErrSameOpponent)
	})

	t.Run("rejects occupied slot", func(t *testing.T) {
		s, courts, users, timeline := newTestScheduler(t)
		users.On("GetByEmail", mock.Anything, "rival@example.com").Return(opponent, nil)
		courts.On("GetByID", mock.Anything, uint64(1)).Return(centralCourt(), nil)
		timeline.On("CountOverlapping", mock.Anything, uint64(1), tomorrow10, tomorrow10.Add(90*time.Minute)).Return(1, nil)

		_, err := s.SetupMatch(context.Background(), MatchRequest{
			PlayerID: 7, OpponentEmail: "rival@example.com", CourtID: 1, Start: tomorrow10, Duration: 90,
		})
		assert.ErrorIs(t, err, ErrConflict)
		timeline.AssertNotCalled(t, "CreateMatch", mock.Anything, mock.Anything)
	})
}
