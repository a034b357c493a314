package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/tennis-court-booking/internal/model"
)

// ScheduleRepo persists bookings and matches and enforces the
// non-overlap invariant on each court's timeline. Bookings and matches
// share the timeline: a court occupied by either is unavailable to
// both. All timestamps are stored in UTC.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// Overlap predicate for half-open intervals: an existing window
// [s, s+d) collides with a proposed [start, end) iff s < end AND
// s+d > start. Touching boundaries do not collide.
const (
	overlappingBookingsQ = `SELECT id FROM bookings
               WHERE court_id = ? AND status <> 'cancelled'
                 AND booking_time < ? AND DATE_ADD(booking_time, INTERVAL duration MINUTE) > ?`
	overlappingMatchesQ = `SELECT id FROM matches
               WHERE court_id = ? AND status <> 'cancelled'
                 AND match_time < ? AND DATE_ADD(match_time, INTERVAL duration MINUTE) > ?`
)

// CountOverlapping returns how many non-cancelled bookings and matches
// on the court overlap the half-open interval [start, end).
func (r *ScheduleRepo) CountOverlapping(ctx context.Context, courtID uint64, start, end time.Time) (int, error) {
	const q = `SELECT
                 (SELECT COUNT(*) FROM bookings
                   WHERE court_id = ? AND status <> 'cancelled'
                     AND booking_time < ? AND DATE_ADD(booking_time, INTERVAL duration MINUTE) > ?)
               + (SELECT COUNT(*) FROM matches
                   WHERE court_id = ? AND status <> 'cancelled'
                     AND match_time < ? AND DATE_ADD(match_time, INTERVAL duration MINUTE) > ?)`
	var n int
	err := r.db.QueryRowContext(ctx, q,
		courtID, end, start,
		courtID, end, start,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// lockOverlapsTx locks any rows on the court's timeline that overlap
// [start, end) and reports whether at least one exists. Locking the
// candidate rows keeps a second concurrent insert for the same window
// waiting until this transaction commits, so exactly one wins.
func lockOverlapsTx(ctx context.Context, tx *sql.Tx, courtID uint64, start, end time.Time) (bool, error) {
	var id uint64
	err := tx.QueryRowContext(ctx, overlappingBookingsQ+` LIMIT 1 FOR UPDATE`, courtID, end, start).Scan(&id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	err = tx.QueryRowContext(ctx, overlappingMatchesQ+` LIMIT 1 FOR UPDATE`, courtID, end, start).Scan(&id)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return false, nil
}

// CreateBooking inserts a booking inside a transaction that re-checks
// the non-overlap invariant with row locks. It returns ErrOverlap when
// another non-cancelled booking or match occupies the window. The
// generated ID and creation timestamp are populated on success.
func (r *ScheduleRepo) CreateBooking(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	taken, err := lockOverlapsTx(ctx, tx, b.CourtID, b.BookingTime, b.End())
	if err != nil {
		return err
	}
	if taken {
		return ErrOverlap
	}

	const q = `INSERT INTO bookings (user_id, court_id, booking_time, duration, status) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.CourtID, b.BookingTime, b.Duration, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT created_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CreateMatch inserts a match under the same transactional overlap
// guard as CreateBooking.
func (r *ScheduleRepo) CreateMatch(ctx context.Context, m *model.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	taken, err := lockOverlapsTx(ctx, tx, m.CourtID, m.MatchTime, m.End())
	if err != nil {
		return err
	}
	if taken {
		return ErrOverlap
	}

	const q = `INSERT INTO matches (court_id, player1_id, player2_id, match_time, duration, status) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, m.CourtID, m.Player1ID, m.Player2ID, m.MatchTime, m.Duration, m.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	const sel = `SELECT created_at FROM matches WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, m.ID).Scan(&m.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// BookingDetail pairs a booking with court information for display to
// the owning user.
type BookingDetail struct {
	ID           uint64  `json:"id"`
	CourtID      uint64  `json:"court_id"`
	CourtName    string  `json:"court_name"`
	BookingTime  string  `json:"booking_time"`
	Duration     int     `json:"duration"`
	Status       string  `json:"status"`
	PricePerHour float64 `json:"price_per_hour"`
}

// ListBookingsByUser returns all bookings for the given user, newest
// first. When none exist an empty slice is returned.
func (r *ScheduleRepo) ListBookingsByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.court_id, c.name, b.booking_time, b.duration, b.status, c.price_per_hour
               FROM bookings b
               JOIN courts c ON c.id = b.court_id
               WHERE b.user_id = ?
               ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var ts time.Time
		if err := rows.Scan(&d.ID, &d.CourtID, &d.CourtName, &ts, &d.Duration, &d.Status, &d.PricePerHour); err != nil {
			return nil, err
		}
		d.BookingTime = ts.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// MatchDetail pairs a match with court and player information.
type MatchDetail struct {
	ID        uint64 `json:"id"`
	CourtID   uint64 `json:"court_id"`
	CourtName string `json:"court_name"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	MatchTime string `json:"match_time"`
	Duration  int    `json:"duration"`
	Status    string `json:"status"`
}

// ListMatchesByUser returns all matches the user participates in as
// either player, newest first.
func (r *ScheduleRepo) ListMatchesByUser(ctx context.Context, userID uint64) ([]MatchDetail, error) {
	const q = `SELECT m.id, m.court_id, c.name, p1.username, p2.username, m.match_time, m.duration, m.status
               FROM matches m
               JOIN courts c ON c.id = m.court_id
               JOIN users p1 ON p1.id = m.player1_id
               JOIN users p2 ON p2.id = m.player2_id
               WHERE m.player1_id = ? OR m.player2_id = ?
               ORDER BY m.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]MatchDetail, 0)
	for rows.Next() {
		var d MatchDetail
		var ts time.Time
		if err := rows.Scan(&d.ID, &d.CourtID, &d.CourtName, &d.Player1, &d.Player2, &ts, &d.Duration, &d.Status); err != nil {
			return nil, err
		}
		d.MatchTime = ts.UTC().Format(time.RFC3339)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// CancelBooking marks a booking cancelled on behalf of its owner. It
// returns sql.ErrNoRows when the booking does not exist, ErrForbidden
// when it belongs to another user, and ErrStarted when its window has
// already begun. Cancelled rows are kept, never deleted.
func (r *ScheduleRepo) CancelBooking(ctx context.Context, bookingID, userID uint64, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID uint64
	var start time.Time
	const sel = `SELECT user_id, booking_time FROM bookings WHERE id = ? FOR UPDATE`
	if err := tx.QueryRowContext(ctx, sel, bookingID).Scan(&ownerID, &start); err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	if !start.After(now) {
		return ErrStarted
	}
	const upd = `UPDATE bookings SET status = 'cancelled' WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, bookingID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CancelMatch marks a match cancelled on behalf of either participant.
// Error contract matches CancelBooking.
func (r *ScheduleRepo) CancelMatch(ctx context.Context, matchID, userID uint64, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var p1, p2 uint64
	var start time.Time
	const sel = `SELECT player1_id, player2_id, match_time FROM matches WHERE id = ? FOR UPDATE`
	if err := tx.QueryRowContext(ctx, sel, matchID).Scan(&p1, &p2, &start); err != nil {
		return err
	}
	if p1 != userID && p2 != userID {
		return ErrForbidden
	}
	if !start.After(now) {
		return ErrStarted
	}
	const upd = `UPDATE matches SET status = 'cancelled' WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, matchID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
