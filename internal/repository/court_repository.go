package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/tennis-court-booking/internal/model"
)

// CourtRepo provides access to the court catalog. Courts are seeded at
// startup or managed by admins; players only read them.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo returns a new CourtRepo bound to the given database.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

// DB exposes the underlying handle for callers that need to open a
// transaction spanning multiple repositories.
func (r *CourtRepo) DB() *sql.DB { return r.db }

const courtColumns = `id, name, address, latitude, longitude, available_hours, price_per_hour, created_at, updated_at`

func scanCourt(row interface{ Scan(...any) error }) (*model.Court, error) {
	var c model.Court
	var hours sql.NullString
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Latitude, &c.Longitude,
		&hours, &c.PricePerHour, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if hours.Valid {
		c.AvailableHours = hours.String
	}
	return &c, nil
}

// GetByID returns a single court or ErrCourtNotFound.
func (r *CourtRepo) GetByID(ctx context.Context, id uint64) (*model.Court, error) {
	const q = `SELECT ` + courtColumns + ` FROM courts WHERE id = ?`
	c, err := scanCourt(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListAll returns every court ordered by id. An empty catalog yields an
// empty slice, not an error.
func (r *CourtRepo) ListAll(ctx context.Context) ([]model.Court, error) {
	const q = `SELECT ` + courtColumns + ` FROM courts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	courts := make([]model.Court, 0)
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		courts = append(courts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courts, nil
}

// Count returns the number of courts in the catalog.
func (r *CourtRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courts`).Scan(&n)
	return n, err
}

// Create inserts a court and populates its generated ID and timestamps.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
	const q = `INSERT INTO courts (name, address, latitude, longitude, available_hours, price_per_hour)
               VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		c.Name, c.Address, c.Latitude, c.Longitude, c.AvailableHours, c.PricePerHour)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM courts WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// Update overwrites a court's mutable attributes. It returns
// ErrCourtNotFound when no row matches.
func (r *CourtRepo) Update(ctx context.Context, c *model.Court) error {
	const q = `UPDATE courts
               SET name = ?, address = ?, latitude = ?, longitude = ?, available_hours = ?, price_per_hour = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		c.Name, c.Address, c.Latitude, c.Longitude, c.AvailableHours, c.PricePerHour, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either missing or unchanged; distinguish with a lookup.
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}
