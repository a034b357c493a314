package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// schema holds the DDL for all tables. Statements are idempotent so the
// server can run them on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'PLAYER',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS courts (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(255) NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		available_hours TEXT NOT NULL,
		price_per_hour DECIMAL(10,2) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		court_id BIGINT UNSIGNED NOT NULL,
		booking_time DATETIME NOT NULL,
		duration INT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_bookings_court_time (court_id, booking_time),
		KEY idx_bookings_user (user_id),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_bookings_court FOREIGN KEY (court_id) REFERENCES courts (id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS matches (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		court_id BIGINT UNSIGNED NOT NULL,
		player1_id BIGINT UNSIGNED NOT NULL,
		player2_id BIGINT UNSIGNED NOT NULL,
		match_time DATETIME NOT NULL,
		duration INT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_matches_court_time (court_id, match_time),
		KEY idx_matches_player1 (player1_id),
		KEY idx_matches_player2 (player2_id),
		CONSTRAINT fk_matches_court FOREIGN KEY (court_id) REFERENCES courts (id),
		CONSTRAINT fk_matches_player1 FOREIGN KEY (player1_id) REFERENCES users (id),
		CONSTRAINT fk_matches_player2 FOREIGN KEY (player2_id) REFERENCES users (id)
	) ENGINE=InnoDB`,
}

// Migrate creates all tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// weeklyHours is the default schedule applied to seeded courts: open every
// day from 06:00 to 22:00, stored as JSON text in available_hours.
const weeklyHours = `{"monday":["06:00","22:00"],"tuesday":["06:00","22:00"],"wednesday":["06:00","22:00"],"thursday":["06:00","22:00"],"friday":["06:00","22:00"],"saturday":["06:00","22:00"],"sunday":["06:00","22:00"]}`

type seedCourt struct {
	name    string
	address string
	lat     float64
	lng     float64
	price   float64
}

var sampleCourts = []seedCourt{
	{"Central Tennis Club", "123 Main St, Downtown", 40.7128, -74.0060, 30.00},
	{"Riverside Courts", "456 River Rd, Riverside", 40.7589, -73.9851, 25.00},
	{"Park View Tennis", "789 Park Ave, Uptown", 40.7829, -73.9654, 35.00},
	{"Community Tennis Center", "321 Community Blvd, Suburbs", 40.7549, -73.9840, 20.00},
}

// SeedCourts inserts a small starter catalog of courts when the courts
// table is empty. It is a no-op on subsequent starts.
func SeedCourts(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courts`).Scan(&n); err != nil {
		return fmt.Errorf("seed: count courts: %w", err)
	}
	if n > 0 {
		return nil
	}
	const q = `INSERT INTO courts (name, address, latitude, longitude, available_hours, price_per_hour)
	           VALUES (?, ?, ?, ?, ?, ?)`
	for _, c := range sampleCourts {
		if _, err := db.ExecContext(ctx, q, c.name, c.address, c.lat, c.lng, weeklyHours, c.price); err != nil {
			return fmt.Errorf("seed: insert court %q: %w", c.name, err)
		}
	}
	log.Printf("database: seeded %d courts", len(sampleCourts))
	return nil
}
