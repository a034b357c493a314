// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a court booking is successfully
// confirmed. It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64  `json:"booking_id"`
	UserID      uint64  `json:"user_id"`
	CourtID     uint64  `json:"court_id"`
	CourtName   string  `json:"court_name"`
	BookingTime string  `json:"booking_time"`
	Duration    int     `json:"duration"`
	Cost        float64 `json:"cost"`
	ConfirmedAt string  `json:"confirmed_at"`
}

// MatchScheduledEvent is published when a match between two players is
// scheduled on a court.
type MatchScheduledEvent struct {
	MatchID     uint64 `json:"match_id"`
	CourtID     uint64 `json:"court_id"`
	CourtName   string `json:"court_name"`
	Player1ID   uint64 `json:"player1_id"`
	Player2ID   uint64 `json:"player2_id"`
	MatchTime   string `json:"match_time"`
	Duration    int    `json:"duration"`
	ScheduledAt string `json:"scheduled_at"`
}
