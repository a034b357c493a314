package model

import "time"

// Match status lifecycle.
const (
	MatchScheduled = "scheduled"
	MatchCompleted = "completed"
	MatchCancelled = "cancelled"
)

// DefaultMatchDuration is applied when a match request omits the
// duration, in minutes.
const DefaultMatchDuration = 60

// Match records a two-player booking of a court. Matches share the
// court's timeline with bookings and are subject to the same
// non-overlap invariant. Player2 must differ from Player1.
//
// Fields:
//  ID        – primary key identifier.
//  CourtID   – court the match is played on.
//  Player1ID – user who set up the match.
//  Player2ID – opponent, resolved by email at setup time.
//  MatchTime – start of the match window (UTC).
//  Duration  – length in minutes (default 60).
//  Status    – scheduled, completed or cancelled.
//  CreatedAt – creation timestamp.
type Match struct {
	ID        uint64    // matches.id
	CourtID   uint64    // matches.court_id
	Player1ID uint64    // matches.player1_id
	Player2ID uint64    // matches.player2_id
	MatchTime time.Time // matches.match_time
	Duration  int       // matches.duration (minutes)
	Status    string    // matches.status
	CreatedAt time.Time // matches.created_at
}

// End returns the exclusive end of the match interval.
func (m *Match) End() time.Time {
	return m.MatchTime.Add(time.Duration(m.Duration) * time.Minute)
}
