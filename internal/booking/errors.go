// Package booking implements the scheduling-validity engine: it decides
// whether a proposed booking or match is legal and persists it when so.
// Expected rejections are modelled as sentinel errors so handlers can
// tell them apart from unexpected internal failures, which are wrapped
// and logged instead of being shown to the caller.
package booking

import "errors"

// ErrInvalidTime rejects a request whose duration is not positive or
// whose window falls outside operating hours or in the past.
var ErrInvalidTime = errors.New("invalid time")

// ErrConflict rejects a request whose window overlaps an existing
// non-cancelled booking or match on the same court.
var ErrConflict = errors.New("time slot already booked")

// ErrCourtNotFound rejects a request that references a missing court.
var ErrCourtNotFound = errors.New("court not found")

// ErrOpponentNotFound rejects a match request whose opponent email
// matches no registered user.
var ErrOpponentNotFound = errors.New("opponent not found")

// ErrSameOpponent rejects a match request where the opponent resolves
// to the requesting player.
var ErrSameOpponent = errors.New("opponent must be a different player")
