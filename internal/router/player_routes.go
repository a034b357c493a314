package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tennis-court-booking/internal/handler"
	"github.com/iliyamo/tennis-court-booking/internal/middleware"
)

// RegisterPlayer registers player-scoped endpoints under /v1.  All routes
// require a valid JWT and the PLAYER role.  Players can book courts,
// schedule matches against an opponent, list their own bookings and
// matches, and cancel either.
func RegisterPlayer(e *echo.Echo, b *handler.BookingHandler, m *handler.MatchHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("PLAYER"),
	)
	// Note: GET /courts, GET /courts/:id and GET /courts/:id/availability
	// are registered on the public router so that guests can browse the
	// catalog.  Player-specific endpoints begin here.
	g.POST("/courts/:id/bookings", b.BookCourt)
	g.GET("/my-bookings", b.ListMyBookings)
	g.DELETE("/bookings/:id", b.CancelBooking)

	// Match scheduling between two registered players.  Ownership and
	// participation checks happen within the handlers.
	g.POST("/matches", m.SetupMatch)
	g.GET("/my-matches", m.ListMyMatches)
	g.DELETE("/matches/:id", m.CancelMatch)
}
