package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/tennis-court-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/tennis-court-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// This endpoint can be used by load balancers or monitoring systems to
	// verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register, login,
	// refresh.  Each handler is responsible for generating or exchanging
	// tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access issues a new access
	// token without rotating.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication.  The handler accepts a
	// JSON body containing a `refresh_token` and invalidates that token.
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token.  JWTAuth runs before each
	// handler on this group; both roles may read their own identity.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("PLAYER", "ADMIN"))
	auth.GET("/me", a.Me)

	// Clients can call either /v1/auth/logout or /v1/logout with a valid
	// refresh token in the body to terminate a session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  Guests can discover courts near a location and check slot
// availability without an account; booking itself requires a session.
func RegisterPublic(e *echo.Echo, ch *handler.CourtHandler) {
	// List courts, optionally filtered by proximity via ?lat=&lng=&radius_km=.
	e.GET("/courts", ch.ListCourts)
	// Court details by court id, including the stored weekly schedule.
	e.GET("/courts/:id", ch.GetCourt)
	// Check whether a specific slot is free: ?time=YYYY-MM-DD HH:MM&duration=60.
	e.GET("/courts/:id/availability", ch.Availability)
}
