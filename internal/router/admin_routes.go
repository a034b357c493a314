package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tennis-court-booking/internal/handler"
	"github.com/iliyamo/tennis-court-booking/internal/middleware"
)

// RegisterAdmin registers administrator endpoints under /v1/admin.  All
// routes require a valid JWT and the ADMIN role; each handler re-checks
// the role claim before acting.
func RegisterAdmin(e *echo.Echo, a *handler.AdminCourtHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.GET("/courts", a.ListCourts)
	g.POST("/courts", a.CreateCourt)
	g.PUT("/courts/:id", a.UpdateCourt)
}
