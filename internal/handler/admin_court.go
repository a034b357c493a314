package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tennis-court-booking/internal/model"
	"github.com/iliyamo/tennis-court-booking/internal/repository"
)

// AdminCourtHandler lets administrators manage the court catalog.
// Routes are guarded by the ADMIN role in middleware; each handler
// additionally re-checks the role from the context so the protection
// does not depend on route wiring alone.
type AdminCourtHandler struct {
	Courts *repository.CourtRepo
}

// NewAdminCourtHandler constructs an AdminCourtHandler.
func NewAdminCourtHandler(courts *repository.CourtRepo) *AdminCourtHandler {
	if courts == nil {
		panic("nil repository passed to NewAdminCourtHandler")
	}
	return &AdminCourtHandler{Courts: courts}
}

// requireAdmin validates the role claim stored by the JWT middleware.
func requireAdmin(c echo.Context) error {
	role, _ := c.Get("role").(string)
	if role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return nil
}

type courtReq struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AvailableHours string  `json:"available_hours"`
	PricePerHour   float64 `json:"price_per_hour"`
}

func (r *courtReq) validate() string {
	if r.Name == "" || r.Address == "" {
		return "name and address required"
	}
	if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
		return "invalid coordinates"
	}
	if r.PricePerHour < 0 {
		return "price_per_hour must be non-negative"
	}
	return ""
}

// CreateCourt handles POST /v1/admin/courts.
func (h *AdminCourtHandler) CreateCourt(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	court := &model.Court{
		Name:           req.Name,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AvailableHours: req.AvailableHours,
		PricePerHour:   req.PricePerHour,
	}
	if err := h.Courts.Create(c.Request().Context(), court); err != nil {
		log.Printf("admin: create court failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create court"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": court.ID})
}

// UpdateCourt handles PUT /v1/admin/courts/:id.
func (h *AdminCourtHandler) UpdateCourt(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	court := &model.Court{
		ID:             id,
		Name:           req.Name,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AvailableHours: req.AvailableHours,
		PricePerHour:   req.PricePerHour,
	}
	if err := h.Courts.Update(c.Request().Context(), court); err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		log.Printf("admin: update court %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update court"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCourts handles GET /v1/admin/courts, returning the full catalog
// including the stored weekly schedules.
func (h *AdminCourtHandler) ListCourts(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	courts, err := h.Courts.ListAll(c.Request().Context())
	if err != nil {
		log.Printf("admin: list courts failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load courts"})
	}
	items := make([]echo.Map, 0, len(courts))
	for _, court := range courts {
		items = append(items, echo.Map{
			"id":              court.ID,
			"name":            court.Name,
			"address":         court.Address,
			"latitude":        court.Latitude,
			"longitude":       court.Longitude,
			"price_per_hour":  court.PricePerHour,
			"available_hours": court.AvailableHours,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
