package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tennis-court-booking/internal/booking"
	"github.com/iliyamo/tennis-court-booking/internal/config"
	"github.com/iliyamo/tennis-court-booking/internal/geo"
	"github.com/iliyamo/tennis-court-booking/internal/repository"
	"github.com/iliyamo/tennis-court-booking/internal/utils"
)

// CourtHandler serves the public court catalog: listing, proximity
// search and slot availability. None of its endpoints require
// authentication.
type CourtHandler struct {
	Cfg       config.Config
	Courts    *repository.CourtRepo
	Scheduler *booking.Scheduler
}

// NewCourtHandler constructs a CourtHandler. All dependencies must be
// non-nil.
func NewCourtHandler(cfg config.Config, courts *repository.CourtRepo, sched *booking.Scheduler) *CourtHandler {
	if courts == nil || sched == nil {
		panic("nil dependency passed to NewCourtHandler")
	}
	return &CourtHandler{Cfg: cfg, Courts: courts, Scheduler: sched}
}

// courtJSON is the public representation of a court. DistanceKm is only
// populated on proximity searches.
type courtJSON struct {
	ID           uint64   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	PricePerHour float64  `json:"price_per_hour"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

// ListCourts handles GET /courts. Without coordinates it returns the
// whole catalog. With lat and lng query parameters it filters to courts
// within radius_km (default from configuration) ordered by ascending
// distance. An empty catalog yields an empty array, not an error.
func (h *CourtHandler) ListCourts(c echo.Context) error {
	ctx := c.Request().Context()
	courts, err := h.Courts.ListAll(ctx)
	if err != nil {
		log.Printf("courts: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch tennis courts"})
	}

	latStr := c.QueryParam("lat")
	lngStr := c.QueryParam("lng")

	out := make([]courtJSON, 0, len(courts))
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
		}
		radius := h.Cfg.SearchRadiusKm
		if rStr := c.QueryParam("radius_km"); rStr != "" {
			if r, err := strconv.ParseFloat(rStr, 64); err == nil && r > 0 {
				radius = r
			}
		}
		for _, cd := range geo.Nearby(courts, lat, lng, radius) {
			d := cd.DistanceKm
			out = append(out, courtJSON{
				ID:           cd.Court.ID,
				Name:         cd.Court.Name,
				Address:      cd.Court.Address,
				Latitude:     cd.Court.Latitude,
				Longitude:    cd.Court.Longitude,
				PricePerHour: cd.Court.PricePerHour,
				DistanceKm:   &d,
			})
		}
	} else {
		for _, court := range courts {
			out = append(out, courtJSON{
				ID:           court.ID,
				Name:         court.Name,
				Address:      court.Address,
				Latitude:     court.Latitude,
				Longitude:    court.Longitude,
				PricePerHour: court.PricePerHour,
			})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// GetCourt handles GET /courts/:id and returns a single court with its
// stored weekly schedule.
func (h *CourtHandler) GetCourt(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	court, err := h.Courts.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		log.Printf("courts: get %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch court"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":              court.ID,
		"name":            court.Name,
		"address":         court.Address,
		"latitude":        court.Latitude,
		"longitude":       court.Longitude,
		"price_per_hour":  court.PricePerHour,
		"available_hours": court.AvailableHours,
	})
}

// Availability handles GET /courts/:id/availability?time=&duration=.
// It reports whether the half-open window starting at `time` (layout
// "2006-01-02 15:04") with `duration` minutes is free of conflicts on
// the court's timeline. The check fails closed: a store problem reports
// the slot as unavailable rather than risking a double-booking.
func (h *CourtHandler) Availability(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	if _, err := h.Courts.GetByID(c.Request().Context(), id); err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		log.Printf("courts: availability lookup %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch court"})
	}

	start, ok := utils.ParseTimestamp(c.QueryParam("time"), utils.TimeLayout)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time"})
	}
	duration, err := strconv.Atoi(c.QueryParam("duration"))
	if err != nil || duration <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid duration"})
	}

	available := !h.Scheduler.HasConflict(c.Request().Context(), id, start, duration)
	return c.JSON(http.StatusOK, echo.Map{"available": available})
}
