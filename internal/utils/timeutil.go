package utils

import (
	"fmt"
	"math"
	"time"
)

// TimeLayout is the default layout used for booking and match times in
// request bodies and formatted output ("2006-01-02 15:04").
const TimeLayout = "2006-01-02 15:04"

// ClockLayout is the layout for facility opening and closing times
// ("15:04").
const ClockLayout = "15:04"

// FormatTimestamp renders t using the given layout. An empty layout
// falls back to TimeLayout; a layout that produces no meaningful output
// falls back to the default textual representation of t. It never
// fails.
func FormatTimestamp(t time.Time, layout string) string {
	if layout == "" {
		layout = TimeLayout
	}
	s := t.Format(layout)
	if s == layout {
		// Layout contained no reference components; best effort.
		return t.String()
	}
	return s
}

// ParseTimestamp parses s per layout and reports whether the parse
// succeeded. Malformed input yields a zero time and false, never an
// error to the caller.
func ParseTimestamp(s, layout string) (time.Time, bool) {
	if layout == "" {
		layout = TimeLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BookingCost computes the price of a booking from its duration in
// minutes and the court's hourly rate, rounded to 2 decimal places.
// The formula is linear; non-positive durations yield zero or negative
// cost and must be rejected by callers before pricing.
func BookingCost(durationMinutes int, pricePerHour float64) float64 {
	hours := float64(durationMinutes) / 60
	return math.Round(hours*pricePerHour*100) / 100
}

// FormatPrice renders an amount with a currency symbol, e.g. "$30.00".
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// IsValidBookingWindow reports whether a booking starting at start and
// lasting durationMinutes fits the facility operating hours. The window
// is invalid when start is not strictly after now, when the time of day
// of start falls before opening, or when the time of day of the window
// end falls after closing. Only the time of day is considered; the
// per-weekday schedule stored on courts is not consulted here.
// Malformed opening or closing strings invalidate the window.
func IsValidBookingWindow(start time.Time, durationMinutes int, opening, closing string, now time.Time) bool {
	openT, err := time.Parse(ClockLayout, opening)
	if err != nil {
		return false
	}
	closeT, err := time.Parse(ClockLayout, closing)
	if err != nil {
		return false
	}
	if !start.After(now) {
		return false
	}
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	openMin := openT.Hour()*60 + openT.Minute()
	closeMin := closeT.Hour()*60 + closeT.Minute()

	if startMin < openMin || endMin > closeMin {
		return false
	}
	return true
}
