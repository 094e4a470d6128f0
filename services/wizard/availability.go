// File: services/wizard/availability.go
package wizard

import (
	"context"
	"fmt"
	"time"

	"sanjudas/hospital"
)

// Booking horizon: a doctor accepts appointments from 48 hours out through
// three calendar months ahead.
const minLeadTime = 48 * time.Hour

// AvailabilityResolver computes which dates and times are selectable for a
// doctor. Two implementations exist for the two backend contract variants;
// the deployment picks one at configuration time.
type AvailabilityResolver interface {
	AvailableDates(ctx context.Context, token, doctorID string, now time.Time) ([]string, error)
	TimeSlots(ctx context.Context, token, doctorID, isoDate string) ([]string, error)
}

// Resolver modes, matching the AVAILABILITY_MODE config key.
const (
	ModeWorkdays = "workdays"
	ModeDates    = "dates"
)

// NewResolver picks the resolver strategy for the configured contract variant.
func NewResolver(mode string, schedule hospital.ScheduleAPI) (AvailabilityResolver, error) {
	switch mode {
	case ModeWorkdays:
		return &WorkdayResolver{Schedule: schedule}, nil
	case ModeDates:
		return &ExplicitDateResolver{Schedule: schedule}, nil
	default:
		return nil, fmt.Errorf("unknown availability mode %q", mode)
	}
}

// WorkdayResolver derives bookable dates from the doctor's recurring weekday
// set (contract variant A).
type WorkdayResolver struct {
	Schedule hospital.ScheduleAPI
}

func (r *WorkdayResolver) AvailableDates(ctx context.Context, token, doctorID string, now time.Time) ([]string, error) {
	workdays, err := r.Schedule.GetDoctorWorkdays(ctx, token, doctorID)
	if err != nil {
		return nil, err
	}
	return ExpandWorkdays(workdays, now), nil
}

func (r *WorkdayResolver) TimeSlots(ctx context.Context, token, doctorID, isoDate string) ([]string, error) {
	return r.Schedule.GetAvailableTimeSlots(ctx, token, doctorID, isoDate)
}

// ExplicitDateResolver consumes the backend's already-valid bookable date
// list (contract variant B).
type ExplicitDateResolver struct {
	Schedule hospital.ScheduleAPI
}

func (r *ExplicitDateResolver) AvailableDates(ctx context.Context, token, doctorID string, now time.Time) ([]string, error) {
	raw, err := r.Schedule.GetDoctorAvailableDates(ctx, token, doctorID)
	if err != nil {
		return nil, err
	}
	// Re-encode through the date-only representation so later membership
	// checks compare calendar days, never instants.
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, iso := range raw {
		day, err := ParseDateOnly(iso)
		if err != nil {
			continue
		}
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out, nil
}

func (r *ExplicitDateResolver) TimeSlots(ctx context.Context, token, doctorID, isoDate string) ([]string, error) {
	return r.Schedule.GetAvailableTimeSlots(ctx, token, doctorID, isoDate)
}

// ExpandWorkdays produces the ascending, duplicate-free sequence of calendar
// dates in [now+48h, now+3 months] whose weekday is in the doctor's workday
// set (0=Sunday .. 6=Saturday).
func ExpandWorkdays(workdays []int, now time.Time) []string {
	if len(workdays) == 0 {
		return nil
	}
	set := make(map[time.Weekday]bool, len(workdays))
	for _, d := range workdays {
		if d >= 0 && d <= 6 {
			set[time.Weekday(d)] = true
		}
	}

	first := now.Add(minLeadTime)
	start := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, now.Location())
	horizon := now.AddDate(0, 3, 0)
	end := time.Date(horizon.Year(), horizon.Month(), horizon.Day(), 0, 0, 0, 0, now.Location())

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if set[d.Weekday()] {
			dates = append(dates, d.Format("2006-01-02"))
		}
	}
	return dates
}

// ParseDateOnly turns "YYYY-MM-DD" into a local date-only value. The value is
// constructed from its components; parsing the ISO string directly would
// yield a UTC instant and shift the calendar day in western timezones.
func ParseDateOnly(iso string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", iso, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", iso, err)
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local), nil
}

// ContainsDate reports whether the candidate date is in the available set,
// comparing on the date-only representation.
func ContainsDate(dates []string, candidate string) bool {
	cand, err := ParseDateOnly(candidate)
	if err != nil {
		return false
	}
	for _, iso := range dates {
		day, err := ParseDateOnly(iso)
		if err != nil {
			continue
		}
		if day.Equal(cand) {
			return true
		}
	}
	return false
}
