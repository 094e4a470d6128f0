package hospital

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ScheduleAPI is the slice of the backend the availability resolver consumes.
// Deployments expose either GetDoctorWorkdays or GetDoctorAvailableDates;
// which one the resolver calls is a configuration-time decision.
type ScheduleAPI interface {
	GetDoctorWorkdays(ctx context.Context, token, doctorID string) ([]int, error)
	GetDoctorAvailableDates(ctx context.Context, token, doctorID string) ([]string, error)
	GetAvailableTimeSlots(ctx context.Context, token, doctorID, isoDate string) ([]string, error)
}

// GetDoctorWorkdays returns the doctor's recurring weekday set
// (0=Sunday .. 6=Saturday).
func (c *Client) GetDoctorWorkdays(ctx context.Context, token, doctorID string) ([]int, error) {
	path := fmt.Sprintf("/api/doctores/%s/dias", doctorID)
	var days []int
	if err := c.do(ctx, token, http.MethodGet, path, nil, nil, &days); err != nil {
		return nil, err
	}
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			out = append(out, d)
		}
	}
	return out, nil
}

// GetDoctorAvailableDates returns explicit bookable dates ("YYYY-MM-DD") for
// a doctor.
func (c *Client) GetDoctorAvailableDates(ctx context.Context, token, doctorID string) ([]string, error) {
	path := fmt.Sprintf("/api/doctores/%s/fechas/disponibles", doctorID)
	var dates []string
	if err := c.do(ctx, token, http.MethodGet, path, nil, nil, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// GetAvailableTimeSlots returns the open time tokens (e.g. "08:30") for a
// (doctor, date) pair. The result is only meaningful for that exact pair.
func (c *Client) GetAvailableTimeSlots(ctx context.Context, token, doctorID, isoDate string) ([]string, error) {
	path := fmt.Sprintf("/api/doctores/%s/horarios/disponibles", doctorID)
	q := url.Values{}
	q.Set("fecha", isoDate)
	var slots []string
	if err := c.do(ctx, token, http.MethodGet, path, q, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
