// File: services/appointment/tracker.go
package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"sanjudas/hospital"
	"sanjudas/models"
	"sanjudas/utils"

	"go.uber.org/zap"
)

// Tracker maintains one patient's appointment list and drives its status
// transitions. Listing is reconciled against the backend after every
// successful mutation rather than trusting local edits alone.
type Tracker struct {
	PatientID    string
	Appointments hospital.AppointmentAPI
	Payments     hospital.PaymentAPI

	mu sync.Mutex
	// generation orders filter changes; a fetch stamped with an older
	// generation than the one already applied is discarded so a slow early
	// response can never overwrite a later filter's results.
	generation uint64
	applied    uint64
	list       []models.Appointment
	payments   []models.Payment
	lastFilter models.AppointmentFilter
}

// NewTracker builds a tracker for a patient.
func NewTracker(patientID string, appointments hospital.AppointmentAPI, payments hospital.PaymentAPI) *Tracker {
	return &Tracker{
		PatientID:    patientID,
		Appointments: appointments,
		Payments:     payments,
	}
}

// Load fetches the patient's appointments with at most one filter dimension
// applied (status first, else date range, else doctor). The returned slice
// always reflects the newest filter whose response has arrived.
func (t *Tracker) Load(ctx context.Context, token string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	effective := effectiveFilter(filter)

	t.mu.Lock()
	t.generation++
	gen := t.generation
	t.lastFilter = effective
	t.mu.Unlock()

	records, err := t.Appointments.ListPatientAppointments(ctx, token, t.PatientID, effective)
	if err != nil {
		// A failed load must not corrupt the previously displayed list.
		return nil, err
	}

	normalized := make([]models.Appointment, 0, len(records))
	for _, rec := range records {
		normalized = append(normalized, NormalizeRecord(rec))
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen < t.applied {
		// Superseded by a newer filter; keep the newer results.
		utils.GetLogger().Debug("discarding stale appointment list response",
			zap.String("patientID", t.PatientID),
			zap.Uint64("generation", gen),
			zap.Uint64("applied", t.applied))
		return t.snapshotLocked(), nil
	}
	t.applied = gen
	t.list = normalized
	return t.snapshotLocked(), nil
}

// Last returns the next upcoming non-cancelled appointment, loading the
// unfiltered list if nothing is cached yet.
func (t *Tracker) Last(ctx context.Context, token string) (*models.Appointment, error) {
	t.mu.Lock()
	empty := len(t.list) == 0
	t.mu.Unlock()
	if empty {
		if _, err := t.Load(ctx, token, models.AppointmentFilter{}); err != nil {
			return nil, err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	var next *models.Appointment
	for i := range t.list {
		a := &t.list[i]
		if a.Status == models.StatusCancelled || a.DateTime.Before(now) {
			continue
		}
		if next == nil || a.DateTime.Before(next.DateTime) {
			next = a
		}
	}
	if next == nil {
		return nil, nil
	}
	out := *next
	return &out, nil
}

// refresh re-fetches the list with the last applied filter, reconciling
// local state with server-computed fields.
func (t *Tracker) refresh(ctx context.Context, token string) {
	t.mu.Lock()
	filter := t.lastFilter
	t.mu.Unlock()
	if _, err := t.Load(ctx, token, filter); err != nil {
		utils.GetLogger().Warn("failed to refresh appointment list after mutation",
			zap.String("patientID", t.PatientID), zap.Error(err))
	}
}

func (t *Tracker) snapshotLocked() []models.Appointment {
	out := make([]models.Appointment, len(t.list))
	copy(out, t.list)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out
}

// PostedPayments returns the payments posted through this tracker, oldest
// first.
func (t *Tracker) PostedPayments() []models.Payment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Payment, len(t.payments))
	copy(out, t.payments)
	return out
}

func (t *Tracker) findLocked(folio string) *models.Appointment {
	for i := range t.list {
		if t.list[i].Folio == folio {
			return &t.list[i]
		}
	}
	return nil
}

// effectiveFilter collapses the filter to its highest-precedence dimension:
// status, else date range, else doctor id, else unfiltered.
func effectiveFilter(f models.AppointmentFilter) models.AppointmentFilter {
	switch {
	case f.Status != "":
		return models.AppointmentFilter{Status: f.Status}
	case f.FromDate != "" || f.ToDate != "":
		return models.AppointmentFilter{FromDate: f.FromDate, ToDate: f.ToDate}
	case f.DoctorID != "":
		return models.AppointmentFilter{DoctorID: f.DoctorID}
	default:
		return models.AppointmentFilter{}
	}
}
