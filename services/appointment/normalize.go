// File: services/appointment/normalize.go
package appointment

import (
	"time"

	"sanjudas/hospital"
	"sanjudas/models"
	"sanjudas/utils"

	"go.uber.org/zap"
)

// placeholder fills any display field the backend left out, so every record
// is complete by the time anything renders it.
const placeholder = "No disponible"

// statusVocabulary maps every status dialect the backend (and its older
// revisions) emits onto the canonical enumeration.
var statusVocabulary = map[string]models.AppointmentStatus{
	"AWAITING_PAYMENT":    models.StatusAwaitingPayment,
	"PAID_AWAITING_VISIT": models.StatusPaidAwaiting,
	"ATTENDED":            models.StatusAttended,
	"CANCELLED":           models.StatusCancelled,
	"NO_SHOW":             models.StatusNoShow,
	"pendiente_pago":      models.StatusAwaitingPayment,
	"pendiente":           models.StatusAwaitingPayment,
	"confirmada":          models.StatusPaidAwaiting,
	"pagada":              models.StatusPaidAwaiting,
	"atendida":            models.StatusAttended,
	"completada":          models.StatusAttended,
	"finalizada":          models.StatusAttended,
	"cancelada":           models.StatusCancelled,
	"no_asistio":          models.StatusNoShow,
}

// NormalizeStatus maps a backend status string to the canonical enumeration.
// Unknown vocabulary defaults to awaiting payment rather than leaking a raw
// string downstream.
func NormalizeStatus(raw string) models.AppointmentStatus {
	if raw == "" {
		return models.StatusAwaitingPayment
	}
	if status, ok := statusVocabulary[raw]; ok {
		return status
	}
	utils.GetLogger().Warn("unknown appointment status from backend", zap.String("status", raw))
	return models.StatusAwaitingPayment
}

// NormalizeRecord converts a loose backend record into a fully-populated
// Appointment. Missing fields receive explicit placeholder values; nothing
// downstream ever sees an absent field.
func NormalizeRecord(rec hospital.AppointmentRecord) models.Appointment {
	a := models.Appointment{
		Folio:        rec.BestFolio(),
		PatientName:  firstNonEmpty(rec.PacienteName, rec.PatientName, placeholder),
		DoctorName:   firstNonEmpty(rec.DoctorNombre, rec.DoctorName, placeholder),
		DoctorID:     string(rec.DoctorID),
		Specialty:    firstNonEmpty(rec.Especialidad, rec.Specialty, placeholder),
		Office:       firstNonEmpty(rec.Consultorio, rec.Office, placeholder),
		Status:       NormalizeStatus(firstNonEmpty(rec.Estatus, rec.Status)),
		Cost:         float64(rec.Costo),
		RefundAmount: float64(rec.RefundAmount),
	}
	if a.Folio == "" {
		a.Folio = placeholder
	}
	if a.Cost == 0 {
		a.Cost = float64(rec.Cost)
	}
	a.DateTime = parseDateTime(firstNonEmpty(rec.FechaHoraCita, rec.DateTime))
	if rec.PaymentDue != "" {
		a.PaymentDue = parseDateTime(rec.PaymentDue)
	}
	return a
}

// parseDateTime accepts the backend's datetime dialects; an unparseable or
// missing value yields the zero time, never a crash.
func parseDateTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	utils.GetLogger().Warn("unparseable appointment datetime from backend", zap.String("value", raw))
	return time.Time{}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
