package appointment

import (
	"testing"
	"time"

	"sanjudas/hospital"
	"sanjudas/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatusVocabulary(t *testing.T) {
	tests := []struct {
		raw  string
		want models.AppointmentStatus
	}{
		{"AWAITING_PAYMENT", models.StatusAwaitingPayment},
		{"PAID_AWAITING_VISIT", models.StatusPaidAwaiting},
		{"ATTENDED", models.StatusAttended},
		{"CANCELLED", models.StatusCancelled},
		{"NO_SHOW", models.StatusNoShow},
		{"pendiente_pago", models.StatusAwaitingPayment},
		{"pendiente", models.StatusAwaitingPayment},
		{"confirmada", models.StatusPaidAwaiting},
		{"pagada", models.StatusPaidAwaiting},
		{"atendida", models.StatusAttended},
		{"completada", models.StatusAttended},
		{"finalizada", models.StatusAttended},
		{"cancelada", models.StatusCancelled},
		{"no_asistio", models.StatusNoShow},
		// Unknown vocabulary defaults to awaiting payment.
		{"algo_raro", models.StatusAwaitingPayment},
		{"", models.StatusAwaitingPayment},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.raw); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeRecordFillsPlaceholders(t *testing.T) {
	a := NormalizeRecord(hospital.AppointmentRecord{
		FolioCita: "F-77",
		Estatus:   "pendiente_pago",
	})

	assert.Equal(t, "F-77", a.Folio)
	assert.Equal(t, "No disponible", a.DoctorName)
	assert.Equal(t, "No disponible", a.PatientName)
	assert.Equal(t, "No disponible", a.Specialty)
	assert.Equal(t, "No disponible", a.Office)
	assert.Equal(t, models.StatusAwaitingPayment, a.Status)
	assert.True(t, a.DateTime.IsZero())
}

func TestNormalizeRecordPrefersSpanishFields(t *testing.T) {
	a := NormalizeRecord(hospital.AppointmentRecord{
		Folio:         "F-1",
		DoctorNombre:  "Dra. Reyes",
		DoctorName:    "Dr. Smith",
		Especialidad:  "Cardiología",
		Specialty:     "Cardiology",
		Consultorio:   "204",
		FechaHoraCita: "2026-10-05T09:00:00",
		Estatus:       "confirmada",
		Costo:         850,
	})

	assert.Equal(t, "Dra. Reyes", a.DoctorName)
	assert.Equal(t, "Cardiología", a.Specialty)
	assert.Equal(t, "204", a.Office)
	assert.Equal(t, models.StatusPaidAwaiting, a.Status)
	assert.Equal(t, 850.0, a.Cost)
	assert.Equal(t, time.Date(2026, 10, 5, 9, 0, 0, 0, time.Local), a.DateTime)
}

func TestNormalizeRecordFolioFallbacks(t *testing.T) {
	tests := []struct {
		name string
		rec  hospital.AppointmentRecord
		want string
	}{
		{"folio first", hospital.AppointmentRecord{Folio: "A", FolioCita: "B", IDCita: "C", ID: "D"}, "A"},
		{"folioCita next", hospital.AppointmentRecord{FolioCita: "B", IDCita: "C", ID: "D"}, "B"},
		{"idCita next", hospital.AppointmentRecord{IDCita: "C", ID: "D"}, "C"},
		{"id last", hospital.AppointmentRecord{ID: "D"}, "D"},
		{"nothing means placeholder", hospital.AppointmentRecord{}, "No disponible"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRecord(tt.rec).Folio)
		})
	}
}

func TestParseDateTimeDialects(t *testing.T) {
	want := time.Date(2026, 10, 5, 9, 30, 0, 0, time.Local)
	for _, raw := range []string{
		"2026-10-05T09:30:00",
		"2026-10-05 09:30:00",
	} {
		assert.Equal(t, want, parseDateTime(raw), "layout %q", raw)
	}
	assert.Equal(t, time.Date(2026, 10, 5, 0, 0, 0, 0, time.Local), parseDateTime("2026-10-05"))
	assert.True(t, parseDateTime("").IsZero())
	assert.True(t, parseDateTime("not a date").IsZero())
}
