package hospital

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sanjudas/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zap.NewNop())
}

func TestErrorTaxonomyMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusBadRequest, func(t *testing.T, err error) {
			var e *ValidationError
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusUnprocessableEntity, func(t *testing.T, err error) {
			var e *ValidationError
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusUnauthorized, func(t *testing.T, err error) {
			var e *AuthError
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusForbidden, func(t *testing.T, err error) {
			var e *AuthError
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusNotFound, func(t *testing.T, err error) {
			var e *NotFoundError
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusConflict, func(t *testing.T, err error) {
			var e *ConflictError
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusInternalServerError, func(t *testing.T, err error) {
			var e *FetchError
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusBadGateway, func(t *testing.T, err error) {
			var e *FetchError
			assert.ErrorAs(t, err, &e)
		}},
	}
	for _, tt := range tests {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"message":"rechazado"}`))
		})
		_, err := c.ListSpecialties(context.Background(), "tok")
		require.Error(t, err, "status %d", tt.status)
		tt.check(t, err)
	}
}

func TestConflictMessageSurfacedVerbatim(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Ya existe una cita activa con este doctor"}`))
	})

	_, err := c.CreateAppointment(context.Background(), "tok", "p-1", "doc-1", "2026-09-04T10:30:00")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Ya existe una cita activa con este doctor", conflict.Message)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.ListSpecialties(context.Background(), "my-token")
	require.NoError(t, err)
	assert.Equal(t, "Bearer my-token", gotAuth)
}

func TestCreateAppointmentBody(t *testing.T) {
	var gotBody map[string]string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"folio": 4711}`))
	})

	folio, err := c.CreateAppointment(context.Background(), "tok", "p-1", "doc-1", "2026-09-04T10:30:00")
	require.NoError(t, err)
	// Numeric backend folios come back as strings.
	assert.Equal(t, "4711", folio)
	assert.Equal(t, map[string]string{
		"idPaciente":    "p-1",
		"idDoctor":      "doc-1",
		"fechaHoraCita": "2026-09-04T10:30:00",
	}, gotBody)
}

func TestListSpecialtiesToleratesDialects(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"idEspecialidad": 3, "nombre": "Cardiología"},
			{"id": "7", "name": "Pediatrics"},
			{"id": "9"},
			{"nombre": "sin id"}
		]`))
	})

	specialties, err := c.ListSpecialties(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, specialties, 3)
	assert.Equal(t, models.Specialty{ID: "3", Name: "Cardiología"}, specialties[0])
	assert.Equal(t, models.Specialty{ID: "7", Name: "Pediatrics"}, specialties[1])
	assert.Equal(t, models.Specialty{ID: "9", Name: "No disponible"}, specialties[2])
}

func TestListDoctorsJoinsSpanishNameParts(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 12, "nombre": "Ana", "apellidoP": "Reyes", "apellidoM": "Luna", "consultorio": "204"},
			{"id": "13", "fullName": "Dr. John Smith"}
		]`))
	})

	doctors, err := c.ListDoctorsBySpecialty(context.Background(), "tok", "spec-1")
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "Ana Reyes Luna", doctors[0].FullName)
	assert.Equal(t, "204", doctors[0].Office)
	assert.Equal(t, "Dr. John Smith", doctors[1].FullName)
	assert.Equal(t, "No disponible", doctors[1].Office)
	assert.Equal(t, "spec-1", doctors[1].SpecialtyID)
}

func TestListPatientAppointmentsSingleFilterDimension(t *testing.T) {
	var gotQuery map[string][]string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	})

	// Status set: only estatus goes on the wire even with other fields set.
	_, err := c.ListPatientAppointments(context.Background(), "tok", "p-1", models.AppointmentFilter{
		Status: models.StatusCancelled, FromDate: "2026-09-01", DoctorID: "doc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"estatus": {"CANCELLED"}}, gotQuery)

	_, err = c.ListPatientAppointments(context.Background(), "tok", "p-1", models.AppointmentFilter{
		FromDate: "2026-09-01", ToDate: "2026-09-30", DoctorID: "doc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"desde": {"2026-09-01"}, "hasta": {"2026-09-30"}}, gotQuery)

	_, err = c.ListPatientAppointments(context.Background(), "tok", "p-1", models.AppointmentFilter{DoctorID: "doc-1"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"idDoctor": {"doc-1"}}, gotQuery)

	// An empty filter sends no query parameters at all.
	_, err = c.ListPatientAppointments(context.Background(), "tok", "p-1", models.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestPayAppointmentDerivesRemainingBalance(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"folioPago": "PAY-1", "montoAcumulado": "200", "totalOrden": 500, "pagadoCompleto": false}`))
	})

	result, err := c.PayAppointment(context.Background(), "tok", "F-1", 200)
	require.NoError(t, err)
	assert.Equal(t, "PAY-1", result.PaymentFolio)
	assert.Equal(t, 200.0, result.CumulativePaid)
	assert.Equal(t, 500.0, result.TotalDue)
	assert.False(t, result.FullyPaid)
	assert.Equal(t, 300.0, result.RemainingBalance)
}

func TestPayAppointmentOverpaymentClampsToZero(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"paymentFolio": "PAY-2", "cumulativePaid": 600, "totalDue": 500, "fullyPaid": true}`))
	})

	result, err := c.PayAppointment(context.Background(), "tok", "F-1", 600)
	require.NoError(t, err)
	assert.True(t, result.FullyPaid)
	assert.Equal(t, 0.0, result.RemainingBalance)
}

func TestGetDoctorWorkdaysFiltersRange(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1, 3, 5, 7, -2]`))
	})

	days, err := c.GetDoctorWorkdays(context.Background(), "tok", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, days)
}

func TestCancelAppointmentRefund(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/citas/F-1/cancelar", r.URL.Path)
		_, _ = w.Write([]byte(`{"montoReembolso": "150.50"}`))
	})

	result, err := c.CancelAppointment(context.Background(), "tok", "F-1")
	require.NoError(t, err)
	assert.Equal(t, 150.50, result.RefundAmount)
}
