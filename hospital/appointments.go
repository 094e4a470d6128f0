package hospital

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"sanjudas/models"
)

// AppointmentAPI is the slice of the backend consumed by the booking
// submitter, the lifecycle tracker and the payment-due sweep.
type AppointmentAPI interface {
	CreateAppointment(ctx context.Context, token, patientID, doctorID, isoDateTime string) (string, error)
	ListPatientAppointments(ctx context.Context, token, patientID string, filter models.AppointmentFilter) ([]AppointmentRecord, error)
	GetAppointment(ctx context.Context, token, folio string) (*AppointmentRecord, error)
	CancelAppointment(ctx context.Context, token, folio string) (*models.CancellationResult, error)
}

// AppointmentRecord is the loose shape the backend returns for appointments.
// Field naming varies across endpoints and revisions (folio vs folioCita vs
// idCita vs id, estatus vs status, ...); the record tolerates all of them and
// is normalized into models.Appointment by the lifecycle tracker, never used
// for display directly.
type AppointmentRecord struct {
	Folio         FlexID     `json:"folio"`
	FolioCita     FlexID     `json:"folioCita"`
	IDCita        FlexID     `json:"idCita"`
	ID            FlexID     `json:"id"`
	PacienteName  string     `json:"pacienteNombre"`
	PatientName   string     `json:"patientName"`
	DoctorNombre  string     `json:"doctorNombre"`
	DoctorName    string     `json:"doctorName"`
	DoctorID      FlexID     `json:"idDoctor"`
	Especialidad  string     `json:"especialidad"`
	Specialty     string     `json:"specialty"`
	Consultorio   string     `json:"consultorio"`
	Office        string     `json:"office"`
	FechaHoraCita string     `json:"fechaHoraCita"`
	DateTime      string     `json:"dateTime"`
	Estatus       string     `json:"estatus"`
	Status        string     `json:"status"`
	Costo         FlexAmount `json:"costo"`
	Cost          FlexAmount `json:"cost"`
	PaymentDue    string     `json:"fechaLimitePago"`
	RefundAmount  FlexAmount `json:"montoReembolso"`
}

// BestFolio resolves the canonical identifier from whichever field the
// backend populated.
func (r AppointmentRecord) BestFolio() string {
	return firstID(r.Folio, r.FolioCita, r.IDCita, r.ID)
}

type createAppointmentRequest struct {
	IDPaciente    string `json:"idPaciente"`
	IDDoctor      string `json:"idDoctor"`
	FechaHoraCita string `json:"fechaHoraCita"`
}

type createAppointmentResponse struct {
	Folio     FlexID `json:"folio"`
	FolioCita FlexID `json:"folioCita"`
	IDCita    FlexID `json:"idCita"`
	ID        FlexID `json:"id"`
}

// CreateAppointment books (patient, doctor, dateTime) and returns the new
// appointment folio. A duplicate active booking for the same (patient,
// doctor) pair comes back as a *ConflictError.
func (c *Client) CreateAppointment(ctx context.Context, token, patientID, doctorID, isoDateTime string) (string, error) {
	req := createAppointmentRequest{
		IDPaciente:    patientID,
		IDDoctor:      doctorID,
		FechaHoraCita: isoDateTime,
	}
	var resp createAppointmentResponse
	if err := c.do(ctx, token, http.MethodPost, "/api/registrar/cita", nil, req, &resp); err != nil {
		return "", err
	}
	folio := firstID(resp.Folio, resp.FolioCita, resp.IDCita, resp.ID)
	if folio == "" {
		return "", &FetchError{Op: "POST /api/registrar/cita", Message: "backend did not return an appointment identifier"}
	}
	return folio, nil
}

// ListPatientAppointments fetches a patient's appointments. At most one
// filter dimension is sent; the filter's precedence rule decides which.
func (c *Client) ListPatientAppointments(ctx context.Context, token, patientID string, filter models.AppointmentFilter) ([]AppointmentRecord, error) {
	path := fmt.Sprintf("/api/pacientes/%s/citas", patientID)
	q := url.Values{}
	if !filter.IsZero() {
		// One dimension per request: status wins over the date range, the
		// date range wins over the doctor.
		switch {
		case filter.Status != "":
			q.Set("estatus", string(filter.Status))
		case filter.FromDate != "" || filter.ToDate != "":
			if filter.FromDate != "" {
				q.Set("desde", filter.FromDate)
			}
			if filter.ToDate != "" {
				q.Set("hasta", filter.ToDate)
			}
		default:
			q.Set("idDoctor", filter.DoctorID)
		}
	}
	var records []AppointmentRecord
	if err := c.do(ctx, token, http.MethodGet, path, q, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetAppointment fetches a single appointment by folio.
func (c *Client) GetAppointment(ctx context.Context, token, folio string) (*AppointmentRecord, error) {
	path := fmt.Sprintf("/api/citas/%s", folio)
	var record AppointmentRecord
	if err := c.do(ctx, token, http.MethodGet, path, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

type cancelResponse struct {
	RefundAmount FlexAmount `json:"montoReembolso"`
	Refund       FlexAmount `json:"refundAmount"`
}

// CancelAppointment cancels an appointment. The backend may report a refund
// amount computed server-side.
func (c *Client) CancelAppointment(ctx context.Context, token, folio string) (*models.CancellationResult, error) {
	path := fmt.Sprintf("/api/citas/%s/cancelar", folio)
	var resp cancelResponse
	if err := c.do(ctx, token, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	refund := float64(resp.RefundAmount)
	if refund == 0 {
		refund = float64(resp.Refund)
	}
	return &models.CancellationResult{Folio: folio, RefundAmount: refund}, nil
}
