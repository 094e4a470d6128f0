package appointment

import (
	"context"
	"sync"

	"sanjudas/hospital"
	"sanjudas/models"
	"sanjudas/utils"
)

// Service is the appointment lifecycle tracker surface consumed by the home
// view: filtered listing, the next-appointment card, and the payment and
// cancellation actions.
type Service interface {
	List(ctx context.Context, sess *utils.PatientSession, filter models.AppointmentFilter) ([]models.Appointment, error)
	Last(ctx context.Context, sess *utils.PatientSession) (*models.Appointment, error)
	Cancel(ctx context.Context, sess *utils.PatientSession, folio string) (*models.CancellationResult, error)
	Pay(ctx context.Context, sess *utils.PatientSession, folio string, amount float64) (*models.PaymentResult, error)
}

// DefaultAppointmentService keeps one lifecycle tracker per patient. The
// tracker owns that patient's appointment list exclusively; there are no
// concurrent writers within one tracker.
type DefaultAppointmentService struct {
	Appointments hospital.AppointmentAPI
	Payments     hospital.PaymentAPI

	mu       sync.Mutex
	trackers map[string]*Tracker
}

// NewAppointmentService builds the service.
func NewAppointmentService(appointments hospital.AppointmentAPI, payments hospital.PaymentAPI) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Appointments: appointments,
		Payments:     payments,
		trackers:     make(map[string]*Tracker),
	}
}

func (s *DefaultAppointmentService) trackerFor(patientID string) *Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[patientID]
	if !ok {
		t = NewTracker(patientID, s.Appointments, s.Payments)
		s.trackers[patientID] = t
	}
	return t
}

// List loads the patient's appointments through their tracker.
func (s *DefaultAppointmentService) List(ctx context.Context, sess *utils.PatientSession, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return s.trackerFor(sess.PatientID).Load(ctx, sess.Token, filter)
}

// Last returns the patient's next upcoming appointment.
func (s *DefaultAppointmentService) Last(ctx context.Context, sess *utils.PatientSession) (*models.Appointment, error) {
	return s.trackerFor(sess.PatientID).Last(ctx, sess.Token)
}

// Cancel cancels one of the patient's appointments.
func (s *DefaultAppointmentService) Cancel(ctx context.Context, sess *utils.PatientSession, folio string) (*models.CancellationResult, error) {
	return s.trackerFor(sess.PatientID).Cancel(ctx, sess.Token, folio)
}

// Pay posts a payment against one of the patient's appointments.
func (s *DefaultAppointmentService) Pay(ctx context.Context, sess *utils.PatientSession, folio string, amount float64) (*models.PaymentResult, error) {
	return s.trackerFor(sess.PatientID).Pay(ctx, sess.Token, folio, amount)
}
