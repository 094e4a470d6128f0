package wizard

import (
	"context"

	"sanjudas/hospital"
	"sanjudas/models"
	"sanjudas/utils"

	"github.com/go-redis/redis/v8"
)

// Service manages the stateful booking wizard session: one step at a time,
// each forward transition backed by exactly one collaborator fetch.
type Service interface {
	Start(ctx context.Context, sess *utils.PatientSession) (*models.WizardResponse, error)
	SelectSpecialty(ctx context.Context, sess *utils.PatientSession, sessionID, specialtyID string) (*models.WizardResponse, error)
	SelectDoctor(ctx context.Context, sess *utils.PatientSession, sessionID, doctorID string) (*models.WizardResponse, error)
	SelectDate(ctx context.Context, sess *utils.PatientSession, sessionID, isoDate string) (*models.WizardResponse, error)
	SelectTime(ctx context.Context, sess *utils.PatientSession, sessionID, timeToken string) (*models.WizardResponse, error)
	Back(ctx context.Context, sessionID string) (*models.WizardResponse, error)
	Get(ctx context.Context, sessionID string) (*models.WizardResponse, error)
	Submit(ctx context.Context, sess *utils.PatientSession, sessionID string) (*models.Appointment, error)
	Abandon(ctx context.Context, sessionID string) error
}

// PaymentDueScheduler hands a freshly created appointment to the
// payment-deadline sweep.
type PaymentDueScheduler interface {
	SchedulePaymentDue(folio, patientID string) error
}

// DefaultWizardService implements Service over the hospital backend, with
// the session held in Redis between requests.
type DefaultWizardService struct {
	Catalog      hospital.CatalogAPI
	Appointments hospital.AppointmentAPI
	Resolver     AvailabilityResolver
	Cache        *redis.Client
	PaymentSweep PaymentDueScheduler
}
