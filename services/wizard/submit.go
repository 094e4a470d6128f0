// File: services/wizard/submit.go
package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sanjudas/hospital"
	"sanjudas/models"
	"sanjudas/utils"

	"go.uber.org/zap"
)

const (
	submitPrefix = "wizardSubmit:"
	submitTTL    = 30 * time.Second
)

// Submit converts the fully-specified draft into a create-appointment request.
// Requires the session to sit at confirmation with doctor, date and time all
// set; anything missing is a local validation error and no network call is
// made. At most one create request per session is ever in flight; a second
// submit while one is pending is ignored. On success the draft is discarded
// and the payment-deadline sweep is armed; on a backend conflict the session
// stays at confirmation so the user can alter the selection and resubmit.
func (s *DefaultWizardService) Submit(ctx context.Context, sess *utils.PatientSession, sessionID string) (*models.Appointment, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepConfirmation {
		return nil, ErrInvalidTransition
	}
	if session.Draft.DoctorID == "" || session.Draft.Date == "" || session.Draft.Time == "" {
		return nil, hospital.NewValidationError("booking draft is incomplete: doctor, date and time are all required")
	}

	ok, err := s.Cache.SetNX(ctx, submitPrefix+sessionID, "1", submitTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	if !ok {
		return nil, ErrSubmitInFlight
	}
	defer func() {
		if err := s.Cache.Del(context.Background(), submitPrefix+sessionID).Err(); err != nil {
			utils.GetLogger().Warn("failed to release submit lock",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()

	dateTime, err := combineDateTime(session.Draft.Date, session.Draft.Time)
	if err != nil {
		return nil, hospital.NewValidationError("invalid date/time selection: %v", err)
	}

	folio, err := s.Appointments.CreateAppointment(ctx, sess.Token, session.Draft.PatientID, session.Draft.DoctorID, dateTime)
	if err != nil {
		var conflict *hospital.ConflictError
		if errors.As(err, &conflict) {
			// The session survives so the user may change doctor or slot.
			return nil, err
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	utils.GetLogger().Info("appointment created",
		zap.String("folio", folio),
		zap.String("patientID", session.Draft.PatientID),
		zap.String("doctorID", session.Draft.DoctorID),
		zap.String("dateTime", dateTime))

	if s.PaymentSweep != nil {
		if err := s.PaymentSweep.SchedulePaymentDue(folio, session.Draft.PatientID); err != nil {
			utils.GetLogger().Error("failed to schedule payment-due sweep",
				zap.String("folio", folio), zap.Error(err))
		}
	}

	appointment := &models.Appointment{
		Folio:    folio,
		Status:   models.StatusAwaitingPayment,
		DoctorID: session.Draft.DoctorID,
	}
	if dt, err := time.ParseInLocation("2006-01-02T15:04:05", dateTime, time.Local); err == nil {
		appointment.DateTime = dt
	}

	// The wizard exits entirely on success.
	if err := s.Cache.Del(ctx, sessionPrefix+sessionID).Err(); err != nil {
		utils.GetLogger().Warn("failed to discard wizard session after booking",
			zap.String("sessionID", sessionID), zap.Error(err))
	}
	return appointment, nil
}

// combineDateTime synthesizes the backend's "YYYY-MM-DDTHH:mm:ss" value from
// the separately selected date and time token.
func combineDateTime(isoDate, timeToken string) (string, error) {
	day, err := ParseDateOnly(isoDate)
	if err != nil {
		return "", err
	}
	clock, err := time.Parse("15:04", timeToken)
	if err != nil {
		return "", fmt.Errorf("invalid time token %q: %w", timeToken, err)
	}
	combined := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	return combined.Format("2006-01-02T15:04:05"), nil
}
