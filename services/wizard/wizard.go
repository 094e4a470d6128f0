// File: services/wizard/wizard.go
package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sanjudas/models"
	"sanjudas/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	sessionPrefix = "wizardSession:"
	busyPrefix    = "wizardBusy:"

	sessionTTL = 10 * time.Minute
	busyTTL    = 30 * time.Second
)

// Start creates a new wizard session, fetches the specialty catalog, and
// stores the session in Redis. The wizard opens in specialty selection.
func (s *DefaultWizardService) Start(ctx context.Context, sess *utils.PatientSession) (*models.WizardResponse, error) {
	specialties, err := s.Catalog.ListSpecialties(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to load specialties: %w", err)
	}

	session := models.WizardSession{
		SessionID:   uuid.New().String(),
		Step:        models.StepSpecialtySelection,
		Draft:       models.BookingDraft{PatientID: sess.PatientID},
		Specialties: specialties,
	}
	if err := s.saveSession(ctx, &session); err != nil {
		return nil, err
	}

	resp := session.Response()
	return &resp, nil
}

// SelectSpecialty records the chosen specialty, fetches that specialty's
// doctors, and advances to doctor selection. A fetch failure leaves the
// session untouched at specialty selection.
func (s *DefaultWizardService) SelectSpecialty(ctx context.Context, sess *utils.PatientSession, sessionID, specialtyID string) (*models.WizardResponse, error) {
	if specialtyID == "" {
		return nil, ErrInvalidTransition
	}
	release, err := s.acquireBusy(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureStep(session, models.StepSpecialtySelection); err != nil {
		return nil, err
	}
	if !containsSpecialty(session.Specialties, specialtyID) {
		return nil, ErrInvalidTransition
	}

	doctors, err := s.Catalog.ListDoctorsBySpecialty(ctx, sess.Token, specialtyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctors: %w", err)
	}
	if len(doctors) == 0 {
		// Doctor selection is unreachable with nothing to select.
		return nil, &WizardError{Code: "noDoctors", Message: "no doctors available for this specialty"}
	}

	applySpecialty(session, specialtyID, doctors)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	resp := session.Response()
	return &resp, nil
}

// SelectDoctor records the chosen doctor, resolves the bookable dates, and
// advances to date selection.
func (s *DefaultWizardService) SelectDoctor(ctx context.Context, sess *utils.PatientSession, sessionID, doctorID string) (*models.WizardResponse, error) {
	if doctorID == "" {
		return nil, ErrInvalidTransition
	}
	release, err := s.acquireBusy(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureStep(session, models.StepDoctorSelection); err != nil {
		return nil, err
	}
	if !containsDoctor(session.Doctors, doctorID) {
		return nil, ErrInvalidTransition
	}

	dates, err := s.Resolver.AvailableDates(ctx, sess.Token, doctorID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve available dates: %w", err)
	}
	if len(dates) == 0 {
		return nil, &WizardError{Code: "noDates", Message: "no bookable dates for this doctor"}
	}

	applyDoctor(session, doctorID, dates)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	resp := session.Response()
	return &resp, nil
}

// SelectDate validates the chosen date against the resolved availability,
// fetches the open slots for (doctor, date), and advances to time selection.
// An empty slot list keeps the wizard in date selection with the date
// cleared and surfaces ErrNoSlots.
func (s *DefaultWizardService) SelectDate(ctx context.Context, sess *utils.PatientSession, sessionID, isoDate string) (*models.WizardResponse, error) {
	if isoDate == "" {
		return nil, ErrInvalidTransition
	}
	release, err := s.acquireBusy(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureStep(session, models.StepDateSelection); err != nil {
		return nil, err
	}
	if !ContainsDate(session.AvailableDates, isoDate) {
		return nil, ErrDateNotAvailable
	}

	slots, err := s.Resolver.TimeSlots(ctx, sess.Token, session.Draft.DoctorID, isoDate)
	if err != nil {
		// Reset dependent state; stale slots from a previous date must not
		// remain visible.
		clearDate(session)
		if saveErr := s.saveSession(ctx, session); saveErr != nil {
			utils.GetLogger().Error("failed to persist wizard session after slot fetch failure",
				zap.String("sessionID", sessionID), zap.Error(saveErr))
		}
		return nil, fmt.Errorf("failed to load time slots: %w", err)
	}
	if len(slots) == 0 {
		clearDate(session)
		if err := s.saveSession(ctx, session); err != nil {
			return nil, err
		}
		return nil, ErrNoSlots
	}

	applyDate(session, isoDate, slots)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	resp := session.Response()
	return &resp, nil
}

// SelectTime records the chosen time token and advances to confirmation. No
// fetch happens here; the slot list was produced by the date selection.
func (s *DefaultWizardService) SelectTime(ctx context.Context, sess *utils.PatientSession, sessionID, timeToken string) (*models.WizardResponse, error) {
	if timeToken == "" {
		return nil, ErrInvalidTransition
	}
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := ensureStep(session, models.StepTimeSelection); err != nil {
		return nil, err
	}
	if !containsToken(session.TimeSlots, timeToken) {
		return nil, ErrTimeNotAvailable
	}

	applyTime(session, timeToken)
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	resp := session.Response()
	return &resp, nil
}

// Back moves the wizard one step backwards, dropping the data the forward
// path produced. Back at specialty selection is a no-op.
func (s *DefaultWizardService) Back(ctx context.Context, sessionID string) (*models.WizardResponse, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if applyBack(session) {
		if err := s.saveSession(ctx, session); err != nil {
			return nil, err
		}
	}
	resp := session.Response()
	return &resp, nil
}

// Get returns the current session state.
func (s *DefaultWizardService) Get(ctx context.Context, sessionID string) (*models.WizardResponse, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := session.Response()
	return &resp, nil
}

// Abandon discards the session and its draft entirely.
func (s *DefaultWizardService) Abandon(ctx context.Context, sessionID string) error {
	if err := s.Cache.Del(ctx, sessionPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to abandon wizard session: %w", err)
	}
	return nil
}

// --- session persistence ---

func (s *DefaultWizardService) loadSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.Cache.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &session, nil
}

func (s *DefaultWizardService) saveSession(ctx context.Context, session *models.WizardSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.Cache.Set(ctx, sessionPrefix+session.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

// acquireBusy blocks duplicate in-flight fetches for one session. The UI
// disables the triggering control; this is the server-side half of that
// guarantee.
func (s *DefaultWizardService) acquireBusy(ctx context.Context, sessionID string) (func(), error) {
	ok, err := s.Cache.SetNX(ctx, busyPrefix+sessionID, "1", busyTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		if err := s.Cache.Del(context.Background(), busyPrefix+sessionID).Err(); err != nil {
			utils.GetLogger().Warn("failed to release wizard session lock",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}, nil
}

func containsSpecialty(list []models.Specialty, id string) bool {
	for _, sp := range list {
		if sp.ID == id {
			return true
		}
	}
	return false
}

func containsDoctor(list []models.Doctor, id string) bool {
	for _, d := range list {
		if d.ID == id {
			return true
		}
	}
	return false
}

func containsToken(list []string, token string) bool {
	for _, t := range list {
		if t == token {
			return true
		}
	}
	return false
}
