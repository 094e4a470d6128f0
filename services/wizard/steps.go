package wizard

import "sanjudas/models"

// The step controller's transition rules, expressed as plain functions over
// the session so they can be unit-tested without Redis or a UI harness.

// ensureStep guards a selection event against the session's current step.
// Events are only legal in the step that owns their datum; there are no jump
// transitions.
func ensureStep(s *models.WizardSession, want models.Step) error {
	if s.Step != want {
		return ErrInvalidTransition
	}
	return nil
}

// applySpecialty records the chosen specialty and the fetched doctor list,
// entering doctor selection. The doctor list must be non-empty before the
// step becomes reachable.
func applySpecialty(s *models.WizardSession, specialtyID string, doctors []models.Doctor) {
	s.Draft.SpecialtyID = specialtyID
	s.Doctors = doctors
	s.Step = models.StepDoctorSelection
}

// applyDoctor records the chosen doctor and the resolved available dates,
// entering date selection.
func applyDoctor(s *models.WizardSession, doctorID string, dates []string) {
	s.Draft.DoctorID = doctorID
	s.AvailableDates = dates
	s.Step = models.StepDateSelection
}

// applyDate records the chosen date and its slot list, entering time
// selection. Callers must have verified the slot list is non-empty.
func applyDate(s *models.WizardSession, date string, slots []string) {
	s.Draft.Date = date
	s.TimeSlots = slots
	s.Step = models.StepTimeSelection
}

// clearDate is the empty-slot outcome: the session stays in date selection
// and the offending date is dropped.
func clearDate(s *models.WizardSession) {
	s.Draft.Date = ""
	s.TimeSlots = nil
}

// applyTime records the chosen time token, entering confirmation. No fetch
// happens on this transition.
func applyTime(s *models.WizardSession, timeToken string) {
	s.Draft.Time = timeToken
	s.Step = models.StepConfirmation
}

// applyBack moves one step backwards, clearing all data that depended on the
// forward path. Going back from specialty selection is a no-op. Returns
// whether the session changed.
func applyBack(s *models.WizardSession) bool {
	switch s.Step {
	case models.StepConfirmation:
		// Leaving confirmation clears the chosen time; the rest of the draft
		// survives so the user can pick a different slot.
		s.Draft.Time = ""
		s.Step = models.StepTimeSelection
	case models.StepTimeSelection:
		s.Draft.Time = ""
		s.TimeSlots = nil
		s.Draft.Date = ""
		s.Step = models.StepDateSelection
	case models.StepDateSelection:
		s.Draft.Date = ""
		s.AvailableDates = nil
		s.Draft.DoctorID = ""
		s.Step = models.StepDoctorSelection
	case models.StepDoctorSelection:
		s.Draft.DoctorID = ""
		s.Doctors = nil
		s.Draft.SpecialtyID = ""
		s.Step = models.StepSpecialtySelection
	default:
		return false
	}
	return true
}
