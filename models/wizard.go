package models

// Step identifies the wizard's position. Transitions only move one step at a
// time; there are no jumps.
type Step int

const (
	StepSpecialtySelection Step = iota + 1
	StepDoctorSelection
	StepDateSelection
	StepTimeSelection
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepSpecialtySelection:
		return "SpecialtySelection"
	case StepDoctorSelection:
		return "DoctorSelection"
	case StepDateSelection:
		return "DateSelection"
	case StepTimeSelection:
		return "TimeSelection"
	case StepConfirmation:
		return "Confirmation"
	default:
		return "Unknown"
	}
}

// BookingDraft is the in-progress selection. It exists only while the wizard
// is running and is discarded on submit, failure, or back-navigation past its
// originating step.
type BookingDraft struct {
	PatientID   string `json:"patientId"`
	SpecialtyID string `json:"specialtyId,omitempty"`
	DoctorID    string `json:"doctorId,omitempty"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD
	Time        string `json:"time,omitempty"` // e.g. "08:30"
}

// WizardSession holds wizard context between steps, persisted in Redis
// between requests.
type WizardSession struct {
	SessionID string `json:"sessionId"`
	Step      Step   `json:"step"`

	Draft BookingDraft `json:"draft"`

	// Data fetched for the current path. Each list is only meaningful for the
	// selection that produced it and is cleared on back-navigation.
	Specialties    []Specialty `json:"specialties,omitempty"`
	Doctors        []Doctor    `json:"doctors,omitempty"`
	AvailableDates []string    `json:"availableDates,omitempty"` // YYYY-MM-DD, ascending
	TimeSlots      []string    `json:"timeSlots,omitempty"`
}

// WizardResponse is the wire shape handed back to the SPA after every wizard
// operation.
type WizardResponse struct {
	SessionID      string      `json:"sessionId"`
	Step           Step        `json:"step"`
	StepName       string      `json:"stepName"`
	Draft          BookingDraft `json:"draft"`
	Specialties    []Specialty `json:"specialties,omitempty"`
	Doctors        []Doctor    `json:"doctors,omitempty"`
	AvailableDates []string    `json:"availableDates,omitempty"`
	TimeSlots      []string    `json:"timeSlots,omitempty"`
}

// Response builds the wire shape for a session.
func (s *WizardSession) Response() WizardResponse {
	return WizardResponse{
		SessionID:      s.SessionID,
		Step:           s.Step,
		StepName:       s.Step.String(),
		Draft:          s.Draft,
		Specialties:    s.Specialties,
		Doctors:        s.Doctors,
		AvailableDates: s.AvailableDates,
		TimeSlots:      s.TimeSlots,
	}
}
