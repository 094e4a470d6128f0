package wizard

import "fmt"

// WizardError is a flow-control error raised by the step controller itself,
// as opposed to the backend taxonomy in the hospital package.
type WizardError struct {
	Code    string
	Message string
}

func (e *WizardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrSessionNotFound means the wizard session expired or never existed.
	ErrSessionNotFound = &WizardError{Code: "sessionNotFound", Message: "wizard session not found or expired"}

	// ErrNoSlots signals the chosen date has no open time slots; the wizard
	// stays in date selection with the date cleared.
	ErrNoSlots = &WizardError{Code: "noSlots", Message: "no availability for this date"}

	// ErrBusy means a fetch for this session is already in flight; the
	// duplicate trigger is ignored.
	ErrBusy = &WizardError{Code: "busy", Message: "a request for this session is already in progress"}

	// ErrSubmitInFlight means a create request is already pending; the second
	// submit is ignored, not queued.
	ErrSubmitInFlight = &WizardError{Code: "submitInFlight", Message: "booking submission already in progress"}

	// ErrInvalidTransition covers selection events that are illegal in the
	// session's current step.
	ErrInvalidTransition = &WizardError{Code: "invalidTransition", Message: "selection not valid in the current step"}

	// ErrDateNotAvailable rejects dates outside the doctor's available set.
	ErrDateNotAvailable = &WizardError{Code: "dateNotAvailable", Message: "selected date is not available for this doctor"}

	// ErrTimeNotAvailable rejects time tokens outside the fetched slot list.
	ErrTimeNotAvailable = &WizardError{Code: "timeNotAvailable", Message: "selected time is not available on this date"}
)
