package models

import (
	"fmt"
	"time"
)

// AppointmentStatus is the canonical status vocabulary. The hospital backend
// speaks several dialects (see NormalizeStatus); everything is mapped to these
// values at the deserialization boundary and never downstream.
type AppointmentStatus string

const (
	StatusAwaitingPayment AppointmentStatus = "AWAITING_PAYMENT"
	StatusPaidAwaiting    AppointmentStatus = "PAID_AWAITING_VISIT"
	StatusAttended        AppointmentStatus = "ATTENDED"
	StatusCancelled       AppointmentStatus = "CANCELLED"
	StatusNoShow          AppointmentStatus = "NO_SHOW"
)

func ParseStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusAwaitingPayment, StatusPaidAwaiting, StatusAttended, StatusCancelled, StatusNoShow:
		return AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown appointment status: %s", s)
	}
}

// allowedTransitions encodes the lifecycle. CANCELLED and ATTENDED are
// terminal; in particular a cancelled appointment can never re-enter any
// other status.
var allowedTransitions = map[AppointmentStatus]map[AppointmentStatus]bool{
	StatusAwaitingPayment: {StatusPaidAwaiting: true, StatusCancelled: true, StatusNoShow: true},
	StatusPaidAwaiting:    {StatusAttended: true, StatusNoShow: true},
	StatusNoShow:          {StatusCancelled: true},
	StatusAttended:        {},
	StatusCancelled:       {},
}

func CanTransition(from, to AppointmentStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// awaitingPaymentSet and paidSet gate the payment action; they are disjoint
// and checked in that order (must be awaiting, must not be paid).
var awaitingPaymentSet = map[AppointmentStatus]bool{
	StatusAwaitingPayment: true,
}

var paidSet = map[AppointmentStatus]bool{
	StatusPaidAwaiting: true,
	StatusAttended:     true,
}

func IsAwaitingPayment(s AppointmentStatus) bool { return awaitingPaymentSet[s] }

func IsPaid(s AppointmentStatus) bool { return paidSet[s] }

// Payable reports whether a payment may be posted against an appointment.
func Payable(s AppointmentStatus) bool {
	return IsAwaitingPayment(s) && !IsPaid(s)
}

// Cancellable excludes the configured final statuses. Paid appointments go
// through the refund desk instead, so they are final here too.
func Cancellable(s AppointmentStatus) bool {
	switch s {
	case StatusAttended, StatusPaidAwaiting, StatusCancelled:
		return false
	default:
		return true
	}
}

// Appointment is created by the booking submitter and only ever
// status-transitioned afterwards, never deleted.
type Appointment struct {
	Folio        string            `json:"folio"`
	PatientName  string            `json:"patientName"`
	DoctorName   string            `json:"doctorName"`
	DoctorID     string            `json:"doctorId,omitempty"`
	Specialty    string            `json:"specialty"`
	Office       string            `json:"office"`
	DateTime     time.Time         `json:"dateTime"`
	Status       AppointmentStatus `json:"status"`
	Cost         float64           `json:"cost"`
	PaymentDue   time.Time         `json:"paymentDue,omitempty"`
	RefundAmount float64           `json:"refundAmount,omitempty"`
}

// AppointmentFilter selects at most one server-side filter dimension per
// request. Precedence when several are set: status, then date range, then
// doctor id.
type AppointmentFilter struct {
	Status   AppointmentStatus `json:"status,omitempty"`
	FromDate string            `json:"fromDate,omitempty"` // YYYY-MM-DD
	ToDate   string            `json:"toDate,omitempty"`   // YYYY-MM-DD
	DoctorID string            `json:"doctorId,omitempty"`
}

// IsZero reports whether no filter dimension is set.
func (f AppointmentFilter) IsZero() bool {
	return f.Status == "" && f.FromDate == "" && f.ToDate == "" && f.DoctorID == ""
}
