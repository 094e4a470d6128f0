package models

import "time"

// Payment records one (possibly partial) payment against an appointment.
type Payment struct {
	Folio            string    `json:"folio"`
	AppointmentFolio string    `json:"appointmentFolio"`
	AmountPaid       float64   `json:"amountPaid"`
	TotalDue         float64   `json:"totalDue"`
	CumulativePaid   float64   `json:"cumulativePaid"`
	FullyPaid        bool      `json:"fullyPaid"`
	PaidAt           time.Time `json:"paidAt"`
}

// PaymentResult is what the backend reports after a payment is posted.
// RemainingBalance is derived client-side as totalDue - cumulativePaid.
type PaymentResult struct {
	PaymentFolio     string  `json:"paymentFolio"`
	CumulativePaid   float64 `json:"cumulativePaid"`
	TotalDue         float64 `json:"totalDue"`
	FullyPaid        bool    `json:"fullyPaid"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// CancellationResult carries the backend's server-computed refund, if any.
type CancellationResult struct {
	Folio        string  `json:"folio"`
	RefundAmount float64 `json:"refundAmount"`
}
