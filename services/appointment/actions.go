// File: services/appointment/actions.go
package appointment

import (
	"context"
	"math"
	"time"

	"sanjudas/hospital"
	"sanjudas/models"
	"sanjudas/utils"

	"go.uber.org/zap"
)

// Cancel cancels an appointment. The list entry is optimistically marked
// CANCELLED before the backend call; a backend failure rolls it back to its
// prior status. Cancellation of a final-status appointment is rejected
// locally: attended and cancelled appointments are immutable, and paid ones
// go through the refund desk instead.
func (t *Tracker) Cancel(ctx context.Context, token, folio string) (*models.CancellationResult, error) {
	if folio == "" {
		return nil, hospital.NewValidationError("appointment folio is required")
	}

	t.mu.Lock()
	entry := t.findLocked(folio)
	if entry == nil {
		t.mu.Unlock()
		return nil, &hospital.NotFoundError{Resource: "appointment", ID: folio}
	}
	prior := entry.Status
	if !models.Cancellable(prior) {
		t.mu.Unlock()
		if prior == models.StatusPaidAwaiting {
			return nil, hospital.NewValidationError("a paid appointment must be cancelled through the refund desk")
		}
		return nil, hospital.NewValidationError("appointment in status %s cannot be cancelled", prior)
	}
	// Optimistic local transition.
	entry.Status = models.StatusCancelled
	t.mu.Unlock()

	result, err := t.Appointments.CancelAppointment(ctx, token, folio)
	if err != nil {
		// Roll back to the previously-known-good status.
		t.mu.Lock()
		if entry := t.findLocked(folio); entry != nil {
			entry.Status = prior
		}
		t.mu.Unlock()
		return nil, err
	}

	t.mu.Lock()
	if entry := t.findLocked(folio); entry != nil {
		entry.RefundAmount = result.RefundAmount
	}
	t.mu.Unlock()

	utils.GetLogger().Info("appointment cancelled",
		zap.String("folio", folio),
		zap.Float64("refund", result.RefundAmount))

	// Reconcile with server-computed fields.
	t.refresh(ctx, token)
	return result, nil
}

// Pay posts a payment against an appointment awaiting payment. Amounts are
// validated locally before any network call. Partial payments leave the
// status untouched; reaching the order total transitions the appointment to
// PAID_AWAITING_VISIT.
func (t *Tracker) Pay(ctx context.Context, token, folio string, amount float64) (*models.PaymentResult, error) {
	if folio == "" {
		return nil, hospital.NewValidationError("appointment folio is required")
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, hospital.NewValidationError("payment amount must be a positive number")
	}

	t.mu.Lock()
	entry := t.findLocked(folio)
	if entry == nil {
		t.mu.Unlock()
		return nil, &hospital.NotFoundError{Resource: "appointment", ID: folio}
	}
	status := entry.Status
	t.mu.Unlock()

	if !models.Payable(status) {
		if models.IsPaid(status) {
			return nil, hospital.NewValidationError("appointment is already paid")
		}
		return nil, hospital.NewValidationError("appointment in status %s is not awaiting payment", status)
	}

	result, err := t.Payments.PayAppointment(ctx, token, folio, amount)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	if entry := t.findLocked(folio); entry != nil {
		if result.FullyPaid && models.CanTransition(entry.Status, models.StatusPaidAwaiting) {
			entry.Status = models.StatusPaidAwaiting
		}
	}
	t.payments = append(t.payments, models.Payment{
		Folio:            result.PaymentFolio,
		AppointmentFolio: folio,
		AmountPaid:       amount,
		TotalDue:         result.TotalDue,
		CumulativePaid:   result.CumulativePaid,
		FullyPaid:        result.FullyPaid,
		PaidAt:           time.Now(),
	})
	t.mu.Unlock()

	utils.GetLogger().Info("payment posted",
		zap.String("folio", folio),
		zap.Float64("amount", amount),
		zap.Float64("cumulative", result.CumulativePaid),
		zap.Bool("fullyPaid", result.FullyPaid))

	t.refresh(ctx, token)
	return result, nil
}
