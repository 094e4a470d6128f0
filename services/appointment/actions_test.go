package appointment

import (
	"context"
	"math"
	"testing"

	"sanjudas/hospital"
	"sanjudas/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedTracker(t *testing.T, backend *fakeBackend, records ...hospital.AppointmentRecord) *Tracker {
	t.Helper()
	backend.setRecords(records)
	tr := NewTracker("p-1", backend, backend)
	_, err := tr.Load(context.Background(), "tok", models.AppointmentFilter{})
	require.NoError(t, err)
	return tr
}

func statusOf(t *testing.T, tr *Tracker, folio string) models.AppointmentStatus {
	t.Helper()
	tr.mu.Lock()
	defer tr.mu.Unlock()
	entry := tr.findLocked(folio)
	require.NotNil(t, entry, "appointment %s not in tracker", folio)
	return entry.Status
}

func TestCancelSuccess(t *testing.T) {
	backend := &fakeBackend{
		cancelResult: &models.CancellationResult{Folio: "F-1", RefundAmount: 0},
	}
	tr := loadedTracker(t, backend, record("F-1", "AWAITING_PAYMENT", "2026-10-05T09:00:00"))

	result, err := tr.Cancel(context.Background(), "tok", "F-1")
	require.NoError(t, err)
	assert.Equal(t, "F-1", result.Folio)
	assert.Equal(t, 1, backend.cancelCalls)
}

func TestCancelRollsBackOnBackendFailure(t *testing.T) {
	backend := &fakeBackend{
		cancelErr: &hospital.FetchError{Op: "cancelAppointment", Message: "backend down"},
	}
	tr := loadedTracker(t, backend, record("F-1", "AWAITING_PAYMENT", "2026-10-05T09:00:00"))

	_, err := tr.Cancel(context.Background(), "tok", "F-1")
	require.Error(t, err)

	// The optimistic CANCELLED mark must have been rolled back.
	assert.Equal(t, models.StatusAwaitingPayment, statusOf(t, tr, "F-1"))
}

func TestCancelRejectedStatuses(t *testing.T) {
	tests := []struct {
		status  string
		wantMsg string
	}{
		{"ATTENDED", "cannot be cancelled"},
		{"CANCELLED", "cannot be cancelled"},
		{"PAID_AWAITING_VISIT", "refund desk"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			backend := &fakeBackend{}
			tr := loadedTracker(t, backend, record("F-1", tt.status, "2026-10-05T09:00:00"))

			_, err := tr.Cancel(context.Background(), "tok", "F-1")
			var verr *hospital.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, tt.wantMsg)
			assert.Zero(t, backend.cancelCalls)
		})
	}
}

func TestCancelNoShowAllowed(t *testing.T) {
	backend := &fakeBackend{
		cancelResult: &models.CancellationResult{Folio: "F-1"},
	}
	tr := loadedTracker(t, backend, record("F-1", "NO_SHOW", "2026-10-05T09:00:00"))

	_, err := tr.Cancel(context.Background(), "tok", "F-1")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.cancelCalls)
}

func TestCancelUnknownFolio(t *testing.T) {
	backend := &fakeBackend{}
	tr := loadedTracker(t, backend, record("F-1", "AWAITING_PAYMENT", "2026-10-05T09:00:00"))

	_, err := tr.Cancel(context.Background(), "tok", "F-404")
	var nf *hospital.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestPayPartialThenFull(t *testing.T) {
	backend := &fakeBackend{
		payResult: &models.PaymentResult{
			PaymentFolio: "PAY-1", CumulativePaid: 200, TotalDue: 500,
			FullyPaid: false, RemainingBalance: 300,
		},
	}
	tr := loadedTracker(t, backend, record("F-1", "AWAITING_PAYMENT", "2026-10-05T09:00:00"))

	result, err := tr.Pay(context.Background(), "tok", "F-1", 200)
	require.NoError(t, err)
	assert.False(t, result.FullyPaid)
	assert.Equal(t, 300.0, result.RemainingBalance)
	// Partial payment leaves the status untouched.
	assert.Equal(t, models.StatusAwaitingPayment, statusOf(t, tr, "F-1"))

	backend.mu.Lock()
	backend.payResult = &models.PaymentResult{
		PaymentFolio: "PAY-2", CumulativePaid: 500, TotalDue: 500,
		FullyPaid: true, RemainingBalance: 0,
	}
	backend.mu.Unlock()

	result, err = tr.Pay(context.Background(), "tok", "F-1", 300)
	require.NoError(t, err)
	assert.True(t, result.FullyPaid)
	assert.Equal(t, 0.0, result.RemainingBalance)
	assert.Equal(t, 2, backend.payCalls)
	// Reaching the order total transitions the appointment, and the
	// post-mutation refresh agrees with the backend.
	assert.Equal(t, models.StatusPaidAwaiting, statusOf(t, tr, "F-1"))

	payments := tr.PostedPayments()
	require.Len(t, payments, 2)
	assert.Equal(t, 200.0, payments[0].AmountPaid)
	assert.False(t, payments[0].FullyPaid)
	assert.Equal(t, 300.0, payments[1].AmountPaid)
	assert.True(t, payments[1].FullyPaid)
	assert.Equal(t, "F-1", payments[1].AppointmentFolio)
}

func TestPayInvalidAmountsRejectedLocally(t *testing.T) {
	backend := &fakeBackend{}
	tr := loadedTracker(t, backend, record("F-1", "AWAITING_PAYMENT", "2026-10-05T09:00:00"))

	for _, amount := range []float64{0, -50, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := tr.Pay(context.Background(), "tok", "F-1", amount)
		var verr *hospital.ValidationError
		require.ErrorAs(t, err, &verr, "amount %v", amount)
	}
	assert.Zero(t, backend.payCalls)
}

func TestPayRejectedWhenNotAwaitingPayment(t *testing.T) {
	tests := []struct {
		status  string
		wantMsg string
	}{
		{"PAID_AWAITING_VISIT", "already paid"},
		{"ATTENDED", "already paid"},
		{"CANCELLED", "not awaiting payment"},
		{"NO_SHOW", "not awaiting payment"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			backend := &fakeBackend{}
			tr := loadedTracker(t, backend, record("F-1", tt.status, "2026-10-05T09:00:00"))

			_, err := tr.Pay(context.Background(), "tok", "F-1", 100)
			var verr *hospital.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.wantMsg)
			assert.Zero(t, backend.payCalls)
		})
	}
}
