package models

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    AppointmentStatus
		wantErr bool
	}{
		{"AWAITING_PAYMENT", StatusAwaitingPayment, false},
		{"PAID_AWAITING_VISIT", StatusPaidAwaiting, false},
		{"ATTENDED", StatusAttended, false},
		{"CANCELLED", StatusCancelled, false},
		{"NO_SHOW", StatusNoShow, false},
		{"pendiente_pago", "", true},
		{"", "", true},
		{"PAID", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusAwaitingPayment, StatusPaidAwaiting, true},
		{StatusAwaitingPayment, StatusCancelled, true},
		{StatusAwaitingPayment, StatusNoShow, true},
		{StatusAwaitingPayment, StatusAttended, false},
		{StatusPaidAwaiting, StatusAttended, true},
		{StatusPaidAwaiting, StatusNoShow, true},
		{StatusPaidAwaiting, StatusCancelled, false},
		{StatusNoShow, StatusCancelled, true},
		{StatusNoShow, StatusAwaitingPayment, false},
		// Terminal statuses: no exits whatsoever.
		{StatusCancelled, StatusAwaitingPayment, false},
		{StatusCancelled, StatusPaidAwaiting, false},
		{StatusCancelled, StatusNoShow, false},
		{StatusAttended, StatusCancelled, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPayableCancellable(t *testing.T) {
	tests := []struct {
		status      AppointmentStatus
		payable     bool
		cancellable bool
	}{
		{StatusAwaitingPayment, true, true},
		{StatusPaidAwaiting, false, false},
		{StatusAttended, false, false},
		{StatusCancelled, false, false},
		{StatusNoShow, false, true},
	}
	for _, tt := range tests {
		if got := Payable(tt.status); got != tt.payable {
			t.Errorf("Payable(%s) = %v, want %v", tt.status, got, tt.payable)
		}
		if got := Cancellable(tt.status); got != tt.cancellable {
			t.Errorf("Cancellable(%s) = %v, want %v", tt.status, got, tt.cancellable)
		}
	}
}

func TestPaymentSetsDisjoint(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusAwaitingPayment, StatusPaidAwaiting, StatusAttended, StatusCancelled, StatusNoShow} {
		if IsAwaitingPayment(s) && IsPaid(s) {
			t.Errorf("status %s is both awaiting payment and paid", s)
		}
	}
}
