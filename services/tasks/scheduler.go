// File: services/tasks/scheduler.go
package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"sanjudas/config"

	"github.com/hibiken/asynq"
)

// ExpiryScheduler enqueues payment-deadline sweep tasks. It satisfies the
// wizard's PaymentDueScheduler interface.
type ExpiryScheduler struct {
	client *asynq.Client
	delay  time.Duration
}

// NewExpiryScheduler builds the scheduler from the loaded config.
func NewExpiryScheduler() *ExpiryScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	return &ExpiryScheduler{
		client: client,
		delay:  time.Duration(config.AppConfig.PaymentDueHours) * time.Hour,
	}
}

// SchedulePaymentDue arms the sweep for a freshly created appointment.
func (s *ExpiryScheduler) SchedulePaymentDue(folio, patientID string) error {
	payload, err := json.Marshal(ExpirePayload{Folio: folio, PatientID: patientID})
	if err != nil {
		return fmt.Errorf("failed to marshal expiry payload: %w", err)
	}
	task := asynq.NewTask(TypeAppointmentExpire, payload)
	if _, err := s.client.Enqueue(task, asynq.ProcessIn(s.delay)); err != nil {
		return fmt.Errorf("failed to enqueue payment-due sweep for %s: %w", folio, err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (s *ExpiryScheduler) Close() error {
	return s.client.Close()
}
