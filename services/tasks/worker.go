// File: services/tasks/worker.go
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"sanjudas/config"
	"sanjudas/hospital"
	"sanjudas/models"
	"sanjudas/services/appointment"

	"github.com/hibiken/asynq"
)

const TypeAppointmentExpire = "appointment:expire"

// ExpirePayload identifies the appointment a sweep task must inspect.
type ExpirePayload struct {
	Folio     string `json:"folio"`
	PatientID string `json:"patientId"`
}

// InitExpiryWorker runs the payment-deadline sweep worker in the background.
// Appointments still awaiting payment when their task fires are cancelled.
func InitExpiryWorker(appointments hospital.AppointmentAPI, serviceToken func() string) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentExpire, handleExpireTask(appointments, serviceToken))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpireTask(appointments hospital.AppointmentAPI, serviceToken func() string) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ExpirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryHandler] invalid payload: %v", err)
			return err
		}

		token := serviceToken()
		record, err := appointments.GetAppointment(ctx, token, p.Folio)
		if err != nil {
			var notFound *hospital.NotFoundError
			if errors.As(err, &notFound) {
				// Already gone; nothing to sweep.
				return nil
			}
			log.Printf("[ExpiryHandler] failed to load appointment %s: %v", p.Folio, err)
			return err
		}

		normalized := appointment.NormalizeRecord(*record)
		if !models.IsAwaitingPayment(normalized.Status) {
			// Paid or otherwise settled in time.
			return nil
		}

		if _, err := appointments.CancelAppointment(ctx, token, p.Folio); err != nil {
			log.Printf("[ExpiryHandler] failed to cancel unpaid appointment %s: %v", p.Folio, err)
			return err
		}
		log.Printf("[ExpiryHandler] cancelled unpaid appointment %s past payment deadline", p.Folio)
		return nil
	}
}
