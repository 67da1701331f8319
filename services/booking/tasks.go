// File: services/booking/tasks.go
package booking

import (
	"encoding/json"
	"time"

	"fairway/config"

	"github.com/hibiken/asynq"
)

// TypeReservationExpire releases a reservation hold that was never paid.
const TypeReservationExpire = "reservation:expire"

// ExpiryPayload is the task payload for reservation expiry.
type ExpiryPayload struct {
	BookingID string `json:"bookingId"`
}

// ExpiryScheduler schedules the release of unpaid reservation holds.
type ExpiryScheduler interface {
	ScheduleExpiry(bookingID string, at time.Time) error
}

// AsynqExpiryScheduler implements ExpiryScheduler on the asynq task
// queue; the cron worker consumes the tasks.
type AsynqExpiryScheduler struct {
	client *asynq.Client
}

// NewExpiryScheduler constructs an AsynqExpiryScheduler from config.
func NewExpiryScheduler() *AsynqExpiryScheduler {
	return &AsynqExpiryScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskDB,
		}),
	}
}

func (s *AsynqExpiryScheduler) ScheduleExpiry(bookingID string, at time.Time) error {
	payload, err := json.Marshal(ExpiryPayload{BookingID: bookingID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeReservationExpire, payload)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(at))
	return err
}
