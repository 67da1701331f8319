package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fairway/config"
	bookingRepo "fairway/database/repository/booking"
	"fairway/services/booking"

	"github.com/hibiken/asynq"
)

// InitExpiryWorker runs the reservation-expiry worker in background. It
// consumes the tasks the booking service schedules when a hold is
// created and releases any hold that was never paid.
func InitExpiryWorker(repo bookingRepo.BookingRepository) {
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
	mux.HandleFunc(booking.TypeReservationExpire, handleExpiryTask(repo))

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleExpiryTask(repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p booking.ExpiryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ExpiryWorker] invalid payload: %v", err)
			return err
		}

		// No-op when the booking was paid or cancelled in the meantime;
		// the repository guards on status and expiry timestamp.
		if err := repo.ExpireReservation(ctx, p.BookingID); err != nil {
			log.Printf("[ExpiryWorker] failed to expire reservation %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}
