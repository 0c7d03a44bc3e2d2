package worker

// retry_cron.go
// Background goroutine that periodically drains the email DLQ and re-enqueues
// entries that have delivery attempts left. Entries at the attempt cap are
// parked back for manual inspection.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-enqueues retryable email jobs from the DLQ. It respects the context for
// graceful shutdown.
func StartRetryCron(ctx context.Context, rdb *redis.Client) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, rdb)
			}
		}
	}()
}

func processRetries(ctx context.Context, rdb *redis.Client) {
	requeued := 0
	parked := make([]interface{}, 0)

	for i := 0; i < retryBatchSize; i++ {
		raw, err := rdb.RPop(ctx, DLQEmail).Result()
		if err != nil {
			break // empty queue or redis down
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("retry_cron: invalid DLQ entry, dropping")
			continue
		}

		if entry.Attempts >= MaxEmailAttempts {
			// Exhausted — keep it in the DLQ for manual inspection
			parked = append(parked, raw)
			continue
		}

		job := Job{Type: "email", Payload: entry.Payload}
		encoded, err := json.Marshal(job)
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to re-encode job")
			parked = append(parked, raw)
			continue
		}
		if err := rdb.LPush(ctx, QueueEmail, encoded).Err(); err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to re-enqueue job")
			parked = append(parked, raw)
			continue
		}
		requeued++
	}

	if len(parked) > 0 {
		if err := rdb.LPush(ctx, DLQEmail, parked...).Err(); err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to park exhausted entries")
		}
	}
	if requeued > 0 {
		log.Info().Int("requeued", requeued).Msg("retry_cron: re-enqueued failed emails")
	}
}
