package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQEmail holds notification emails that could not be delivered. The retry
// cron drains it; entries at the attempt cap stay parked for inspection.
const DLQEmail = "dlq:" + QueueEmail

// DLQEntry wraps a failed email job with enough metadata to retry or triage it.
type DLQEntry struct {
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
	Attempts int             `json:"attempts"`
}

// SendToDLQ parks a failed email job for later redelivery.
func SendToDLQ(ctx context.Context, rdb *redis.Client, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		Payload:  payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
		Attempts: attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Msg("dlq: failed to marshal entry")
		return
	}
	if err := rdb.LPush(ctx, DLQEmail, data).Err(); err != nil {
		log.Error().Err(err).Msg("dlq: failed to push entry")
		return
	}

	log.Warn().Str("reason", reason).Int("attempts", attempts).
		Msg("dlq: email parked for retry")
}

// DLQLength reports the email DLQ backlog, for the health of the mail path.
func DLQLength(ctx context.Context, rdb *redis.Client) (int64, error) {
	return rdb.LLen(ctx, DLQEmail).Result()
}
