package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/FredesVirginia/captus-back/internal/infra"
)

// MaxEmailAttempts before a failed notification lands permanently in the DLQ.
const MaxEmailAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail. Attempts counts
// deliveries already tried, so the retry cron knows when to give up.
type EmailJobPayload struct {
	ToEmail  string `json:"to_email"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Attempts int    `json:"attempts"`
}

// EmailWorker processes notification email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

// Process delivers one queued notification email via SMTP. Failed deliveries
// go to the DLQ where the retry cron picks them up.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, "", nil); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		payload.Attempts++
		data, merr := json.Marshal(payload)
		if merr != nil {
			log.Error().Err(merr).Msg("email_worker: failed to marshal for DLQ")
			return
		}
		SendToDLQ(ctx, w.rdb, data, err.Error(), payload.Attempts)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: notification sent")
}
