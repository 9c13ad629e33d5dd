package job

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deppfellow/happy/internal/config"
	"github.com/deppfellow/happy/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// orphanageMailer sends the registration notice.
type orphanageMailer interface {
	SendOrphanageCreatedEmail(to string, o email.OrphanageCreated) error
}

// InitHandlers wires the dependencies of the task handlers. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
	j.notifyEmail = cfg.Integration.NotifyEmail
	j.publicURL = strings.TrimRight(cfg.Server.PublicURL, "/")
}

func (j *JobService) handleOrphanageCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p OrphanageCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload never succeeds; skip retries.
		return fmt.Errorf("failed to unmarshal orphanage created payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskOrphanageCreated).
		Int64("orphanage_id", p.OrphanageID).
		Logger()

	if j.notifyEmail == "" || j.mailer == nil {
		log.Debug().Msg("No notification address configured, skipping orphanage created email")
		return nil
	}

	log.Info().Str("to", j.notifyEmail).Msg("Processing orphanage created task")

	err := j.mailer.SendOrphanageCreatedEmail(j.notifyEmail, email.OrphanageCreated{
		Name:           p.Name,
		OpeningHours:   p.OpeningHours,
		OpenOnWeekends: p.OpenOnWeekends,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		ImageCount:     p.ImageCount,
		DetailURL:      fmt.Sprintf("%s/orphanages/%d", j.publicURL, p.OrphanageID),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send orphanage created email")
		return err
	}

	log.Info().Msg("Successfully sent orphanage created email")
	return nil
}
