// Package jobs hosts the gateway's background work. The only job today is
// the guest-booking link reconciler: registration is the source of truth for
// a conversion, and linking is an idempotent follow-up that may be retried
// out of band until it succeeds.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/metrics"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

const (
	defaultBatchSize   = 50
	defaultMaxAttempts = 10
)

// LinkReconciler periodically drains the pending link-job ledger, re-issuing
// the upstream link-all call for each job.
type LinkReconciler struct {
	jobs        ports.LinkJobRepository
	bookings    ports.BookingAPI
	maxAttempts int
	log         zerolog.Logger
}

func NewLinkReconciler(jobs ports.LinkJobRepository, bookings ports.BookingAPI, maxAttempts int, log zerolog.Logger) *LinkReconciler {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &LinkReconciler{jobs: jobs, bookings: bookings, maxAttempts: maxAttempts, log: log}
}

// Schedule registers the reconciler on c with the given cron spec
// (e.g. "@every 5m") and returns the entry id.
func (r *LinkReconciler) Schedule(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		r.Run(ctx)
	})
}

// Run processes one batch of pending jobs. Safe to invoke concurrently with
// enqueues; the upstream link-all is idempotent per email.
func (r *LinkReconciler) Run(ctx context.Context) {
	pending, err := r.jobs.Pending(ctx, defaultBatchSize)
	if err != nil {
		r.log.Error().Err(err).Msg("link reconciler: fetch pending failed")
		return
	}
	if len(pending) == 0 {
		return
	}

	r.log.Info().Int("jobs", len(pending)).Msg("link reconciler: processing batch")
	for _, job := range pending {
		if err := r.bookings.LinkAll(ctx, job.Email, job.UserID); err != nil {
			attempts := job.Attempts + 1
			failed := attempts >= r.maxAttempts
			if failed {
				metrics.LinkJobsTotal.WithLabelValues("failed").Inc()
				r.log.Error().Err(err).
					Str("job_id", job.ID).
					Int("attempts", attempts).
					Msg("link reconciler: job exhausted")
			} else {
				r.log.Warn().Err(err).
					Str("job_id", job.ID).
					Int("attempts", attempts).
					Msg("link reconciler: attempt failed")
			}
			if markErr := r.jobs.MarkAttempt(ctx, job.ID, attempts, err.Error(), failed); markErr != nil {
				r.log.Error().Err(markErr).Str("job_id", job.ID).Msg("link reconciler: mark attempt failed")
			}
			continue
		}

		if err := r.jobs.MarkDone(ctx, job.ID); err != nil {
			r.log.Error().Err(err).Str("job_id", job.ID).Msg("link reconciler: mark done failed")
			continue
		}
		metrics.LinkJobsTotal.WithLabelValues("reconciled").Inc()
		r.log.Info().Str("job_id", job.ID).Str("user_id", job.UserID).Msg("link reconciler: job completed")
	}
}
