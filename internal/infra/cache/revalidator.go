package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"market-client/internal/pkg/errs"
)

// Revalidator refreshes subscribed keys on a fixed schedule and on focus events.
// It is how server-side changes (timeouts, the counterparty's actions) reach open views.
type Revalidator struct {
	store    *Store
	cron     *cron.Cron
	interval time.Duration
	logger   *slog.Logger
}

func NewRevalidator(store *Store, interval time.Duration, logger *slog.Logger) *Revalidator {
	return &Revalidator{
		store:    store,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		interval: interval,
		logger:   logger,
	}
}

// Start schedules polling. A non-positive interval disables it.
func (r *Revalidator) Start() error {
	if r.interval <= 0 {
		r.logger.Info("cache polling disabled")
		return nil
	}
	if _, err := r.cron.AddFunc("@every "+r.interval.String(), r.tick); err != nil {
		return errs.Wrapf(err, "schedule revalidation every %s", r.interval)
	}
	r.cron.Start()
	r.logger.Info("cache polling started", slog.Duration("interval", r.interval))
	return nil
}

func (r *Revalidator) Stop(ctx context.Context) error {
	select {
	case <-r.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "stop revalidator")
	}
}

// Focus revalidates every subscribed key, the way a returning user expects fresh views.
func (r *Revalidator) Focus() int {
	n := r.store.InvalidateActive("")
	r.logger.Debug("focus revalidation", slog.Int("keys", n))
	return n
}

func (r *Revalidator) tick() {
	n := r.store.InvalidateActive("")
	if n > 0 {
		r.logger.Debug("poll revalidation", slog.Int("keys", n))
	}
}
