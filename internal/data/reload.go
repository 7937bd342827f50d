package data

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Reloader periodically reloads the dataset into a Store. A failed load
// keeps the previous repository.
type Reloader struct {
	store  *Store
	load   func() (*Repository, error)
	logger *slog.Logger
	cron   *cron.Cron
}

func NewReloader(store *Store, load func() (*Repository, error), logger *slog.Logger) *Reloader {
	return &Reloader{
		store:  store,
		load:   load,
		logger: logger.With("component", "reloader"),
		cron:   cron.New(),
	}
}

// Start schedules reloads using a standard five-field cron expression.
func (r *Reloader) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() { _ = r.Reload() }); err != nil {
		return fmt.Errorf("invalid reload schedule %q: %w", schedule, err)
	}
	r.cron.Start()
	r.logger.Info("dataset reload scheduled", "schedule", schedule)
	return nil
}

// Reload loads the dataset once and swaps it in on success.
func (r *Reloader) Reload() error {
	repo, err := r.load()
	if err != nil {
		r.logger.Error("dataset reload failed", "error", err)
		return err
	}
	r.store.Swap(repo)
	r.logger.Info("dataset reloaded", "stations", len(repo.StationIDs()), "bounds", repo.GlobalYearBounds().String())
	return nil
}

// Stop halts scheduling; the returned context is done once running jobs finish.
func (r *Reloader) Stop() context.Context {
	return r.cron.Stop()
}
