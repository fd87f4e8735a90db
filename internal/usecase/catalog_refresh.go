package usecase

import (
	"context"
	"time"

	"QuantDesk/internal/domain/models"
	applogger "QuantDesk/pkg/logger"
	"QuantDesk/pkg/queue"
)

// RefreshPayload names the category a refresh message targets.
type RefreshPayload struct {
	Category string `json:"category"`
}

// CatalogRefreshJob re-pulls one category's snapshot. It runs either on
// a queue worker or inline from the refresher's ticker.
type CatalogRefreshJob struct {
	catalog *Catalog
	logger  *applogger.Logger
}

// NewCatalogRefreshJob creates the refresh job.
func NewCatalogRefreshJob(catalog *Catalog, logger *applogger.Logger) *CatalogRefreshJob {
	return &CatalogRefreshJob{catalog: catalog, logger: logger}
}

func (j *CatalogRefreshJob) Name() string { return "catalog-refresh" }

func (j *CatalogRefreshJob) Type() string { return "catalog.refresh" }

// Handle refreshes the category named by the payload.
func (j *CatalogRefreshJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[RefreshPayload](payload)
	if err != nil {
		return err
	}
	cat, err := models.ParseCategory(p.Category)
	if err != nil {
		return err
	}
	if err := j.catalog.Refresh(ctx, cat); err != nil {
		// stale snapshots keep serving; just surface the failure
		if j.logger != nil {
			j.logger.Warn("catalog refresh failed",
				applogger.String("category", p.Category),
				applogger.Error(err))
		}
		return err
	}
	return nil
}

// CatalogRefresher periodically triggers a refresh of every category.
// With a queue configured the trigger is a published message picked up
// by a worker; without one the job runs inline.
type CatalogRefresher struct {
	job      *CatalogRefreshJob
	queue    queue.QueueService
	interval time.Duration
	logger   *applogger.Logger
}

// NewCatalogRefresher creates the refresher. q may be nil.
func NewCatalogRefresher(job *CatalogRefreshJob, q queue.QueueService, interval time.Duration, logger *applogger.Logger) *CatalogRefresher {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CatalogRefresher{job: job, queue: q, interval: interval, logger: logger}
}

// Start blocks until ctx is done, refreshing all categories once at
// startup and then on every tick.
func (r *CatalogRefresher) Start(ctx context.Context) error {
	r.refreshAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *CatalogRefresher) refreshAll(ctx context.Context) {
	for _, cat := range models.Categories() {
		payload := RefreshPayload{Category: cat.String()}
		var err error
		if r.queue != nil {
			err = r.queue.PublishMessage(ctx, r.job.Type(), payload)
		} else {
			err = r.job.Handle(ctx, payload)
		}
		if err != nil && r.logger != nil {
			r.logger.Warn("refresh trigger failed",
				applogger.String("category", cat.String()),
				applogger.Error(err))
		}
	}
}
