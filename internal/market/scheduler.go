package market

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Models the refresher keeps warm in the cache.
var watchedModels = []struct {
	Make  string
	Model string
}{
	{"Ram", "Ram 1500"},
	{"Ram", "Ram 2500"},
	{"Ram", "Ram 3500"},
	{"Ford", "F-150"},
	{"Ford", "F-250"},
	{"Chevrolet", "Silverado 1500"},
	{"GMC", "Sierra 1500"},
	{"Toyota", "Tundra"},
	{"Toyota", "Tacoma"},
}

// Refresher periodically re-resolves trends and stats for watched models so
// scoring requests hit a warm cache.
type Refresher struct {
	service *Service
	cron    *cron.Cron
	spec    string
	logger  *zap.Logger
}

// NewRefresher creates a refresher running on the given cron spec. An empty
// spec refreshes every six hours.
func NewRefresher(service *Service, spec string, logger *zap.Logger) *Refresher {
	if spec == "" {
		spec = "0 0 */6 * * *"
	}
	return &Refresher{
		service: service,
		cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
		logger:  logger,
	}
}

// Start schedules the refresh job and runs one warmup pass in the
// background.
func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.refresh); err != nil {
		return err
	}
	r.cron.Start()
	go r.refresh()

	r.logger.Info("Market data refresher started", zap.String("spec", r.spec))
	return nil
}

// Stop halts the cron scheduler, waiting for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, m := range watchedModels {
		if _, err := r.service.Trends(ctx, m.Make, m.Model); err != nil {
			r.logger.Warn("Trend refresh failed",
				zap.Error(err), zap.String("make", m.Make), zap.String("model", m.Model))
		}
		if _, err := r.service.Stats(ctx, m.Make, m.Model); err != nil {
			r.logger.Warn("Stats refresh failed",
				zap.Error(err), zap.String("make", m.Make), zap.String("model", m.Model))
		}
	}

	r.logger.Debug("Market data refresh complete", zap.Int("models", len(watchedModels)))
}
