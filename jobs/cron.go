package jobs

import (
	"context"
	"time"

	"roomkeeper/services/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const warmTimeout = 30 * time.Second

// CacheWarmer reloads a cached listing from the database.
type CacheWarmer interface {
	WarmCache(ctx context.Context) error
}

// InitCronJobs schedules the cache warm-up and starts c. An empty spec schedules nothing.
func InitCronJobs(c *cron.Cron, spec string, log logger.Logger, warmers ...CacheWarmer) error {
	if spec == "" || len(warmers) == 0 {
		return nil
	}
	_, err := c.AddFunc(spec, func() {
		WarmAll(context.Background(), log, warmers...)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("cron jobs initialized successfully", zap.String("cache_warm_spec", spec))
	return nil
}

// WarmAll runs every warmer; one failing does not stop the others.
func WarmAll(ctx context.Context, log logger.Logger, warmers ...CacheWarmer) {
	ctx, cancel := context.WithTimeout(ctx, warmTimeout)
	defer cancel()
	for _, w := range warmers {
		if err := w.WarmCache(ctx); err != nil {
			log.Error("cache warm-up failed", zap.Error(err))
		}
	}
}
