package services

import (
	"context"
	"log"
	"time"

	"park-server/dao/redis"
	"park-server/dataset"
)

// DatasetRefresherService reloads the sources and drops cached reports when
// the source files change.
type DatasetRefresherService struct {
	store     *dataset.Store
	reportDao *redis.RedisReportDAO
}

// NewDatasetRefresherService constructs a new refresher with dependencies.
func NewDatasetRefresherService(store *dataset.Store, reportDao *redis.RedisReportDAO) *DatasetRefresherService {
	return &DatasetRefresherService{
		store:     store,
		reportDao: reportDao,
	}
}

// Refresh reloads both sources and purges the report cache. On failure the
// previously loaded dataset stays in place.
func (vr *DatasetRefresherService) Refresh(ctx context.Context) error {
	ds, err := vr.store.Reload(ctx)
	if err != nil {
		log.Printf("[DatasetRefresherService] Reload failed, keeping previous dataset: %v", err)
		return err
	}
	log.Printf("[DatasetRefresherService] Reloaded dataset with %d records", ds.Len())

	if vr.reportDao != nil {
		if _, err := vr.reportDao.PurgeReports(); err != nil {
			log.Printf("[DatasetRefresherService] Failed to purge cached reports: %v", err)
			return err
		}
	}
	return nil
}

// StartPeriodicJob launches the background reload loop at the given interval.
func (vr *DatasetRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go vr.startPeriodicJob(ctx, interval)
}

func (vr *DatasetRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Println("[DatasetRefresherService] Running periodic dataset refresh.")
			if err := vr.Refresh(ctx); err == nil {
				log.Println("[DatasetRefresherService] Refresh completed successfully.")
			}
		}
	}
}

// Watch refreshes whenever a local source file changes. It blocks until ctx
// is cancelled.
func (vr *DatasetRefresherService) Watch(ctx context.Context, debounce time.Duration) error {
	w, err := dataset.NewSourceWatcher(vr.store.Paths(), debounce, func(path string) {
		log.Printf("[DatasetRefresherService] Source changed: %s", path)
		vr.Refresh(ctx)
	})
	if err != nil {
		return err
	}
	log.Printf("[DatasetRefresherService] Watching sources %v", vr.store.Paths())
	return w.Run(ctx)
}
