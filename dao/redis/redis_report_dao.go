package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"

	"park-server/db"
	"park-server/models"
)

const DASHBOARD_REPORT_KEY_PREFIX = "dashboard_report_v1:"

// DASHBOARD_REPORT_KEY_FORMAT is used to cache one report per dataset generation, granularity, reference date and attraction.
const DASHBOARD_REPORT_KEY_FORMAT = DASHBOARD_REPORT_KEY_PREFIX + "%d:%s:%s:%s"

// RedisReportDAO caches computed dashboard reports in Redis.
type RedisReportDAO struct {
	client db.RedisClient
}

// NewRedisReportDAO initializes a RedisReportDAO with the Redis client.
func NewRedisReportDAO(client db.RedisClient) *RedisReportDAO {
	return &RedisReportDAO{client: client}
}

// ReportKey builds the cache key. The attraction is escaped so names with
// spaces or separators stay one key segment. Reports of an older dataset
// generation are never read again.
func ReportKey(generation uint64, g models.Granularity, reference, attraction string) string {
	return fmt.Sprintf(DASHBOARD_REPORT_KEY_FORMAT, generation, g, reference, url.QueryEscape(attraction))
}

// SetReport caches a report built from the given dataset generation.
func (dao *RedisReportDAO) SetReport(generation uint64, r *models.DashboardReport, requestedAttraction string) error {
	key := ReportKey(generation, r.Granularity, r.Reference, requestedAttraction)
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report %s: %w", key, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set report in redis: %w", err)
	}
	return nil
}

// GetReport returns the cached report, or nil on a cache miss.
func (dao *RedisReportDAO) GetReport(generation uint64, g models.Granularity, reference, attraction string) (*models.DashboardReport, error) {
	key := ReportKey(generation, g, reference, attraction)
	str, err := dao.client.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from redis: %w", err)
	}
	var r models.DashboardReport
	if err := json.Unmarshal([]byte(str), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report JSON: %w", err)
	}
	return &r, nil
}

// ListCachedReportKeys returns the keys of all cached reports.
func (dao *RedisReportDAO) ListCachedReportKeys() ([]string, error) {
	keys, err := dao.client.Keys(DASHBOARD_REPORT_KEY_PREFIX + "*")
	if err != nil {
		return nil, fmt.Errorf("failed to list report keys: %w", err)
	}
	return keys, nil
}

// PurgeReports deletes every cached report and returns how many were removed.
func (dao *RedisReportDAO) PurgeReports() (int, error) {
	keys, err := dao.ListCachedReportKeys()
	if err != nil {
		return 0, err
	}
	for _, k := range keys {
		if err := dao.client.Del(k); err != nil {
			return 0, fmt.Errorf("failed to delete report key %s: %w", k, err)
		}
	}
	log.Printf("[RedisReportDAO] Purged %d cached reports", len(keys))
	return len(keys), nil
}
