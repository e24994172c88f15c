package config

import (
	"os"
	"path/filepath"
	"time"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0
const REPORT_CACHE_TTL_MINUTES = 60

// HTTP server
const SERVER_ADDRESS = ":8080"
const SERVER_SHUTDOWN_TIMEOUT_SECONDS = 5

// Dataset refresher config
const DATASET_REFRESHER_SCHEDULE_MINUTES = 60
const DATASET_WATCH_DEBOUNCE_MILLIS = 500

// Remote sources
const REMOTE_SOURCE_TIMEOUT_SECONDS = 30

// Data validity windows. All bounds are inclusive calendar dates.
var (
	HISTORICAL_START_DATE = date(2018, time.June, 1)
	HISTORICAL_END_DATE   = date(2022, time.July, 26)
	BLACKOUT_START_DATE   = date(2020, time.March, 14)
	BLACKOUT_END_DATE     = date(2021, time.June, 14)
	FORECAST_START_DATE   = date(2022, time.July, 27)
	FORECAST_END_DATE     = date(2022, time.August, 2)
)

// Busy level thresholds, in minutes.
const BUSY_LOW_AVG_WAIT = 15.0
const BUSY_LOW_PEAK_WAIT = 30.0
const BUSY_MEDIUM_AVG_WAIT = 30.0
const BUSY_MEDIUM_PEAK_WAIT = 60.0

// Segment recommendation policy
const SEGMENT_SUGGESTION_WAIT_MINUTES = 30
const DEFAULT_ATTRACTION = "Roller Coaster"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const HISTORICAL_DATA_RESOURCE = "merged_final_2.csv"
const FORECAST_DATA_RESOURCE = "merged_df.csv"
const SETTINGS_RESOURCE = "settings.yaml"

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
