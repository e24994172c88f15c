package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"park-server/config"
	"park-server/db"
)

func TestNewContainer_DevUsesMockRedis(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Env = "dev"

	c := NewContainer(settings)
	require.NotNil(t, c)

	_, isMock := c.RedisClient.(*db.MockRedisClient)
	assert.True(t, isMock)
	assert.NotNil(t, c.DashboardService)
	assert.NotNil(t, c.DatasetRefresherService)
	assert.NotNil(t, c.ParkHttpServer)
	assert.Equal(t, []string{settings.HistoricalPath, settings.ForecastPath}, c.DatasetStore.Paths())
}
