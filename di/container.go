package di

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"park-server/api"
	"park-server/config"
	"park-server/dao/redis"
	"park-server/dataset"
	"park-server/db"
	"park-server/server"
	"park-server/server/handlers"
	services "park-server/service"
)

// Container holds all application dependencies.
type Container struct {
	Settings                *config.Settings
	RedisClient             db.RedisClient
	RedisReportDao          *redis.RedisReportDAO
	SourceClient            *api.HTTPClient
	DatasetStore            *dataset.Store
	DashboardService        *services.DashboardService
	DatasetRefresherService *services.DatasetRefresherService
	DashboardHandler        *handlers.DashboardHandler
	MuxRouter               *mux.Router
	Router                  *server.Router
	ParkHttpServer          *server.ParkHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(settings *config.Settings) *Container {
	log.Printf("initializing container - env: %s", settings.Env)
	ctx := context.Background()

	var redisClient db.RedisClient
	if settings.Env != "prod" {
		log.Printf("Using in-memory redis client")
		redisClient = db.NewMockRedisClient(ctx)
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     settings.RedisAddress,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		})
		redisClient = db.NewRedisClientImpl(ctx, redisInternalClient, config.REPORT_CACHE_TTL_MINUTES*time.Minute)
		if err := redisClient.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
	}

	redisReportDao := redis.NewRedisReportDAO(redisClient)

	// Remote sources are fetched by absolute URL, so no base URL is needed.
	sourceClient := api.NewHTTPClient("")
	datasetStore := dataset.NewStore(settings.HistoricalPath, settings.ForecastPath, sourceClient)

	dashboardService := services.NewDashboardService(datasetStore, redisReportDao)
	datasetRefresherService := services.NewDatasetRefresherService(datasetStore, redisReportDao)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(dashboardHandler, muxRouter)
	parkHttpServer := server.NewParkHttpServer(router, muxRouter, settings.ServerAddress)

	return &Container{
		Settings:                settings,
		RedisClient:             redisClient,
		RedisReportDao:          redisReportDao,
		SourceClient:            sourceClient,
		DatasetStore:            datasetStore,
		DashboardService:        dashboardService,
		DatasetRefresherService: datasetRefresherService,
		DashboardHandler:        dashboardHandler,
		MuxRouter:               muxRouter,
		Router:                  router,
		ParkHttpServer:          parkHttpServer,
	}
}
