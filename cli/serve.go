package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"park-server/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	container, err := buildContainer()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// A failed warm-up is not fatal; requests report the load error until the sources are fixed.
	if ds, err := container.DatasetStore.Dataset(ctx); err != nil {
		log.Printf("[MAIN] Initial dataset load failed: %v", err)
	} else {
		log.Printf("[MAIN] Loaded %d records", ds.Len())
	}

	refresher := container.DatasetRefresherService
	refresher.StartPeriodicJob(ctx, config.DATASET_REFRESHER_SCHEDULE_MINUTES*time.Minute)
	if container.Settings.WatchSources {
		go func() {
			if err := refresher.Watch(ctx, config.DATASET_WATCH_DEBOUNCE_MILLIS*time.Millisecond); err != nil {
				log.Printf("[MAIN] Source watcher stopped: %v", err)
			}
		}()
	}

	return container.ParkHttpServer.Start(ctx)
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
