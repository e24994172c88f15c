package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"park-server/config"
)

type ParkHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	address   string
}

func NewParkHttpServer(router *Router, muxRouter *mux.Router, address string) *ParkHttpServer {
	if address == "" {
		address = config.SERVER_ADDRESS
	}
	return &ParkHttpServer{
		router:    router,
		muxRouter: muxRouter,
		address:   address,
	}
}

// Start serves until SIGINT/SIGTERM or ctx cancellation, then shuts down gracefully.
func (s *ParkHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[ParkHttpServer] Starting server on %s", s.address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	case <-ctx.Done():
	}
	log.Println("[ParkHttpServer] Shutting down the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.SERVER_SHUTDOWN_TIMEOUT_SECONDS*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ParkHttpServer] Server forced to shutdown: %v", err)
		return err
	}

	log.Println("[ParkHttpServer] Server exiting")
	return nil
}
