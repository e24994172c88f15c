package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// DashboardRoutes is the set of handlers the router exposes.
type DashboardRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetAttractions(w http.ResponseWriter, r *http.Request)
	GetDashboard(w http.ResponseWriter, r *http.Request)
	GetTrendChart(w http.ResponseWriter, r *http.Request)
	GetRecommendationsXLSX(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	dashboardHandler DashboardRoutes
	router           *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	dashboardHandler DashboardRoutes,
	router *mux.Router) *Router {
	return &Router{
		dashboardHandler: dashboardHandler,
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.dashboardHandler.Ping).Methods("GET")

	// expects ?granularity={daily|weekly|monthly|yearly}&date={YYYY-MM-DD}
	r.router.HandleFunc("/v1/attractions", r.dashboardHandler.GetAttractions).Methods("GET")

	// expects ?date={YYYY-MM-DD}&attraction={name, optional}
	r.router.HandleFunc("/v1/dashboard/daily/recommendations.xlsx", r.dashboardHandler.GetRecommendationsXLSX).Methods("GET")
	r.router.HandleFunc("/v1/dashboard/{granularity}/chart", r.dashboardHandler.GetTrendChart).Methods("GET")
	r.router.HandleFunc("/v1/dashboard/{granularity}", r.dashboardHandler.GetDashboard).Methods("GET")
}
