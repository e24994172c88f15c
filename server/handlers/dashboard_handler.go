package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"park-server/dataset"
	"park-server/models"
	services "park-server/service"
	"park-server/util"
)

const (
	GRANULARITY_PATH_VAR   = "granularity"
	GRANULARITY_QUERY_ARG  = "granularity"
	DATE_QUERY_ARG         = "date"
	ATTRACTION_QUERY_ARG   = "attraction"
	XLSX_CONTENT_TYPE      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	RECOMMENDATIONS_FORMAT = "recommendations_%s.xlsx"
)

// AttractionsResponse lists the attractions selectable for a period.
type AttractionsResponse struct {
	Status      models.Status      `json:"status"`
	Granularity models.Granularity `json:"granularity"`
	Reference   string             `json:"reference_date"`
	Attractions []string           `json:"attractions"`
}

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Ping handles GET /ping
func (h *DashboardHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "pong"})
}

// GetAttractions handles GET /v1/attractions
func (h *DashboardHandler) GetAttractions(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	g, err := models.ParseGranularity(vals.Get(GRANULARITY_QUERY_ARG))
	if err != nil {
		http.Error(w, "Invalid argument "+GRANULARITY_QUERY_ARG, http.StatusBadRequest)
		return
	}
	reference, err := parseDateArg(vals)
	if err != nil {
		http.Error(w, "Invalid argument "+DATE_QUERY_ARG, http.StatusBadRequest)
		return
	}

	status, names, err := h.dashboardService.Attractions(r.Context(), g, reference)
	if err != nil {
		writeLoadError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, AttractionsResponse{
		Status:      status,
		Granularity: g,
		Reference:   reference.Format(models.DateLayout),
		Attractions: names,
	})
}

// GetDashboard handles GET /v1/dashboard/{granularity}
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r, mux.Vars(r)[GRANULARITY_PATH_VAR])
	if !ok {
		return
	}
	writeJSON(w, report)
}

// GetTrendChart handles GET /v1/dashboard/{granularity}/chart
func (h *DashboardHandler) GetTrendChart(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r, mux.Vars(r)[GRANULARITY_PATH_VAR])
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := util.RenderTrendChart(&buf, report); err != nil {
		if errors.Is(err, util.ErrNoTrend) {
			http.Error(w, unavailableMessage(report), http.StatusNotFound)
			return
		}
		log.Println("[DashboardHandler] Error rendering chart:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetRecommendationsXLSX handles GET /v1/dashboard/daily/recommendations.xlsx
func (h *DashboardHandler) GetRecommendationsXLSX(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r, string(models.Day))
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := util.WriteRecommendationsXLSX(&buf, report); err != nil {
		if errors.Is(err, util.ErrNoSegments) {
			http.Error(w, unavailableMessage(report), http.StatusNotFound)
			return
		}
		log.Println("[DashboardHandler] Error writing workbook:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", XLSX_CONTENT_TYPE)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf(RECOMMENDATIONS_FORMAT, report.Reference)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *DashboardHandler) buildReport(w http.ResponseWriter, r *http.Request, rawGranularity string) (*models.DashboardReport, bool) {
	vals := r.URL.Query()
	g, err := models.ParseGranularity(rawGranularity)
	if err != nil {
		http.Error(w, "Invalid granularity "+rawGranularity, http.StatusBadRequest)
		return nil, false
	}
	reference, err := parseDateArg(vals)
	if err != nil {
		http.Error(w, "Invalid argument "+DATE_QUERY_ARG, http.StatusBadRequest)
		return nil, false
	}

	report, err := h.dashboardService.BuildReport(r.Context(), g, reference, vals.Get(ATTRACTION_QUERY_ARG))
	if err != nil {
		writeLoadError(w, err)
		return nil, false
	}
	return report, true
}

func parseDateArg(vals url.Values) (time.Time, error) {
	return time.Parse(models.DateLayout, vals.Get(DATE_QUERY_ARG))
}

func unavailableMessage(report *models.DashboardReport) string {
	if report.Message != "" {
		return report.Message
	}
	return "No data for the selected period/attraction."
}

// writeLoadError maps dataset failures to status codes.
func writeLoadError(w http.ResponseWriter, err error) {
	log.Println("[DashboardHandler] Error loading dataset:", err)
	switch {
	case errors.Is(err, dataset.ErrSourceNotFound):
		http.Error(w, "Data source unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("[DashboardHandler] Error encoding response:", err)
	}
}
