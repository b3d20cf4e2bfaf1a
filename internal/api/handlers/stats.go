package handlers

import (
	"net/http"

	"github.com/hugh/plantnet/internal/api/response"
)

type StatsHandler struct {
	reports ReportStore
}

func NewStatsHandler(reports ReportStore) *StatsHandler {
	return &StatsHandler{reports: reports}
}

// AdminStats handles GET /admin-stat
func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.AdminStats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	stats.ChartData = nonNil(stats.ChartData)
	response.JSON(w, http.StatusOK, stats)
}
