package handler

import (
	"net/http"

	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}
