package http

import (
	"net/http"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	DailySummary(w http.ResponseWriter, r *http.Request)
	WeeklyRecap(w http.ResponseWriter, r *http.Request)
	CoordinatorSummary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	attendanceService attendance.Service
}

func NewDashboardHandler(attendanceService attendance.Service) DashboardHandler {
	return &dashboardHandlerImpl{attendanceService: attendanceService}
}

// DailySummary implements DashboardHandler.
func (h *dashboardHandlerImpl) DailySummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.DailySummary(r.Context(), middleware.TokenNIK(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WeeklyRecap implements DashboardHandler.
func (h *dashboardHandlerImpl) WeeklyRecap(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.WeeklyRecap(r.Context(), middleware.TokenNIK(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CoordinatorSummary implements DashboardHandler.
func (h *dashboardHandlerImpl) CoordinatorSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.CoordinatorSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
