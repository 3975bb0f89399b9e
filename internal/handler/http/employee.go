package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/employee"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/response"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/validator"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Sync(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.Get(r.Context(), chi.URLParam(r, "nik"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Sync implements EmployeeHandler. The HR system pushes the whole directory;
// the request is authenticated by the sync key, not a user token.
func (h *employeeHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	var req employee.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.Key) {
		response.Unauthorized(w, "Sync key is required")
		return
	}
	for _, row := range req.Employees {
		if validator.IsEmpty(row.NIK) {
			response.BadRequest(w, "Every row needs a NIK", nil)
			return
		}
	}

	result, err := h.employeeService.Sync(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
