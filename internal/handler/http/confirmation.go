package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/confirmation"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/response"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/validator"
	"github.com/onsite-hris/onsite-backend-go/internal/service/file"
)

// approvalRequest is the body of every coordinator decision endpoint. A
// pointer distinguishes an explicit false from a missing field.
type approvalRequest struct {
	Approved *bool `json:"approved"`
}

type ConfirmationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approval(w http.ResponseWriter, r *http.Request)
	OvertimeApproval(w http.ResponseWriter, r *http.Request)
}

type confirmationHandlerImpl struct {
	confirmationService confirmation.Service
	fileService         file.FileService
}

func NewConfirmationHandler(confirmationService confirmation.Service, fileService file.FileService) ConfirmationHandler {
	return &confirmationHandlerImpl{
		confirmationService: confirmationService,
		fileService:         fileService,
	}
}

// Create implements ConfirmationHandler.
func (h *confirmationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req confirmation.CreateRequest

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.Description) {
		response.BadRequest(w, "Description is required", nil)
		return
	}

	req.NIK = middleware.TokenNIK(r)

	// Supporting document is optional.
	attachment, header, err := r.FormFile("file")
	if err == nil {
		defer attachment.Close()
		stored, err := h.fileService.UploadAttachment(r.Context(), req.NIK, attachment, header.Filename)
		if err != nil {
			slog.Error("Failed to store attachment", "error", err)
			response.BadRequest(w, "Failed to store attachment", nil)
			return
		}
		req.Attachment = &stored
	} else if err != http.ErrMissingFile {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.confirmationService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Confirmation requested", result)
}

// Approval implements ConfirmationHandler.
func (h *confirmationHandlerImpl) Approval(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Approved == nil {
		response.BadRequest(w, "Field 'approved' is required", nil)
		return
	}

	result, err := h.confirmationService.Resolve(r.Context(), chi.URLParam(r, "confirmationID"), *req.Approved)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// OvertimeApproval implements ConfirmationHandler.
func (h *confirmationHandlerImpl) OvertimeApproval(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Approved == nil {
		response.BadRequest(w, "Field 'approved' is required", nil)
		return
	}

	result, err := h.confirmationService.ResolveOvertime(r.Context(), chi.URLParam(r, "overtimeID"), *req.Approved)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
