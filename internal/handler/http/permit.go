package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/permit"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/response"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/validator"
	"github.com/onsite-hris/onsite-backend-go/internal/service/file"
)

type PermitHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Approval(w http.ResponseWriter, r *http.Request)
}

type permitHandlerImpl struct {
	permitService permit.Service
	fileService   file.FileService
}

func NewPermitHandler(permitService permit.Service, fileService file.FileService) PermitHandler {
	return &permitHandlerImpl{
		permitService: permitService,
		fileService:   fileService,
	}
}

// Create implements PermitHandler.
func (h *permitHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req permit.CreateRequest

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

	if _, ok := validator.IsValidDate(req.StartDate); !ok {
		response.BadRequest(w, "Invalid start date", nil)
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

	result, err := h.permitService.Request(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Permit requested", result)
}

// ListMine implements PermitHandler.
func (h *permitHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.permitService.ListMine(r.Context(), middleware.TokenNIK(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approval implements PermitHandler.
func (h *permitHandlerImpl) Approval(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Approved == nil {
		response.BadRequest(w, "Field 'approved' is required", nil)
		return
	}

	result, err := h.permitService.Resolve(r.Context(), chi.URLParam(r, "permitID"), *req.Approved)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
