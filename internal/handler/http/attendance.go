package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/onsite-hris/onsite-backend-go/internal/domain/attendance"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/middleware"
	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/response"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/validator"
	"github.com/onsite-hris/onsite-backend-go/internal/service/file"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	RequestOvertime(w http.ResponseWriter, r *http.Request)
	AddActivity(w http.ResponseWriter, r *http.Request)
	ListActivities(w http.ResponseWriter, r *http.Request)
	FinishActivity(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	fileService       file.FileService
}

func NewAttendanceHandler(attendanceService attendance.Service, fileService file.FileService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		fileService:       fileService,
	}
}

// checkPayload is the JSON carried in the 'data' field of a check-in or
// check-out form.
type checkPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// parseCheckForm extracts the location payload and stores the proof photo,
// returning the stored photo name.
func (h *attendanceHandlerImpl) parseCheckForm(w http.ResponseWriter, r *http.Request, direction string) (checkPayload, string, bool) {
	var payload checkPayload

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return payload, "", false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return payload, "", false
	}
	if err := json.Unmarshal([]byte(dataJSON), &payload); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return payload, "", false
	}

	if !validator.IsValidCoordinate(payload.Latitude, payload.Longitude) {
		response.BadRequest(w, "Invalid location coordinates", nil)
		return payload, "", false
	}

	photo, header, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Attendance proof photo is required", nil)
			return payload, "", false
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return payload, "", false
	}
	defer photo.Close()

	nik := middleware.TokenNIK(r)
	photoName, err := h.fileService.UploadCheckPhoto(r.Context(), nik, time.Now(), photo, header.Filename, direction)
	if err != nil {
		slog.Error("Failed to store check photo", "error", err)
		response.BadRequest(w, "Failed to store photo", nil)
		return payload, "", false
	}

	return payload, photoName, true
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	payload, photoName, ok := h.parseCheckForm(w, r, "in")
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), attendance.CheckInRequest{
		NIK:       middleware.TokenNIK(r),
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		PhotoName: photoName,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	payload, photoName, ok := h.parseCheckForm(w, r, "out")
	if !ok {
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), attendance.CheckOutRequest{
		NIK:       middleware.TokenNIK(r),
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		PhotoName: photoName,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RequestOvertime implements AttendanceHandler.
func (h *attendanceHandlerImpl) RequestOvertime(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.RequestOvertime(r.Context(), middleware.TokenNIK(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime requested", result)
}

// AddActivity implements AttendanceHandler.
func (h *attendanceHandlerImpl) AddActivity(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AttendanceID = chi.URLParam(r, "attendanceID")

	if validator.IsEmpty(req.Description) {
		response.BadRequest(w, "Description is required", nil)
		return
	}

	result, err := h.attendanceService.AddActivity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Activity added", result)
}

// ListActivities implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListActivities(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListActivities(r.Context(), chi.URLParam(r, "attendanceID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// FinishActivity implements AttendanceHandler.
func (h *attendanceHandlerImpl) FinishActivity(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.FinishActivity(r.Context(), chi.URLParam(r, "activityID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
